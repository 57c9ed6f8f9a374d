package schema

import "fmt"

// SchemaError reports input rows that violate the episode fact table
// contract. It aborts the run before any aggregation happens.
type SchemaError struct {
	Field  string // Offending field name
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: field %q: %s", e.Field, e.Detail)
}

// DataQualityError reports input that is structurally valid but
// mathematically unusable, such as a season with zero total votes under the
// fail policy. Carries enough context to locate the offending rows.
type DataQualityError struct {
	ShowID    string
	SeasonNum int // 0 when the problem is show-level
	Reason    string
}

func (e *DataQualityError) Error() string {
	if e.SeasonNum > 0 {
		return fmt.Sprintf("data quality error: show %s season %d: %s", e.ShowID, e.SeasonNum, e.Reason)
	}
	return fmt.Sprintf("data quality error: show %s: %s", e.ShowID, e.Reason)
}

// InvariantError reports a defensive check tripping inside the engine. It
// indicates a bug in the engine, not in the input, and always aborts the run.
type InvariantError struct {
	ShowID    string
	SeasonNum int
	Invariant string
}

func (e *InvariantError) Error() string {
	if e.SeasonNum > 0 {
		return fmt.Sprintf("invariant violation: show %s season %d: %s", e.ShowID, e.SeasonNum, e.Invariant)
	}
	return fmt.Sprintf("invariant violation: show %s: %s", e.ShowID, e.Invariant)
}
