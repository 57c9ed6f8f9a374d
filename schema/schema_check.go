package schema

// CheckStatus is the outcome of a single validation check.
type CheckStatus string

// All check statuses supported. Warnings count toward the total but do not
// fail the run.
const (
	CheckPass CheckStatus = "PASS"
	CheckFail CheckStatus = "FAIL"
	CheckWarn CheckStatus = "WARN"
)

// CheckFinding is one named validation check with its outcome and detail.
type CheckFinding struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// CheckResult aggregates all findings from a validation run.
type CheckResult struct {
	Findings []CheckFinding `json:"findings"`
	Total    int            `json:"total"`
	Failures int            `json:"failures"`
	Warnings int            `json:"warnings"`
}

// Passed reports whether the validation run had zero failures.
func (r *CheckResult) Passed() bool {
	return r.Failures == 0
}

// Check records a hard pass/fail finding.
func (r *CheckResult) Check(name string, passed bool, detail string) {
	status := CheckPass
	if !passed {
		status = CheckFail
		r.Failures++
	}
	r.Total++
	r.Findings = append(r.Findings, CheckFinding{Name: name, Status: status, Detail: detail})
}

// Warn records a soft finding that never fails the run.
func (r *CheckResult) Warn(name string, ok bool, detail string) {
	status := CheckPass
	if !ok {
		status = CheckWarn
		r.Warnings++
	}
	r.Total++
	r.Findings = append(r.Findings, CheckFinding{Name: name, Status: status, Detail: detail})
}
