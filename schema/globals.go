package schema

// DefaultShowSet maps the default known show identifiers to display titles.
// The engine never reads this directly; it is the config default so tests can
// run the engine against arbitrary show sets.
var DefaultShowSet = map[string]string{
	"tt0096697": "The Simpsons",
	"tt0206512": "SpongeBob SquarePants",
	"tt0182576": "Family Guy",
	"tt1520211": "The Walking Dead",
}

// TitleOrID resolves a show ID to its display title, falling back to the raw
// ID for shows missing from the set.
func TitleOrID(shows map[string]string, showID string) string {
	if title, ok := shows[showID]; ok {
		return title
	}
	return showID
}
