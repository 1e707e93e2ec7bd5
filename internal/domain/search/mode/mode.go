package mode

import (
	"fmt"
	"strings"
)

// Mode selects the retrieval algorithm used by the search provider.
type Mode string

// Search mode constants. Values match the index_type form field.
const (
	// TFIDF ranks movies by term frequency / inverse document frequency over title and overview.
	TFIDF Mode = "tfidf"
	// Embeddings ranks movies by vector similarity between the query and overview embeddings.
	Embeddings Mode = "embeddings"
)

// All returns the supported modes in display order.
func All() []Mode {
	return []Mode{TFIDF, Embeddings}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == TFIDF || m == Embeddings
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }

// Parse converts a raw index_type value into a Mode.
// Matching is exact: "TFIDF" or " tfidf" are rejected.
func Parse(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%q (expected one of: %s)", s, joined())
	}
	return m, nil
}

func joined() string {
	all := All()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
