package db

// Scorer is the FT.SEARCH text scoring function.
type Scorer string

const (
	// ScorerTFIDF scores by term frequency times inverse document frequency.
	ScorerTFIDF Scorer = "TFIDF"
	// ScorerBM25 is the Okapi BM25 scorer (server default on Redis 8+).
	ScorerBM25 Scorer = "BM25"
)

// VectorField is the HASH field holding the overview embedding.
const VectorField = "vector"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery is the input for full-text search.
type TextQuery struct {
	IndexName string
	// Terms are matched as a disjunction across all TEXT fields of the index.
	Terms        []string
	Scorer       Scorer
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
