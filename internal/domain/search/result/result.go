package result

// Result is a single movie hit returned by the search provider.
type Result struct {
	title    string
	overview string
	score    float64
}

// New creates a search result.
func New(title, overview string, score float64) Result {
	return Result{title: title, overview: overview, score: score}
}

// Title returns the movie title.
func (r *Result) Title() string { return r.title }

// Overview returns the movie overview.
func (r *Result) Overview() string { return r.overview }

// Score returns the relevance score. Higher is more relevant.
func (r *Result) Score() float64 { return r.score }
