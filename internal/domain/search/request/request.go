package request

import (
	"fmt"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
)

// Request is a validated search request: free-text query plus retrieval mode.
// The query is kept verbatim; an empty query is allowed and handled by the provider.
type Request struct {
	query      string
	searchMode mode.Mode
}

// New validates the mode and builds a Request.
func New(query string, m mode.Mode) (Request, error) {
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, m)
	}
	return Request{query: query, searchMode: m}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the retrieval mode.
func (r *Request) Mode() mode.Mode { return r.searchMode }
