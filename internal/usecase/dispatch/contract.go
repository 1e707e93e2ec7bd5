package dispatch

import (
	"context"

	"github.com/kailas-cloud/moviesearch/internal/domain/search/request"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

// Provider runs a validated search request.
type Provider interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}
