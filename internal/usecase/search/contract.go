package search

import (
	"context"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

// Repository defines the backend contract for movie retrieval.
type Repository interface {
	SearchTFIDF(ctx context.Context, query string, topK int) ([]result.Result, error)
	SearchKNN(ctx context.Context, vector []float32, topK int) ([]result.Result, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
