package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/request"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

// DefaultTopK is used when the service is built with a non-positive topK.
const DefaultTopK = 10

// errEmbeddingDisabled is returned for embeddings mode when no provider is configured.
var errEmbeddingDisabled = errors.New("embedding provider is not configured")

// Service is the search provider: it runs TF-IDF or embedding retrieval for a request.
type Service struct {
	repo  Repository
	embed Embedder
	topK  int
}

// New creates a search service. embed may be nil, in which case embeddings mode fails.
func New(repo Repository, embed Embedder, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{repo: repo, embed: embed, topK: topK}
}

// TopK returns the result limit per search.
func (s *Service) TopK() int { return s.topK }

// Search returns ranked results for the request. A blank query yields no results
// without contacting the backend.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	if strings.TrimSpace(req.Query()) == "" {
		return []result.Result{}, nil
	}

	switch req.Mode() {
	case mode.TFIDF:
		return s.searchTFIDF(ctx, req.Query())
	case mode.Embeddings:
		return s.searchEmbeddings(ctx, req.Query())
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, req.Mode())
	}
}

func (s *Service) searchTFIDF(ctx context.Context, query string) ([]result.Result, error) {
	results, err := s.repo.SearchTFIDF(ctx, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("tfidf search: %w", err)
	}
	return results, nil
}

func (s *Service) searchEmbeddings(ctx context.Context, query string) ([]result.Result, error) {
	if s.embed == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, errEmbeddingDisabled)
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingProviderError) {
			return nil, fmt.Errorf("vectorize query: %w", err)
		}
		return nil, fmt.Errorf("vectorize query: %w: %w", domain.ErrEmbeddingProviderError, err)
	}
	if len(emb.Embedding) == 0 {
		return nil, fmt.Errorf("vectorize query: %w: %w", domain.ErrEmbeddingProviderError, domain.ErrEmptyEmbedding)
	}

	results, err := s.repo.SearchKNN(ctx, emb.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("embedding search: %w", err)
	}
	return results, nil
}
