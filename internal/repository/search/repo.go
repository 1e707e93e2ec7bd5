package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/moviesearch/internal/db"
	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

// Hash fields of an indexed movie document.
const (
	FieldTitle    = "title"
	FieldOverview = "overview"
)

var returnFields = []string{FieldTitle, FieldOverview}

// store is the consumer interface for search operations (ISP).
type store interface {
	Ping(ctx context.Context) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository over a single movie index.
type Repo struct {
	store     store
	indexName string
}

// New creates a search repository bound to indexName.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// IndexName returns the index this repository queries.
func (r *Repo) IndexName() string { return r.indexName }

// SearchTFIDF runs a TF-IDF scored full-text search. The query is split on whitespace
// and the terms are OR-ed together.
func (r *Repo) SearchTFIDF(ctx context.Context, query string, topK int) ([]result.Result, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []result.Result{}, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.indexName,
		Terms:        terms,
		Scorer:       db.ScorerTFIDF,
		TopK:         topK,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, r.wrap("search tfidf", err)
	}
	return toResults(sr), nil
}

// SearchKNN runs a vector similarity search against the overview embeddings.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]result.Result, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, r.wrap("search knn", err)
	}
	return toResults(sr), nil
}

// HealthCheck verifies the backend is reachable and the movie index exists.
func (r *Repo) HealthCheck(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	ok, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, r.indexName)
	}
	return nil
}

func (r *Repo) wrap(op string, err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%s: %w: %w: %s", op, domain.ErrSearchBackend, domain.ErrIndexNotFound, r.indexName)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrSearchBackend, err)
}

// toResults keeps backend order; scores are already normalized by the db layer.
func toResults(sr *db.SearchResult) []result.Result {
	if sr == nil || len(sr.Entries) == 0 {
		return []result.Result{}
	}
	out := make([]result.Result, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		out = append(out, result.New(e.Fields[FieldTitle], e.Fields[FieldOverview], e.Score))
	}
	return out
}
