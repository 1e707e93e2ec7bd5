package domain

import "errors"

var (
	// ErrUnsupportedMode signals an index_type outside the known search modes.
	ErrUnsupportedMode = errors.New("unsupported index_type")
	// ErrSearchBackend signals a failure of the search backend (unreachable, bad query, server error).
	ErrSearchBackend = errors.New("search backend error")
	// ErrIndexNotFound signals that the movie search index does not exist in the backend.
	ErrIndexNotFound = errors.New("search index not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmptyEmbedding signals that the provider returned no vector for the query.
	ErrEmptyEmbedding = errors.New("empty embedding")
)
