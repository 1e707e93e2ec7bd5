package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/request"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

// --- Mocks ---

type mockRepo struct {
	tfidfResults []result.Result
	tfidfErr     error
	knnResults   []result.Result
	knnErr       error

	tfidfCalled bool
	knnCalled   bool
	lastQuery   string
	lastVector  []float32
	lastTopK    int
}

func (m *mockRepo) SearchTFIDF(_ context.Context, query string, topK int) ([]result.Result, error) {
	m.tfidfCalled = true
	m.lastQuery = query
	m.lastTopK = topK
	return m.tfidfResults, m.tfidfErr
}

func (m *mockRepo) SearchKNN(_ context.Context, vector []float32, topK int) ([]result.Result, error) {
	m.knnCalled = true
	m.lastVector = vector
	m.lastTopK = topK
	return m.knnResults, m.knnErr
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
	text   string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.called = true
	m.text = text
	return domain.EmbeddingResult{Embedding: m.vec}, m.err
}

func mustRequest(t *testing.T, query string, m mode.Mode) *request.Request {
	t.Helper()
	req, err := request.New(query, m)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func movies(titles ...string) []result.Result {
	out := make([]result.Result, len(titles))
	for i, title := range titles {
		out[i] = result.New(title, "overview of "+title, float64(len(titles)-i))
	}
	return out
}

// --- Tests ---

func TestSearch_TFIDF(t *testing.T) {
	repo := &mockRepo{tfidfResults: movies("Heat", "Ronin")}
	emb := &mockEmbedder{}
	svc := New(repo, emb, 5)

	got, err := svc.Search(context.Background(), mustRequest(t, "heist crew", mode.TFIDF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title() != "Heat" || got[1].Title() != "Ronin" {
		t.Fatalf("results not passed through in order: %v", got)
	}
	if repo.lastQuery != "heist crew" || repo.lastTopK != 5 {
		t.Errorf("unexpected repo call: query=%q topK=%d", repo.lastQuery, repo.lastTopK)
	}
	if emb.called {
		t.Error("tfidf must not embed the query")
	}
	if repo.knnCalled {
		t.Error("tfidf must not run knn")
	}
}

func TestSearch_Embeddings(t *testing.T) {
	repo := &mockRepo{knnResults: movies("Alien")}
	emb := &mockEmbedder{vec: []float32{0.1, 0.2}}
	svc := New(repo, emb, 0)

	got, err := svc.Search(context.Background(), mustRequest(t, "space horror", mode.Embeddings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title() != "Alien" {
		t.Fatalf("unexpected results: %v", got)
	}
	if emb.text != "space horror" {
		t.Errorf("expected query to be embedded verbatim, got %q", emb.text)
	}
	if len(repo.lastVector) != 2 {
		t.Errorf("vector not forwarded: %v", repo.lastVector)
	}
	if repo.lastTopK != DefaultTopK {
		t.Errorf("expected default topK %d, got %d", DefaultTopK, repo.lastTopK)
	}
	if repo.tfidfCalled {
		t.Error("embeddings must not run tfidf")
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		for _, m := range mode.All() {
			repo := &mockRepo{}
			emb := &mockEmbedder{}
			svc := New(repo, emb, 10)

			got, err := svc.Search(context.Background(), mustRequest(t, q, m))
			if err != nil {
				t.Fatalf("%q/%s: unexpected error: %v", q, m, err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("%q/%s: expected empty list, got %v", q, m, got)
			}
			if repo.tfidfCalled || repo.knnCalled || emb.called {
				t.Fatalf("%q/%s: backend must not be contacted", q, m)
			}
		}
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	svc := New(&mockRepo{tfidfResults: []result.Result{}}, nil, 10)

	got, err := svc.Search(context.Background(), mustRequest(t, "zzzz", mode.TFIDF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}

func TestSearch_BackendError(t *testing.T) {
	svc := New(&mockRepo{tfidfErr: domain.ErrSearchBackend}, nil, 10)

	_, err := svc.Search(context.Background(), mustRequest(t, "heat", mode.TFIDF))
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Fatalf("expected ErrSearchBackend, got %v", err)
	}
}

func TestSearch_EmbedderError(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockEmbedder{err: errors.New("timeout")}, 10)

	_, err := svc.Search(context.Background(), mustRequest(t, "heat", mode.Embeddings))
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if repo.knnCalled {
		t.Error("knn must not run when embedding fails")
	}
}

func TestSearch_EmptyEmbedding(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{vec: nil}, 10)

	_, err := svc.Search(context.Background(), mustRequest(t, "heat", mode.Embeddings))
	if !errors.Is(err, domain.ErrEmptyEmbedding) {
		t.Fatalf("expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestSearch_EmbeddingsWithoutProvider(t *testing.T) {
	svc := New(&mockRepo{}, nil, 10)

	_, err := svc.Search(context.Background(), mustRequest(t, "heat", mode.Embeddings))
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestSearch_KNNError(t *testing.T) {
	svc := New(&mockRepo{knnErr: domain.ErrIndexNotFound}, &mockEmbedder{vec: []float32{1}}, 10)

	_, err := svc.Search(context.Background(), mustRequest(t, "heat", mode.Embeddings))
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearch_ZeroRequest(t *testing.T) {
	svc := New(&mockRepo{}, nil, 10)
	var req request.Request

	_, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("zero request has blank query and must short-circuit: %v", err)
	}
}
