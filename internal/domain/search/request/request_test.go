package request

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("Inception", mode.TFIDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "Inception" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Mode() != mode.TFIDF {
		t.Errorf("Mode() = %q", r.Mode())
	}
}

func TestNew_QueryKeptVerbatim(t *testing.T) {
	for _, q := range []string{"", "  padded  ", "UPPER case", "émigré"} {
		r, err := New(q, mode.Embeddings)
		if err != nil {
			t.Fatalf("New(%q): %v", q, err)
		}
		if r.Query() != q {
			t.Errorf("Query() = %q, want %q", r.Query(), q)
		}
	}
}

func TestNew_InvalidMode(t *testing.T) {
	for _, m := range []mode.Mode{"", "bm25", "Embeddings"} {
		_, err := New("query", m)
		if err == nil {
			t.Fatalf("expected error for mode %q", m)
		}
		if !errors.Is(err, domain.ErrUnsupportedMode) {
			t.Errorf("expected ErrUnsupportedMode, got %v", err)
		}
	}
}
