package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

type stubHealthEmbedder struct {
	stubEmbedder
	healthErr error
	checked   bool
}

func (s *stubHealthEmbedder) HealthCheck(_ context.Context) error {
	s.checked = true
	return s.healthErr
}

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "Represent this movie search query: ")

	result, err := emb.Embed(context.Background(), "space opera")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "Represent this movie search query: space opera" {
		t.Errorf("expected prepended text, got %q", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	inner := &stubEmbedder{err: ErrEmbeddingProviderError}
	emb := NewInstructionEmbedder(inner, "query: ")

	_, err := emb.Embed(context.Background(), "heist")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrEmbeddingProviderError) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestInstructionEmbedder_EmptyInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.5}}}
	emb := NewInstructionEmbedder(inner, "")

	if _, err := emb.Embed(context.Background(), "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "test" {
		t.Errorf("expected 'test', got %q", inner.got)
	}
}

func TestInstructionEmbedder_HealthCheckDelegates(t *testing.T) {
	inner := &stubHealthEmbedder{healthErr: errors.New("401 unauthorized")}
	emb := NewInstructionEmbedder(inner, "query: ")

	if err := emb.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error from inner embedder")
	}
	if !inner.checked {
		t.Error("expected inner HealthCheck to be called")
	}
}

func TestInstructionEmbedder_HealthCheckWithoutSupport(t *testing.T) {
	emb := NewInstructionEmbedder(&stubEmbedder{}, "query: ")

	if err := emb.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected nil for embedder without health support, got %v", err)
	}
}
