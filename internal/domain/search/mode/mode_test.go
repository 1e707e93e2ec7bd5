package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{TFIDF, Embeddings}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "bm25", "semantic", "TFIDF", "tfidf "}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestConstants(t *testing.T) {
	if TFIDF != "tfidf" {
		t.Errorf("TFIDF = %q", TFIDF)
	}
	if Embeddings != "embeddings" {
		t.Errorf("Embeddings = %q", Embeddings)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"tfidf", TFIDF, false},
		{"embeddings", Embeddings, false},
		{"", "", true},
		{"hybrid", "", true},
		{"Embeddings", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_ErrorListsModes(t *testing.T) {
	_, err := Parse("bm25")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `"bm25" (expected one of: tfidf, embeddings)`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
