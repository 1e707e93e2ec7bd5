package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

func TestApplyDefaults(t *testing.T) {
	c := validConfig()

	if c.HTTP.Addr() != "0.0.0.0:8000" {
		t.Errorf("expected 0.0.0.0:8000, got %s", c.HTTP.Addr())
	}
	if c.Database.Path != "movies.db" {
		t.Errorf("expected movies.db, got %s", c.Database.Path)
	}
	if c.Search.DefaultMode != "tfidf" {
		t.Errorf("expected tfidf default mode, got %s", c.Search.DefaultMode)
	}
	if c.Search.TopK != 10 {
		t.Errorf("expected top_k 10, got %d", c.Search.TopK)
	}
	if c.Search.IndexName != "movies:idx" {
		t.Errorf("expected movies:idx, got %s", c.Search.IndexName)
	}
	if c.Embedding.Enabled() {
		t.Error("embedding must be disabled without an API key")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := Config{
		HTTP:   HTTPConfig{Host: "127.0.0.1", Port: 9000},
		Search: SearchConfig{DefaultMode: "embeddings", TopK: 3},
	}
	c.ApplyDefaults()

	if c.HTTP.Addr() != "127.0.0.1:9000" {
		t.Errorf("unexpected addr %s", c.HTTP.Addr())
	}
	if c.Search.DefaultMode != "embeddings" || c.Search.TopK != 3 {
		t.Errorf("explicit search settings overwritten: %+v", c.Search)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"negative port", func(c *Config) { c.HTTP.Port = -1 }, "http.port"},
		{"blank db path", func(c *Config) { c.Database.Path = "  " }, "database.path"},
		{"unknown mode", func(c *Config) { c.Search.DefaultMode = "bm25" }, "search.default_mode"},
		{"huge top_k", func(c *Config) { c.Search.TopK = 5000 }, "search.top_k"},
		{"negative dims", func(c *Config) { c.Embedding.Dimensions = -1 }, "embedding.dimensions"},
		{"negative ttl", func(c *Config) { c.Embedding.CacheTTLSec = -5 }, "embedding.cache_ttl_sec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8000 || cfg.Database.Path != "movies.db" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_FromFileWithEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	yml := `
http:
  port: ${TEST_MS_PORT:-8100}
database:
  path: ${TEST_MS_DB}
search:
  default_mode: embeddings
embedding:
  api_key: ${TEST_MS_KEY}
`
	if err := os.WriteFile(filepath.Join("config", "unit.yaml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_MS_DB", "catalog.db")
	t.Setenv("TEST_MS_KEY", "sk-test")

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8100 {
		t.Errorf("expected default from expression, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Path != "catalog.db" {
		t.Errorf("expected catalog.db, got %s", cfg.Database.Path)
	}
	if cfg.Search.DefaultMode != "embeddings" {
		t.Errorf("expected embeddings, got %s", cfg.Search.DefaultMode)
	}
	if !cfg.Embedding.Enabled() {
		t.Error("expected embedding enabled")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("config/unit.yaml", []byte("database:\n  path: ${TEST_MS_DOTENV_DB}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(".env", []byte("TEST_MS_DOTENV_DB=from-dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_MS_DOTENV_DB", "")
	os.Unsetenv("TEST_MS_DOTENV_DB")

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "from-dotenv.db" {
		t.Errorf("expected value from .env, got %s", cfg.Database.Path)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("config/unit.yaml", []byte("http: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("unit"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ShippedLocalConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("local.yaml must load: %v", err)
	}
	if cfg.Search.IndexName != "movies:idx" {
		t.Errorf("unexpected index name %s", cfg.Search.IndexName)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MS_A", "alpha")
	got := string(expandEnvVars([]byte("a=${MS_A} b=${MS_UNSET_B:-beta} c=${MS_UNSET_C}")))
	if got != "a=alpha b=beta c=" {
		t.Errorf("unexpected expansion: %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("expected local, got %s", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("expected prod, got %s", GetEnv())
	}
}
