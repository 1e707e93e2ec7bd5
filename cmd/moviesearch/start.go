package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/moviesearch/internal/config"
	dbRedis "github.com/kailas-cloud/moviesearch/internal/db/redis"
	"github.com/kailas-cloud/moviesearch/internal/db/sqlite"
	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	logpkg "github.com/kailas-cloud/moviesearch/internal/logger"
	"github.com/kailas-cloud/moviesearch/internal/metrics"
	"github.com/kailas-cloud/moviesearch/internal/repository/embcache"
	searchrepo "github.com/kailas-cloud/moviesearch/internal/repository/search"
	openaiEmb "github.com/kailas-cloud/moviesearch/internal/transport/openai"
	"github.com/kailas-cloud/moviesearch/internal/transport/web"
	"github.com/kailas-cloud/moviesearch/internal/usecase/dispatch"
	embeddinguc "github.com/kailas-cloud/moviesearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/moviesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/moviesearch/internal/usecase/search"
	"github.com/kailas-cloud/moviesearch/internal/version"
)

// queryEmbedder is what the composition root hands to the search and health services.
type queryEmbedder interface {
	domain.Embedder
	domain.HealthChecker
}

// runStart serves HTTP until ctx is cancelled, then shuts down gracefully.
func runStart(ctx context.Context) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting moviesearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("addr", cfg.HTTP.Addr()),
		zap.String("database", cfg.Database.Path),
		zap.Strings("search_addrs", cfg.Search.Addrs),
		zap.String("default_mode", cfg.Search.DefaultMode),
	)

	sqlStore, err := sqlite.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = sqlStore.Close() }()

	if err := sqlStore.InitSchema(ctx); err != nil {
		return err //nolint:wrapcheck // already carries context
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Search.Addrs,
		Password: cfg.Search.Password,
	})
	if err != nil {
		return fmt.Errorf("search backend config: %w", err)
	}
	defer store.Close()

	readiness := time.Duration(cfg.Search.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Warn("Search backend not ready, searches will fail until it recovers", zap.Error(err))
	}

	handler, err := buildHandler(ctx, cfg, sqlStore, store, logger)
	if err != nil {
		return err
	}

	srv := newHTTPServer(cfg.HTTP, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err //nolint:wrapcheck // wrapped by the goroutine
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// newHTTPServer sets no WriteTimeout: a slow provider call still ends in a rendered page.
func newHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadTimeoutSec) * time.Second,
	}
}

// buildHandler wires the search, dispatch and health services behind the web routes.
// The search backend is not required to be reachable.
func buildHandler(
	ctx context.Context,
	cfg config.Config,
	sqlStore *sqlite.Store,
	store *dbRedis.Store,
	logger *zap.Logger,
) (http.Handler, error) {
	metrics.Register()

	searchRepo := searchrepo.New(store, cfg.Search.IndexName)
	if err := searchRepo.HealthCheck(ctx); err != nil {
		logger.Warn("Search index unavailable", zap.String("index", cfg.Search.IndexName), zap.Error(err))
	}

	// Pass nil interfaces, not typed nil pointers, when embeddings are disabled.
	var (
		embedder  searchuc.Embedder
		embHealth healthuc.EmbeddingChecker
	)
	if cfg.Embedding.Enabled() {
		e := buildEmbedder(cfg, store, logger)
		embedder, embHealth = e, e
		logger.Info("Embedding provider configured",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
		)
	} else {
		logger.Warn("No embedding API key configured, embeddings mode is disabled")
	}

	defaultMode, err := mode.Parse(cfg.Search.DefaultMode)
	if err != nil {
		return nil, fmt.Errorf("search.default_mode: %w", err)
	}

	searchSvc := searchuc.New(searchRepo, embedder, cfg.Search.TopK)
	dispatcher := dispatch.New(searchSvc, defaultMode)
	healthSvc := healthuc.New(sqlStore, searchRepo, embHealth)

	views, err := web.LoadViews()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return web.NewServer(dispatcher, healthSvc, views, logger).Routes(), nil
}

// buildEmbedder assembles the query chain: OpenAI -> Instrumented -> Cached -> Instruction.
// The instruction is outermost so the cache key includes it.
func buildEmbedder(cfg config.Config, store *dbRedis.Store, logger *zap.Logger) queryEmbedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	instrumented := embeddinguc.NewInstrumentedEmbedder(base, cfg.Embedding.Provider, cfg.Embedding.Model)

	cached := embcache.New(instrumented, store, embcache.Options{
		KeyPrefix: cfg.Search.KeyPrefix + "emb_cache:",
		TTL:       cfg.Embedding.CacheTTL(),
	}, metrics.EmbeddingCacheTotal, logger)

	if cfg.Embedding.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(cached, cfg.Embedding.QueryInstruction)
	}
	return cached
}
