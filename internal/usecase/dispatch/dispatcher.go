// Package dispatch turns a submitted search form into a provider call and a renderable page.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviesearch/internal/domain"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/request"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
	"github.com/kailas-cloud/moviesearch/internal/logger"
	"github.com/kailas-cloud/moviesearch/internal/metrics"
)

// fallbackMessage is shown when a failure carries no description.
const fallbackMessage = "search failed"

// Form is the submitted search form. Nil fields were absent from the submission.
type Form struct {
	Query     *string
	IndexType *string
}

// Outcome selects which page to render.
type Outcome int

const (
	// OutcomeResults renders the results page.
	OutcomeResults Outcome = iota
	// OutcomeError renders the error page.
	OutcomeError
)

// Page is the renderable result of a dispatch.
type Page struct {
	Outcome   Outcome
	Query     string
	IndexType string
	Results   []result.Result
	// SearchTime is the wall time of the provider call. Reporting only.
	SearchTime time.Duration
	Error      string
}

// Dispatcher validates forms, calls the provider and maps the outcome to a Page.
type Dispatcher struct {
	provider    Provider
	defaultMode mode.Mode
}

// New creates a Dispatcher. An invalid defaultMode falls back to TF-IDF.
func New(p Provider, defaultMode mode.Mode) *Dispatcher {
	if !defaultMode.IsValid() {
		defaultMode = mode.TFIDF
	}
	return &Dispatcher{provider: p, defaultMode: defaultMode}
}

// DefaultMode returns the mode used when the form has no index_type.
func (d *Dispatcher) DefaultMode() mode.Mode { return d.defaultMode }

// Dispatch never returns an error: provider failures and panics become an error Page.
func (d *Dispatcher) Dispatch(ctx context.Context, f Form) Page {
	log := logger.FromContext(ctx)

	query := ""
	if f.Query != nil {
		query = *f.Query
	}

	req, err := d.buildRequest(query, f.IndexType)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("invalid", metrics.StatusRejected).Inc()
		log.Info("Search rejected", zap.String("query", query), zap.Error(err))
		return errorPage(query, rawIndexType(f.IndexType), err)
	}

	m := req.Mode().String()
	start := time.Now()
	results, err := d.callProvider(ctx, &req)
	elapsed := time.Since(start)

	metrics.SearchDuration.WithLabelValues(m).Observe(elapsed.Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(m, metrics.StatusError).Inc()
		log.Warn("Search failed",
			zap.String("query", query),
			zap.String("mode", m),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		page := errorPage(query, m, err)
		page.SearchTime = elapsed
		return page
	}

	if results == nil {
		results = []result.Result{}
	}
	metrics.SearchRequestsTotal.WithLabelValues(m, metrics.StatusOK).Inc()
	metrics.SearchResults.WithLabelValues(m).Observe(float64(len(results)))
	log.Info("Search completed",
		zap.String("query", query),
		zap.String("mode", m),
		zap.Int("results", len(results)),
		zap.Duration("duration", elapsed),
	)

	return Page{
		Outcome:    OutcomeResults,
		Query:      query,
		IndexType:  m,
		Results:    results,
		SearchTime: elapsed,
	}
}

func (d *Dispatcher) buildRequest(query string, indexType *string) (request.Request, error) {
	m := d.defaultMode
	if indexType != nil && *indexType != "" {
		parsed, err := mode.Parse(*indexType)
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %w", domain.ErrUnsupportedMode, err)
		}
		m = parsed
	}
	return request.New(query, m) //nolint:wrapcheck // domain validation error
}

// callProvider converts a provider panic into an error.
func (d *Dispatcher) callProvider(ctx context.Context, req *request.Request) (results []result.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search provider panic: %v", r)
		}
	}()
	return d.provider.Search(ctx, req)
}

func errorPage(query, indexType string, err error) Page {
	return Page{
		Outcome:   OutcomeError,
		Query:     query,
		IndexType: indexType,
		Error:     message(err),
	}
}

// message renders err for display; it is never empty.
func message(err error) string {
	if err == nil {
		return fallbackMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	if u := errors.Unwrap(err); u != nil && u.Error() != "" {
		return u.Error()
	}
	return fallbackMessage
}

func rawIndexType(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
