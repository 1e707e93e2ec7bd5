package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every component failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in a Report.
const (
	ComponentDatabase  = "database"
	ComponentSearch    = "search"
	ComponentEmbedding = "embedding"
)

// DefaultCheckTimeout bounds each component check.
const DefaultCheckTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Errors holds the failure description per failing component.
	Errors map[string]string
}

// Service coordinates health checks.
type Service struct {
	checks  map[string]func(context.Context) error
	timeout time.Duration
}

// New creates a Service. embedding can be nil when no provider is configured.
func New(db DBPinger, search SearchChecker, embedding EmbeddingChecker) *Service {
	checks := map[string]func(context.Context) error{
		ComponentDatabase: db.Ping,
		ComponentSearch:   search.HealthCheck,
	}
	if embedding != nil {
		checks[ComponentEmbedding] = embedding.HealthCheck
	}
	return &Service{checks: checks, timeout: DefaultCheckTimeout}
}

// WithTimeout overrides the per-check timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs all component checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		checks = make(map[string]CheckResult, len(s.checks))
		errs   = make(map[string]string)
	)

	var g errgroup.Group
	for name, check := range s.checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			err := check(cctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[name] = CheckError
				errs[name] = err.Error()
			} else {
				checks[name] = CheckOK
			}
			return nil
		})
	}
	_ = g.Wait()

	return Report{Status: aggregate(checks), Checks: checks, Errors: errs}
}

func aggregate(checks map[string]CheckResult) Status {
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
		return Healthy
	case failed == len(checks):
		return Unhealthy
	default:
		return Degraded
	}
}
