package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// Check is one named dependency probe contributing to readiness.
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// Liveness is the dependency-free "process is up" report.
type Liveness struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// Readiness aggregates every check; Status is ready only when all are healthy.
type Readiness struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Ready reports whether every check passed.
func (r Readiness) Ready() bool { return r.Status == StatusReady }

type HealthService struct {
	service string
	checks  []Check
	timeout time.Duration
	logger  *logrus.Logger
	now     func() time.Time
}

// NewHealthService builds the probe set. timeout bounds each check; zero means
// the caller's context is the only deadline.
func NewHealthService(service string, timeout time.Duration, logger *logrus.Logger, checks ...Check) *HealthService {
	return &HealthService{
		service: service,
		checks:  checks,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// TimestampLayout is UTC with millisecond precision, e.g. 2024-05-01T12:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func (h *HealthService) timestamp() string {
	return h.now().UTC().Format(TimestampLayout)
}

func (h *HealthService) Liveness() Liveness {
	return Liveness{Status: StatusHealthy, Timestamp: h.timestamp(), Service: h.service}
}

// Readiness probes every dependency fresh. A failing probe marks its entry
// unhealthy; it never propagates as an error.
func (h *HealthService) Readiness(ctx context.Context) Readiness {
	checks := make(map[string]string, len(h.checks))
	ready := true
	for _, c := range h.checks {
		if err := h.run(ctx, c); err != nil {
			h.logger.WithError(err).WithField("check", c.Name()).Warn("readiness check failed")
			checks[c.Name()] = StatusUnhealthy
			ready = false
			continue
		}
		checks[c.Name()] = StatusHealthy
	}
	status := StatusReady
	if !ready {
		status = StatusNotReady
	}
	return Readiness{Status: status, Timestamp: h.timestamp(), Checks: checks}
}

func (h *HealthService) run(ctx context.Context, c Check) error {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return c.Check(ctx)
}
