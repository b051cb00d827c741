// Package health polls the memory service's liveness endpoint and keeps
// a tri-state status the console can read at any time.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status is the monitor's current belief about the service.
type Status string

const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
)

// DefaultInterval is how often Run re-probes the service.
const DefaultInterval = 30 * time.Second

// Pinger is the single capability the monitor needs from the remote
// client. *api.Client satisfies it.
type Pinger interface {
	CheckHealth(ctx context.Context) error
}

// Snapshot is a point-in-time copy of the monitor state.
type Snapshot struct {
	Status      Status
	LastChecked time.Time
}

// Monitor probes a Pinger and records online/offline transitions. It is
// safe to read from one goroutine while Run probes from another.
type Monitor struct {
	pinger   Pinger
	interval time.Duration
	logger   *zap.Logger

	mu          sync.Mutex
	status      Status
	lastChecked time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval overrides the polling interval used by Run.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger attaches a logger for transition logging.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// NewMonitor creates a monitor in the checking state; no probe has run yet.
func NewMonitor(pinger Pinger, opts ...Option) *Monitor {
	m := &Monitor{
		pinger:   pinger,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		status:   StatusChecking,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Check runs one probe: enter checking, ping, then record online or
// offline with a fresh checked-at timestamp. Manual refresh is just a
// direct call to Check.
func (m *Monitor) Check(ctx context.Context) Snapshot {
	m.mu.Lock()
	m.status = StatusChecking
	m.mu.Unlock()

	err := m.pinger.CheckHealth(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastChecked = time.Now()
	if err != nil {
		m.status = StatusOffline
		m.logger.Debug("health check failed", zap.Error(err))
	} else {
		m.status = StatusOnline
	}

	return Snapshot{Status: m.status, LastChecked: m.lastChecked}
}

// Run probes immediately and then on every interval tick until ctx is
// done. The ticker is released on return, so cancelling ctx is the
// teardown path.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// State returns a copy of the current status and last-checked time.
func (m *Monitor) State() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, LastChecked: m.lastChecked}
}

// FormatAge renders how long ago the snapshot was taken: "Just now"
// under a minute, "{m}m ago" under an hour, otherwise the absolute
// clock time. An empty string before the first probe completes.
func (s Snapshot) FormatAge(now time.Time) string {
	if s.LastChecked.IsZero() {
		return ""
	}

	age := now.Sub(s.LastChecked)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	default:
		return s.LastChecked.Format("15:04:05")
	}
}

// Label returns the status text shown next to the
// indicator dot.
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "API Online"
	case StatusOffline:
		return "API Offline"
	case StatusChecking:
		return "Checking..."
	default:
		return "Unknown"
	}
}
