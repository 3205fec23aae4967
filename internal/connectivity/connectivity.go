// Package connectivity tracks whether the service can reach the internet.
//
// A Monitor probes a well-known HTTP endpoint on an interval and publishes
// online/offline transitions to subscribers. Components that need the
// network (the symptom checker) consult the monitor before acting.
package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// Defaults for the probe loop.
const (
	DefaultProbeURL     = "https://clients3.google.com/generate_204"
	DefaultInterval     = 30 * time.Second
	DefaultProbeTimeout = 5 * time.Second
)

// Opts holds configuration options for the Monitor.
type Opts struct {
	ProbeURL string
	Interval time.Duration
	Client   *http.Client
}

// Option defines a configuration option for the Monitor.
type Option func(*Opts)

// WithProbeURL sets the endpoint probed for reachability.
func WithProbeURL(url string) Option {
	return func(o *Opts) { o.ProbeURL = url }
}

// WithInterval sets the time between probes.
func WithInterval(d time.Duration) Option {
	return func(o *Opts) { o.Interval = d }
}

// WithHTTPClient sets the HTTP client used for probes.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.Client = c }
}

// Monitor probes for connectivity and reports the current state.
type Monitor struct {
	probeURL string
	interval time.Duration
	client   *http.Client

	mu      sync.RWMutex
	online  bool
	known   bool // false until the first probe completes
	subs    []chan bool
	stop    chan struct{}
	stopped bool
}

// NewMonitor creates a connectivity monitor, falling back to the
// CONNECTIVITY_PROBE_URL environment variable for the probe endpoint.
func NewMonitor(opts ...Option) *Monitor {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ProbeURL == "" {
		cfg.ProbeURL = os.Getenv("CONNECTIVITY_PROBE_URL")
	}
	if cfg.ProbeURL == "" {
		cfg.ProbeURL = DefaultProbeURL
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: DefaultProbeTimeout}
	}

	return &Monitor{
		probeURL: cfg.ProbeURL,
		interval: cfg.Interval,
		client:   cfg.Client,
		stop:     make(chan struct{}),
	}
}

// Start runs an immediate probe and then probes on the configured interval
// until Stop is called or the context is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.CheckNow(ctx)

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.CheckNow(ctx)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	slog.Debug("Connectivity monitor started", "probe_url", m.probeURL, "interval", m.interval)
}

// Stop halts the probe loop and closes subscriber channels.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	close(m.stop)
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
}

// CheckNow performs a single probe and returns the resulting online state.
func (m *Monitor) CheckNow(ctx context.Context) bool {
	online := m.probe(ctx)
	m.setOnline(online)
	return online
}

func (m *Monitor) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.probeURL, nil)
	if err != nil {
		slog.Error("Connectivity probe request creation failed", "error", err)
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		slog.Debug("Connectivity probe failed", "error", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := !m.known || m.online != online
	m.online = online
	m.known = true
	subs := m.subs
	stopped := m.stopped
	m.mu.Unlock()

	if !changed || stopped {
		return
	}
	slog.Info("Connectivity state changed", "online", online)
	for _, ch := range subs {
		select {
		case ch <- online:
		default:
			// Subscriber not keeping up; it will see the state on its next read.
		}
	}
}

// Online reports the state observed by the most recent probe. Before any
// probe has completed the monitor reports offline.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.known && m.online
}

// Subscribe returns a channel that receives each online/offline transition.
// The channel is closed when the monitor stops.
func (m *Monitor) Subscribe() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan bool, 1)
	m.subs = append(m.subs, ch)
	return ch
}
