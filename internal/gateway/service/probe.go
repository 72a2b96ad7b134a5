package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Probe states.
const (
	ProbeUnknown = "unknown"
	ProbeUp      = "up"
	ProbeDown    = "down"
)

// ProbeStatus is the result of the most recent reachability check.
type ProbeStatus struct {
	State     string    `json:"state"`
	CheckedAt time.Time `json:"checked_at,omitzero"`
	Error     string    `json:"error,omitempty"`
}

// Prober periodically checks that the inference service accepts
// connections. Any HTTP response counts as reachable; only transport
// failures mark it down. Chat requests never wait on it.
type Prober struct {
	baseURL    string
	schedule   string
	httpClient *http.Client
	logger     Logger
	metrics    *Metrics

	cron *cron.Cron
	wg   sync.WaitGroup

	mu     sync.RWMutex
	status ProbeStatus
}

// NewProber creates a prober for baseURL. schedule uses cron syntax with
// an optional seconds field, e.g. "@every 30s" or "*/15 * * * * *".
func NewProber(baseURL, schedule string, logger Logger, metrics *Metrics) *Prober {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Prober{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		schedule:   schedule,
		httpClient: &http.Client{Timeout: ProbeTimeout},
		logger:     logger,
		metrics:    metrics,
		status:     ProbeStatus{State: ProbeUnknown},
	}
}

// Status returns a copy of the latest probe result.
func (p *Prober) Status() ProbeStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Check probes the service once and records the result.
func (p *Prober) Check(ctx context.Context) ProbeStatus {
	const op = "probe"
	st := ProbeStatus{State: ProbeUp, CheckedAt: time.Now().UTC()}

	if err := p.ping(ctx); err != nil {
		st.State = ProbeDown
		st.Error = err.Error()
		p.logger.LogWarn(ctx, op, "downstream unreachable", "url", p.baseURL, "error", err)
	}

	p.mu.Lock()
	prev := p.status.State
	p.status = st
	p.mu.Unlock()

	if prev != st.State && st.State == ProbeUp {
		p.logger.LogInfo(ctx, op, "downstream reachable", "url", p.baseURL)
	}
	p.metrics.setDownstreamUp(st.State == ProbeUp)
	return st
}

func (p *Prober) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Start runs a first check in the background and schedules the rest.
func (p *Prober) Start() error {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(p.schedule, func() { p.Check(context.Background()) }); err != nil {
		return fmt.Errorf("schedule probe %q: %w", p.schedule, err)
	}
	p.cron = c
	c.Start()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Check(context.Background())
	}()
	return nil
}

// Stop halts the scheduler and waits for a running check to finish.
func (p *Prober) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.wg.Wait()
}
