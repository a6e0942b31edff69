// Package presidio manages the optional detached analyzer process: a
// loopback-bound child that offers higher-accuracy analysis over a small HTTP
// contract (GET /health, POST /analyze, POST /shutdown). The Client is the
// single owner of the process handle; every call site shares one handle and
// the readiness flag is guarded by a read/write lock so many Detect calls can
// proceed concurrently while Start/Stop transitions stay exclusive.
package presidio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/varalys/piiguard/internal/types"
)

// State is the lifecycle state of the analyzer process.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// ErrNotReady is returned by Detect when the analyzer is not in Ready state.
// Callers treat it as "layer unavailable this call", never as a scan failure.
var ErrNotReady = errors.New("presidio: analyzer not ready")

// pollInterval is how often the health endpoint is probed during startup.
var pollInterval = time.Second

// Config controls how the analyzer child process is launched and called.
type Config struct {
	// Command launches the analyzer, e.g. ["python3", "-m", "analyzer_server"].
	// Host and Port are appended as --host/--port flags.
	Command []string
	Host    string
	Port    int

	StartTimeout   time.Duration
	RequestTimeout time.Duration
	StopGrace      time.Duration
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 5002
	}
	if c.StartTimeout == 0 {
		c.StartTimeout = 30 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 5 * time.Second
	}
	if c.StopGrace == 0 {
		c.StopGrace = 5 * time.Second
	}
	return c
}

// Client owns the analyzer process handle and readiness flag.
type Client struct {
	cfg  Config
	log  zerolog.Logger
	http *http.Client

	mu    sync.RWMutex
	state State
	cmd   *exec.Cmd
}

// New builds a client in Stopped state. Nothing is launched until Start.
func New(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:   cfg,
		log:   log,
		http:  &http.Client{Timeout: cfg.RequestTimeout},
		state: StateStopped,
	}
}

func (c *Client) baseURL() string {
	return fmt.Sprintf("http://%s:%d", c.cfg.Host, c.cfg.Port)
}

// Status returns the current lifecycle state.
func (c *Client) Status() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start launches the analyzer and polls its health endpoint once per second
// until it answers or the start budget runs out. It is idempotent: calling it
// while Starting or Ready is a no-op. Exhausting the budget terminates the
// child (no orphans) and leaves the client in Failed state.
func (c *Client) Start() error {
	c.mu.Lock()
	switch c.state {
	case StateReady, StateStarting:
		c.mu.Unlock()
		return nil
	}
	if len(c.cfg.Command) == 0 {
		c.state = StateFailed
		c.mu.Unlock()
		return errors.New("presidio: no analyzer command configured")
	}

	args := append(append([]string{}, c.cfg.Command[1:]...),
		"--host", c.cfg.Host, "--port", fmt.Sprintf("%d", c.cfg.Port))
	cmd := exec.Command(c.cfg.Command[0], args...)
	if err := cmd.Start(); err != nil {
		c.state = StateFailed
		c.mu.Unlock()
		return fmt.Errorf("presidio: launch analyzer: %w", err)
	}
	c.cmd = cmd
	c.state = StateStarting
	c.mu.Unlock()

	c.log.Info().Str("url", c.baseURL()).Int("pid", cmd.Process.Pid).Msg("analyzer starting")

	deadline := time.Now().Add(c.cfg.StartTimeout)
	for time.Now().Before(deadline) {
		if c.probeHealth() {
			c.mu.Lock()
			// Stop may have raced us; do not resurrect a stopped client.
			if c.state == StateStarting {
				c.state = StateReady
			}
			state := c.state
			c.mu.Unlock()
			if state == StateReady {
				c.log.Info().Msg("analyzer ready")
				return nil
			}
			return fmt.Errorf("presidio: stopped during startup")
		}
		time.Sleep(pollInterval)
	}

	c.mu.Lock()
	c.reapLocked()
	// Same race as above: a Stop that won must not be overwritten with Failed.
	if c.state == StateStarting {
		c.state = StateFailed
	}
	c.mu.Unlock()
	return fmt.Errorf("presidio: analyzer did not become healthy within %s", c.cfg.StartTimeout)
}

// HealthCheck probes the health endpoint. It has no side effects and treats
// every failure, including a stopped client, as "not ready".
func (c *Client) HealthCheck() bool {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state != StateReady && state != StateStarting {
		return false
	}
	return c.probeHealth()
}

func (c *Client) probeHealth() bool {
	resp, err := c.http.Get(c.baseURL() + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type analyzeRequest struct {
	Text           string   `json:"text"`
	Language       string   `json:"language"`
	Entities       []string `json:"entities,omitempty"`
	ScoreThreshold float64  `json:"score_threshold"`
}

type analyzeEntity struct {
	EntityType string  `json:"entity_type"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

type analyzeResponse struct {
	Entities       []analyzeEntity `json:"entities"`
	ProcessingTime float64         `json:"processing_time"`
}

// Detect analyzes text and returns spans tagged with the external engine
// identity. It is only valid in Ready state and fails fast otherwise; the
// request carries the configured timeout plus whatever deadline ctx holds, so
// a hung analyzer can never stall the caller.
func (c *Client) Detect(ctx context.Context, text string, entities []string, threshold float64) ([]types.DetectedSpan, error) {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state != StateReady {
		return nil, ErrNotReady
	}

	body, err := json.Marshal(analyzeRequest{
		Text:           text,
		Language:       "en",
		Entities:       entities,
		ScoreThreshold: threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("presidio: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("presidio: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("presidio: analyze: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("presidio: analyze: unexpected status %d", resp.StatusCode)
	}

	var ar analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("presidio: decode response: %w", err)
	}

	out := make([]types.DetectedSpan, 0, len(ar.Entities))
	for _, e := range ar.Entities {
		if e.Start < 0 || e.End > len(text) || e.Start > e.End {
			c.log.Warn().Int("start", e.Start).Int("end", e.End).Msg("analyzer returned out-of-range span")
			continue
		}
		matched := e.Text
		if matched == "" {
			matched = text[e.Start:e.End]
		}
		out = append(out, types.DetectedSpan{
			Entity:     normalizeEntity(e.EntityType),
			Text:       matched,
			Start:      e.Start,
			End:        e.End,
			Confidence: e.Score,
			Engine:     types.EngineExternal,
		})
	}
	return out, nil
}

// Stop requests a graceful shutdown, waits a bounded grace period, then
// force-terminates. It is idempotent and safe to call even when Start never
// completed; it performs only blocking calls so last-resort cleanup paths can
// reach it without any async runtime.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd == nil {
		c.state = StateStopped
		return nil
	}

	// Best effort: ask the analyzer to exit on its own.
	shutdownClient := &http.Client{Timeout: time.Second}
	if resp, err := shutdownClient.Post(c.baseURL()+"/shutdown", "application/json", nil); err == nil {
		resp.Body.Close()
	}

	done := make(chan error, 1)
	cmd := c.cmd
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(c.cfg.StopGrace):
		c.log.Warn().Msg("analyzer ignored graceful shutdown, killing")
		_ = cmd.Process.Kill()
		<-done
	}

	c.cmd = nil
	c.state = StateStopped
	c.log.Info().Msg("analyzer stopped")
	return nil
}

// reapLocked kills and reaps the child. Caller holds mu.
func (c *Client) reapLocked() {
	if c.cmd == nil {
		return
	}
	_ = c.cmd.Process.Kill()
	_ = c.cmd.Wait()
	c.cmd = nil
}

// normalizeEntity maps analyzer entity names onto the engine's categories.
// Unknown names pass through untouched so new analyzer entities are not lost.
func normalizeEntity(name string) types.EntityType {
	switch name {
	case "US_SSN":
		return types.EntitySSN
	case "EMAIL_ADDRESS":
		return types.EntityEmail
	case "PHONE_NUMBER":
		return types.EntityPhone
	case "IP_ADDRESS":
		return types.EntityIPAddress
	case "CREDIT_CARD":
		return types.EntityCreditCard
	case "PERSON":
		return types.EntityPerson
	case "ORG", "ORGANIZATION":
		return types.EntityOrganization
	case "MEDICAL_RECORD":
		return types.EntityMedicalRecord
	}
	return types.EntityType(name)
}
