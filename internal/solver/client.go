package solver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// ErrTimeout is returned when the service fails to answer within the
// configured budget. Never fatal; the caller falls back.
var ErrTimeout = errors.New("solver: service timed out")

// SolveRequest is the full input contract of the external service.
type SolveRequest struct {
	Op string `json:"op"` // always "solve"

	OOPRange []float64 `json:"oop_range"` // 1326 combo weights
	IPRange  []float64 `json:"ip_range"`  // 1326 combo weights
	Board    []int     `json:"board"`     // 3-5 card ids

	StartingPot    int       `json:"starting_pot"`
	EffectiveStack int       `json:"effective_stack"`
	BetSizes       []float64 `json:"bet_sizes"`

	MaxIterations        int     `json:"max_iterations"`
	TimeBudgetMS         int     `json:"time_budget_ms"`
	TargetExploitability float64 `json:"target_exploitability"`

	History []AbstractAction `json:"history"`
}

// SolveResponse is the service's answer: the actions available to the
// player to act, a per-combo strategy row for each, and the resolved
// history replay.
type SolveResponse struct {
	Actions []AbstractAction `json:"actions"`

	// Strategy holds one probability per combo per action:
	// Strategy[combo][action].
	Strategy [][]float64 `json:"strategy"`

	Iterations     int     `json:"iterations"`
	Exploitability float64 `json:"exploitability"`

	Steps []HistoryStep `json:"steps"`
	Actor string        `json:"actor"` // "oop" or "ip"

	Error string `json:"error,omitempty"`
}

// Capabilities is the service's answer to the startup probe.
type Capabilities struct {
	Variant       string `json:"variant"` // "full" or "fallback"
	MaxIterations int    `json:"max_iterations"`

	Error string `json:"error,omitempty"`
}

// probeRequest asks the service which solver variant the host can run.
type probeRequest struct {
	Op string `json:"op"` // always "probe"
}

// Client is a request/response WebSocket client for the external
// equilibrium-solving service. Each call dials a fresh connection; the
// service is stateless between solves.
type Client struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	dialer *websocket.Dialer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClock injects the clock used for the solve deadline.
func WithClock(clock quartz.Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// WithDialer overrides the WebSocket dialer.
func WithDialer(d *websocket.Dialer) ClientOption {
	return func(c *Client) { c.dialer = d }
}

// NewClient builds a service client from a validated configuration.
func NewClient(cfg Config, logger *log.Logger, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:    cfg,
		logger: logger.WithPrefix("solver"),
		clock:  quartz.NewReal(),
		dialer: websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Timeout returns the configured round-trip budget.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.cfg.TimeoutMS) * time.Millisecond
}

// Probe asks the service which variant this host can run. Done once at
// startup; a failed probe means the bridge stays in heuristic mode.
func (c *Client) Probe(ctx context.Context) (Capabilities, error) {
	var caps Capabilities
	err := c.roundTrip(ctx, probeRequest{Op: "probe"}, &caps)
	if err != nil {
		return Capabilities{}, err
	}
	if caps.Error != "" {
		return Capabilities{}, fmt.Errorf("solver: probe refused: %s", caps.Error)
	}
	if caps.Variant == "" {
		return Capabilities{}, fmt.Errorf("solver: probe returned no variant")
	}
	c.logger.Info("solver probed", "variant", caps.Variant, "max_iterations", caps.MaxIterations)
	return caps, nil
}

// Solve sends one solve request and waits for the answer within the
// configured budget.
func (c *Client) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	req.Op = "solve"
	req.MaxIterations = c.cfg.MaxIterations
	req.TimeBudgetMS = c.cfg.TimeoutMS
	req.TargetExploitability = c.cfg.TargetExploitability
	if len(req.BetSizes) == 0 {
		req.BetSizes = c.cfg.BetSizes
	}

	var resp SolveResponse
	if err := c.roundTrip(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("solver: service error: %s", resp.Error)
	}
	if len(resp.Actions) == 0 {
		return nil, fmt.Errorf("solver: service returned no actions")
	}
	if len(resp.Strategy) != NumCombos {
		return nil, fmt.Errorf("solver: strategy has %d rows, want %d", len(resp.Strategy), NumCombos)
	}
	c.logger.Debug("solve finished",
		"iterations", resp.Iterations,
		"exploitability", resp.Exploitability,
		"actions", len(resp.Actions))
	return &resp, nil
}

// roundTrip dials, sends one JSON message and decodes one JSON answer,
// bounded by the context and the configured timeout. The connection is
// released on every exit path.
func (c *Client) roundTrip(ctx context.Context, req, resp any) error {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("solver: invalid service URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	conn, _, err := c.dialer.DialContext(dialCtx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("solver: dial %s: %w", u.String(), err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("solver: send: %w", err)
	}

	timer := c.clock.NewTimer(c.Timeout())
	defer timer.Stop()

	readErr := make(chan error, 1)
	go func() {
		readErr <- conn.ReadJSON(resp)
	}()

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("solver: receive: %w", err)
		}
		return nil
	case <-timer.C:
		// Unblock the reader goroutine.
		_ = conn.Close()
		return ErrTimeout
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	}
}
