/*
client.go - Pull/push operations against the spreadsheet endpoint

PURPOSE:
  Implements the two sync operations and the status bookkeeping around
  them. Both are synchronous from the caller's side; the scheduler and
  HTTP handlers decide when to invoke them.

FAILURE POLICY:
  Any failure (non-2xx, network error, malformed body) lands in the
  status as an error message and leaves local state untouched. No sync
  error is ever fatal; the kiosk keeps showing last known good local
  state.

STALE RESPONSES:
  In-flight requests are not cancelled on reconfiguration. Instead each
  pull takes a generation number; a response whose generation has been
  superseded by a newer pull is discarded before any field is applied,
  so slow responses can never clobber newer data.

SEE ALSO:
  - merge.go:     the whitelist applied to pull responses
  - scheduler.go: the automatic pull loop
*/
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/plantops/safety-board/board"
)

var (
	// ErrNoEndpoint is returned when a sync operation runs without a
	// configured endpoint.
	ErrNoEndpoint = errors.New("no sync endpoint configured")

	// ErrMissingWriteToken is returned by Push when no write token is
	// configured. The UI uses it to explain the read-only state; no
	// network call is made.
	ErrMissingWriteToken = errors.New("missing write token (read-only mode)")
)

// Client performs pull/push against the configured endpoint and tracks
// the transient sync status.
type Client struct {
	board *board.Board
	httpc *http.Client
	now   func() time.Time

	mu      sync.Mutex
	cfg     Config
	status  Status
	pullGen uint64
}

// NewClient creates a sync client for the given board. The HTTP client
// carries a timeout so a hung endpoint cannot wedge the pull loop.
func NewClient(b *board.Board) *Client {
	return &Client{
		board: b,
		httpc: &http.Client{Timeout: 15 * time.Second},
		now:   time.Now,
	}
}

// Configure replaces the active configuration (normalized). The caller
// restarts the pull scheduler afterward; Configure itself performs no
// network activity.
func (c *Client) Configure(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg.Normalized()
	if !c.cfg.Configured() {
		c.status = Status{}
	}
}

// Config returns the active configuration.
func (c *Client) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Status returns the current transient status.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns the coarse machine state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status.State(c.cfg.Configured())
}

// =============================================================================
// PULL
// =============================================================================

// Pull fetches the remote fields and merges them through the whitelist.
// Local state is untouched on any failure, and a response superseded by
// a newer pull is discarded.
func (c *Client) Pull(ctx context.Context) error {
	c.mu.Lock()
	cfg := c.cfg
	c.pullGen++
	gen := c.pullGen
	c.mu.Unlock()

	if !cfg.Configured() {
		return ErrNoEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Endpoint+"?action=get", nil)
	if err != nil {
		return c.fail(err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return c.fail(err)
	}
	var fields remoteFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return c.fail(fmt.Errorf("malformed pull response: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.pullGen {
		// A newer pull started while this response was in flight.
		log.Printf("[Sheets] discarding stale pull response (gen %d < %d)", gen, c.pullGen)
		return nil
	}
	remoteUpdatedAt := applyRemoteFields(c.board, fields)
	now := c.now()
	c.status.Connected = true
	c.status.LastPull = &now
	c.status.LastError = ""
	if remoteUpdatedAt != "" {
		c.status.RemoteUpdatedAt = remoteUpdatedAt
	}
	return nil
}

// =============================================================================
// PUSH
// =============================================================================

// pushEnvelope is the write request body the Apps Script backend expects.
type pushEnvelope struct {
	Action string   `json:"action"`
	Token  string   `json:"token"`
	Data   pushData `json:"data"`
}

// pushData is the same field subset the pull whitelist covers. The
// calendar grid never appears here.
type pushData struct {
	ManHoursYear  int                  `json:"manHoursYear"`
	PolicyImage   *string              `json:"policyImage"`
	Announcements []board.Announcement `json:"announcements"`
	Incidents     []board.Incident     `json:"incidents"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// Push sends the local shared fields to the endpoint. Requires a write
// token; without one it fails immediately with ErrMissingWriteToken and
// no network call. Push only ever happens on explicit user action.
func (c *Client) Push(ctx context.Context) error {
	c.mu.Lock()
	cfg := c.cfg
	c.mu.Unlock()

	if !cfg.Configured() {
		return ErrNoEndpoint
	}
	if cfg.WriteToken == "" {
		c.mu.Lock()
		c.status.LastError = ErrMissingWriteToken.Error()
		c.mu.Unlock()
		return ErrMissingWriteToken
	}

	var img *string
	if v, ok := c.board.PolicyImage(); ok {
		img = &v
	}
	payload := pushEnvelope{
		Action: "set",
		Token:  cfg.WriteToken,
		Data: pushData{
			ManHoursYear:  c.board.ManHoursYear(),
			PolicyImage:   img,
			Announcements: c.board.Announcements(),
			Incidents:     c.board.Incidents(),
			UpdatedAt:     c.now(),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	c.mu.Lock()
	now := c.now()
	c.status.Connected = true
	c.status.LastPush = &now
	c.status.LastError = ""
	c.mu.Unlock()
	return nil
}

// fail records the error in the status and marks the adapter
// disconnected. Local state is never modified on the failure path.
func (c *Client) fail(err error) error {
	c.mu.Lock()
	c.status.Connected = false
	c.status.LastError = err.Error()
	c.mu.Unlock()
	return err
}
