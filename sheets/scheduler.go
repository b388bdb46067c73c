/*
scheduler.go - Automatic pull loop

PURPOSE:
  When an endpoint is configured, pulls fire immediately and then on a
  fixed interval (>= 15s). Reconfiguring cancels the pending interval
  and starts a fresh one. Push is never scheduled; it is always an
  explicit user action.

DESIGN:
  Ticker + stop channel + WaitGroup, restarted wholesale on config
  change. In-flight pulls are not cancelled by a restart; the client's
  generation guard makes their late responses harmless.
*/
package sheets

import (
	"context"
	"log"
	"sync"
	"time"
)

// PullScheduler drives automatic pulls for a Client.
type PullScheduler struct {
	client *Client

	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewPullScheduler creates a stopped scheduler. Call Restart to begin.
func NewPullScheduler(client *Client) *PullScheduler {
	return &PullScheduler{client: client}
}

// Restart cancels any running loop and, if an endpoint is configured,
// starts a new one with the client's current interval. With no endpoint
// the scheduler simply stays stopped.
func (s *PullScheduler) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	cfg := s.client.Config()
	if !cfg.Configured() {
		return
	}
	interval := time.Duration(cfg.PullIntervalSec) * time.Second

	s.ticker = time.NewTicker(interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.ticker, s.stop)

	log.Printf("[Sheets] pull scheduler started (every %v)", interval)
}

// Stop halts the loop; safe to call when already stopped.
func (s *PullScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *PullScheduler) stopLocked() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.stop = nil
	log.Printf("[Sheets] pull scheduler stopped")
}

func (s *PullScheduler) run(ticker *time.Ticker, stop chan struct{}) {
	defer s.wg.Done()

	// First pull fires immediately, not after one full interval.
	s.pullOnce()

	for {
		select {
		case <-ticker.C:
			s.pullOnce()
		case <-stop:
			return
		}
	}
}

func (s *PullScheduler) pullOnce() {
	if err := s.client.Pull(context.Background()); err != nil {
		log.Printf("[Sheets] pull failed: %v", err)
	}
}
