/*
scheduler.go - Auto-fill scheduler

PURPOSE:
  Runs the calendar's end-of-day default policy: roughly once per
  minute, and once immediately on startup, every past day of the
  current month that is still unset becomes "normal", and today joins
  them once the clock reaches 16:00. Failing to record a day is not an
  error; it is the expected default path.

DESIGN:
  Ticker + stop channel + WaitGroup. The fill command is idempotent, so
  overlapping or delayed ticks are harmless.

SEE ALSO:
  - board/calendar.go: AutoFillPastDays (the policy itself)
*/
package api

import (
	"log"
	"sync"
	"time"

	"github.com/plantops/safety-board/board"
)

// AutoFillScheduler periodically applies the auto-fill policy.
type AutoFillScheduler struct {
	Board         *board.Board
	CheckInterval time.Duration
	Now           func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewAutoFillScheduler creates a scheduler with the standard 1-minute
// check interval.
func NewAutoFillScheduler(b *board.Board) *AutoFillScheduler {
	return &AutoFillScheduler{
		Board:         b,
		CheckInterval: time.Minute,
		Now:           time.Now,
	}
}

// Start begins the scheduler; the first check runs immediately.
func (s *AutoFillScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run()

	log.Printf("[AutoFill] started with check interval: %v", s.CheckInterval)
}

// Stop halts the scheduler.
func (s *AutoFillScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	log.Printf("[AutoFill] stopped")
}

func (s *AutoFillScheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.check()

	for {
		select {
		case <-s.ticker.C:
			s.check()
		case <-s.stop:
			return
		}
	}
}

func (s *AutoFillScheduler) check() {
	if s.Board.AutoFillPastDays(s.Now()) {
		log.Printf("[AutoFill] filled unset days up to %s", s.Now().Format("2006-01-02 15:04"))
	}
}
