package usecase

import (
	"context"
	"sync"
	"time"

	"sitewatch/internal/domain"
)

// AvailabilityProbe exposes the ability to check whether a single URL is
// currently reachable.
type AvailabilityProbe interface {
	Check(ctx context.Context, url string) bool
}

// StatusBoard tracks the latest known availability of every monitored URL.
// It is written by the watch loop and read by interaction handlers, so all
// access is guarded.
type StatusBoard struct {
	mu       sync.RWMutex
	probe    AvailabilityProbe
	urls     []string
	statuses map[string]domain.SiteStatus

	nowFn func() time.Time
}

// StatusBoardOption configures behavioural aspects of the board.
type StatusBoardOption func(*StatusBoard)

// WithStatusClock overrides the clock used to timestamp probe results
// (useful for testing).
func WithStatusClock(nowFn func() time.Time) StatusBoardOption {
	return func(b *StatusBoard) {
		if nowFn != nil {
			b.nowFn = nowFn
		}
	}
}

// NewStatusBoard builds a board that checks urls via probe.
func NewStatusBoard(probe AvailabilityProbe, urls []string, opts ...StatusBoardOption) *StatusBoard {
	board := &StatusBoard{
		probe:    probe,
		urls:     append([]string(nil), urls...),
		statuses: make(map[string]domain.SiteStatus, len(urls)),
		nowFn:    time.Now,
	}

	for _, opt := range opts {
		opt(board)
	}

	return board
}

// RunCycle probes every monitored URL once and returns the availability
// transitions the cycle produced. The first probe of a URL always counts
// as a transition.
func (b *StatusBoard) RunCycle(ctx context.Context) []domain.Transition {
	var transitions []domain.Transition

	for _, url := range b.urls {
		up := b.probe.Check(ctx, url)
		checkedAt := b.nowFn()

		b.mu.Lock()
		previous := b.statuses[url]
		b.statuses[url] = domain.SiteStatus{
			URL:       url,
			Up:        up,
			CheckedAt: checkedAt,
			Known:     true,
		}
		b.mu.Unlock()

		if !previous.Known || previous.Up != up {
			transitions = append(transitions, domain.Transition{URL: url, Up: up})
		}
	}

	return transitions
}

// Statuses returns a snapshot of every monitored URL in configuration
// order. URLs that have not been probed yet appear with Known set to
// false.
func (b *StatusBoard) Statuses() []domain.SiteStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()

	statuses := make([]domain.SiteStatus, 0, len(b.urls))
	for _, url := range b.urls {
		status, ok := b.statuses[url]
		if !ok {
			status = domain.SiteStatus{URL: url}
		}
		statuses = append(statuses, status)
	}

	return statuses
}

// StatusFor returns the latest status recorded for url.
func (b *StatusBoard) StatusFor(url string) (domain.SiteStatus, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	status, ok := b.statuses[url]
	return status, ok
}

// MonitorCount returns how many URLs the board watches.
func (b *StatusBoard) MonitorCount() int {
	return len(b.urls)
}
