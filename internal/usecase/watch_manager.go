package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// AlertSender delivers an availability alert to a single user.
type AlertSender interface {
	SendAvailabilityAlert(ctx context.Context, userID, url string) error
}

// SubscriberSource lists the users that should receive alerts.
type SubscriberSource interface {
	ListSubscribed(ctx context.Context) ([]string, error)
}

// WatchErrorStage indicates which step of the alert pipeline failed.
type WatchErrorStage string

const (
	// WatchErrorStageList marks failures while loading the subscriber list.
	WatchErrorStageList WatchErrorStage = "list-subscribers"
	// WatchErrorStageNotify marks failures while delivering an alert to one user.
	WatchErrorStageNotify WatchErrorStage = "notify"
)

// WatchErrorHandler is invoked when a check cycle cannot complete cleanly.
// userID is empty for failures that are not tied to a single subscriber.
type WatchErrorHandler func(url, userID string, stage WatchErrorStage, err error)

// WatchManager runs the periodic availability check loop and fans alerts
// out to subscribers when a site transitions to available.
type WatchManager struct {
	board       *StatusBoard
	subscribers SubscriberSource
	sender      AlertSender

	interval      time.Duration
	probeTimeout  time.Duration
	notifyTimeout time.Duration
	onError       WatchErrorHandler

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// WatchManagerOption configures behavioural aspects of the watch loop.
type WatchManagerOption func(*WatchManager)

// WithWatchInterval defines the cadence between check cycles.
func WithWatchInterval(interval time.Duration) WatchManagerOption {
	return func(m *WatchManager) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithProbeTimeout customises the maximum duration allowed for one full
// probe cycle.
func WithProbeTimeout(timeout time.Duration) WatchManagerOption {
	return func(m *WatchManager) {
		if timeout > 0 {
			m.probeTimeout = timeout
		}
	}
}

// WithNotifyTimeout customises the maximum duration allowed for delivering
// an alert to one subscriber.
func WithNotifyTimeout(timeout time.Duration) WatchManagerOption {
	return func(m *WatchManager) {
		if timeout > 0 {
			m.notifyTimeout = timeout
		}
	}
}

// WithWatchErrorHandler registers the callback used when a cycle fails.
func WithWatchErrorHandler(handler WatchErrorHandler) WatchManagerOption {
	return func(m *WatchManager) {
		if handler != nil {
			m.onError = handler
		}
	}
}

// NewWatchManager builds a manager that probes via board and alerts the
// users listed by subscribers through sender.
func NewWatchManager(
	board *StatusBoard,
	subscribers SubscriberSource,
	sender AlertSender,
	opts ...WatchManagerOption,
) (*WatchManager, error) {
	if board == nil {
		return nil, fmt.Errorf("watch manager missing status board dependency")
	}
	if subscribers == nil {
		return nil, fmt.Errorf("watch manager missing subscriber source dependency")
	}
	if sender == nil {
		return nil, fmt.Errorf("watch manager missing alert sender dependency")
	}

	manager := &WatchManager{
		board:         board,
		subscribers:   subscribers,
		sender:        sender,
		interval:      time.Minute,
		probeTimeout:  30 * time.Second,
		notifyTimeout: 30 * time.Second,
		onError:       func(string, string, WatchErrorStage, error) {},
		stopChan:      make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager, nil
}

// Start launches the watch loop. The first cycle runs immediately;
// subsequent cycles follow at the configured interval until Stop is
// called.
func (m *WatchManager) Start() {
	go m.run()
}

// Stop terminates the watch loop. It is safe to call more than once and
// returns after the loop has exited.
func (m *WatchManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
	<-m.done
}

func (m *WatchManager) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runCycle()

	for {
		select {
		case <-ticker.C:
			m.runCycle()
		case <-m.stopChan:
			return
		}
	}
}

func (m *WatchManager) runCycle() {
	ctxProbe, cancelProbe := context.WithTimeout(context.Background(), m.probeTimeout)
	transitions := m.board.RunCycle(ctxProbe)
	cancelProbe()

	for _, transition := range transitions {
		if !transition.Up {
			continue
		}
		m.alertSubscribers(transition.URL)
	}
}

func (m *WatchManager) alertSubscribers(url string) {
	ctxList, cancelList := context.WithTimeout(context.Background(), m.notifyTimeout)
	userIDs, err := m.subscribers.ListSubscribed(ctxList)
	cancelList()
	if err != nil {
		m.onError(url, "", WatchErrorStageList, fmt.Errorf("failed to list subscribers: %w", err))
		return
	}

	for _, userID := range userIDs {
		ctxSend, cancelSend := context.WithTimeout(context.Background(), m.notifyTimeout)
		err := m.sender.SendAvailabilityAlert(ctxSend, userID, url)
		cancelSend()
		if err != nil {
			m.onError(url, userID, WatchErrorStageNotify, fmt.Errorf("failed to deliver alert: %w", err))
		}
	}
}
