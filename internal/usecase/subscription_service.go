package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sitewatch/internal/domain"
)

// ErrSubscriberCapReached is returned by Subscribe once the subscriber
// limit is exhausted.
var ErrSubscriberCapReached = errors.New("subscriber cap reached")

// SubscriberRepository abstracts the persistence operations the service
// needs.
type SubscriberRepository interface {
	Subscribe(ctx context.Context, userID string) (bool, error)
	Unsubscribe(ctx context.Context, userID string) (bool, error)
	IsSubscribed(ctx context.Context, userID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	ListSubscribed(ctx context.Context) ([]string, error)
}

// SubscriptionService applies the subscriber cap on top of the repository
// and reports the first time the cap blocks a signup.
type SubscriptionService struct {
	repo SubscriberRepository
	cap  int64

	capAlertOnce sync.Once
	onCapReached func()
}

// SubscriptionServiceOption configures optional service behaviour.
type SubscriptionServiceOption func(*SubscriptionService)

// WithSubscriberCap overrides the default subscriber limit.
func WithSubscriberCap(limit int64) SubscriptionServiceOption {
	return func(s *SubscriptionService) {
		if limit > 0 {
			s.cap = limit
		}
	}
}

// WithCapReachedHandler registers a callback invoked the first time a
// signup is rejected because the cap is full.
func WithCapReachedHandler(handler func()) SubscriptionServiceOption {
	return func(s *SubscriptionService) {
		if handler != nil {
			s.onCapReached = handler
		}
	}
}

// NewSubscriptionService wraps repo with cap enforcement.
func NewSubscriptionService(repo SubscriberRepository, opts ...SubscriptionServiceOption) *SubscriptionService {
	service := &SubscriptionService{
		repo:         repo,
		cap:          domain.MaxSubscribers,
		onCapReached: func() {},
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Subscribe registers userID for availability alerts. It reports whether
// the user was newly added; ErrSubscriberCapReached is returned when the
// subscriber limit is exhausted.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID string) (bool, error) {
	subscribed, err := s.repo.IsSubscribed(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	if subscribed {
		return false, nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count subscribers: %w", err)
	}
	if count >= s.cap {
		s.capAlertOnce.Do(s.onCapReached)
		return false, ErrSubscriberCapReached
	}

	created, err := s.repo.Subscribe(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("subscribe user: %w", err)
	}

	return created, nil
}

// Unsubscribe removes userID and reports whether the user was registered.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID string) (bool, error) {
	removed, err := s.repo.Unsubscribe(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("unsubscribe user: %w", err)
	}

	return removed, nil
}

// IsSubscribed reports whether userID currently receives alerts.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID string) (bool, error) {
	return s.repo.IsSubscribed(ctx, userID)
}

// Count returns the number of registered subscribers.
func (s *SubscriptionService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ListSubscribed returns every active subscriber's user ID.
func (s *SubscriptionService) ListSubscribed(ctx context.Context) ([]string, error) {
	return s.repo.ListSubscribed(ctx)
}
