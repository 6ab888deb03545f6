package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory SubscriberRepository for tests.
type memoryRepo struct {
	users []string
}

func (r *memoryRepo) Subscribe(_ context.Context, userID string) (bool, error) {
	for _, existing := range r.users {
		if existing == userID {
			return false, nil
		}
	}
	r.users = append(r.users, userID)
	return true, nil
}

func (r *memoryRepo) Unsubscribe(_ context.Context, userID string) (bool, error) {
	for i, existing := range r.users {
		if existing == userID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) IsSubscribed(_ context.Context, userID string) (bool, error) {
	for _, existing := range r.users {
		if existing == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memoryRepo) ListSubscribed(context.Context) ([]string, error) {
	return append([]string(nil), r.users...), nil
}

func Test_SubscriptionService_Subscribe(t *testing.T) {
	service := NewSubscriptionService(&memoryRepo{})

	created, err := service.Subscribe(context.Background(), "100")

	require.NoError(t, err)
	assert.True(t, created)
}

func Test_SubscriptionService_Subscribe_AlreadySubscribed(t *testing.T) {
	service := NewSubscriptionService(&memoryRepo{})
	ctx := context.Background()

	_, err := service.Subscribe(ctx, "100")
	require.NoError(t, err)

	created, err := service.Subscribe(ctx, "100")

	require.NoError(t, err)
	assert.False(t, created)
}

func Test_SubscriptionService_Subscribe_CapReached(t *testing.T) {
	capAlerts := 0
	service := NewSubscriptionService(
		&memoryRepo{},
		WithSubscriberCap(2),
		WithCapReachedHandler(func() { capAlerts++ }),
	)
	ctx := context.Background()

	for _, userID := range []string{"100", "200"} {
		_, err := service.Subscribe(ctx, userID)
		require.NoError(t, err)
	}

	_, err := service.Subscribe(ctx, "300")
	assert.ErrorIs(t, err, ErrSubscriberCapReached)

	_, err = service.Subscribe(ctx, "400")
	assert.ErrorIs(t, err, ErrSubscriberCapReached)

	// The cap alert fires only for the first rejection.
	assert.Equal(t, 1, capAlerts)
}

func Test_SubscriptionService_Subscribe_ExistingUserBypassesCap(t *testing.T) {
	repo := &memoryRepo{users: []string{"100"}}
	service := NewSubscriptionService(repo, WithSubscriberCap(1))

	created, err := service.Subscribe(context.Background(), "100")

	require.NoError(t, err)
	assert.False(t, created)
}

func Test_SubscriptionService_Unsubscribe(t *testing.T) {
	repo := &memoryRepo{users: []string{"100"}}
	service := NewSubscriptionService(repo)
	ctx := context.Background()

	removed, err := service.Unsubscribe(ctx, "100")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = service.Unsubscribe(ctx, "100")
	require.NoError(t, err)
	assert.False(t, removed)
}
