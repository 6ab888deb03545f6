package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriberStore persists alert subscribers using GORM.
type SubscriberStore struct {
	db *gorm.DB
}

// NewSubscriberStore initialises a SubscriberStore backed by db.
func NewSubscriberStore(db *gorm.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// AutoMigrate ensures the users table exists with the expected schema.
func (s *SubscriberStore) AutoMigrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("subscriber store not initialised")
	}

	return s.db.WithContext(ctx).AutoMigrate(&userRecord{})
}

// Subscribe records userID as a subscriber. It reports whether a new row
// was created; subscribing an already-subscribed user is a no-op.
func (s *SubscriberStore) Subscribe(ctx context.Context, userID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("subscriber store not initialised")
	}

	record := userRecord{
		DiscordUserID: userID,
		IsSubscribed:  true,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Unsubscribe removes userID and reports whether a row was deleted.
func (s *SubscriberStore) Unsubscribe(ctx context.Context, userID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("subscriber store not initialised")
	}

	result := s.db.WithContext(ctx).
		Where("discord_user_id = ?", userID).
		Delete(&userRecord{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// IsSubscribed reports whether userID is currently registered.
func (s *SubscriberStore) IsSubscribed(ctx context.Context, userID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("subscriber store not initialised")
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("discord_user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Count returns the total number of registered users.
func (s *SubscriberStore) Count(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("subscriber store not initialised")
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error
	return count, err
}

// ListSubscribed returns the user IDs of every active subscriber.
func (s *SubscriberStore) ListSubscribed(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("subscriber store not initialised")
	}

	var userIDs []string
	err := s.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("is_subscribed = ?", true).
		Order("id").
		Pluck("discord_user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}

	return userIDs, nil
}

type userRecord struct {
	ID            uint      `gorm:"primaryKey"`
	DiscordUserID string    `gorm:"column:discord_user_id;size:64;not null;uniqueIndex:idx_users_discord_user_id"`
	IsSubscribed  bool      `gorm:"column:is_subscribed;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (userRecord) TableName() string {
	return "users"
}
