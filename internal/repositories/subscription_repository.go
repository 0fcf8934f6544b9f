package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type ISubscriptionRepository interface {
	Create(ctx context.Context, sub *db_models.Subscription) error
	ListByBot(ctx context.Context, botID string) ([]db_models.Subscription, error)
	UpdateStatus(ctx context.Context, subscriptionID string, status db_models.SubscriptionStatus) error
	MarkNotified(ctx context.Context, subscriptionID string, at time.Time) error

	// FindExpired returns ACTIVE subscriptions whose end date is strictly in
	// the past, with Bot and Plan loaded for the sweep.
	FindExpired(ctx context.Context, now time.Time) ([]db_models.Subscription, error)

	// FindExpiringBetween returns un-notified ACTIVE subscriptions whose end
	// date falls in the half-open window [from, to).
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]db_models.Subscription, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) ListByBot(ctx context.Context, botID string) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).Where("bot_id = ?", botID).Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, subscriptionID string, status db_models.SubscriptionStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", subscriptionID).
		Update("status", status).Error
}

func (r *SubscriptionRepository) MarkNotified(ctx context.Context, subscriptionID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", subscriptionID).
		Update("notified_at", at.Unix()).Error
}

func (r *SubscriptionRepository) FindExpired(ctx context.Context, now time.Time) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Bot").
		Preload("Plan").
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", db_models.SubStatusActive, now.Unix()).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Bot").
		Preload("Plan").
		Where("status = ? AND end_date >= ? AND end_date < ? AND notified_at IS NULL",
			db_models.SubStatusActive, from.Unix(), to.Unix()).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
