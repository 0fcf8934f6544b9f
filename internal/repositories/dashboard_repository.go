package repositories

import (
	"context"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type IDashboardRepository interface {
	CountBots(ctx context.Context, operatorID string) (int64, error)
	CountSubscriptionsByStatus(ctx context.Context, operatorID string, status db_models.SubscriptionStatus) (int64, error)
	CountTransactionsByStatus(ctx context.Context, operatorID string, status db_models.TransactionStatus) (int64, error)
	SumCompletedAmount(ctx context.Context, operatorID string) (float64, error)
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) IDashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountBots(ctx context.Context, operatorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Bot{}).
		Where("operator_id = ?", operatorID).
		Count(&n).Error
	return n, err
}

func (r *DashboardRepository) CountSubscriptionsByStatus(ctx context.Context, operatorID string, status db_models.SubscriptionStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Joins("JOIN bots ON bots.id = subscriptions.bot_id").
		Where("bots.operator_id = ? AND subscriptions.status = ?", operatorID, status).
		Count(&n).Error
	return n, err
}

func (r *DashboardRepository) CountTransactionsByStatus(ctx context.Context, operatorID string, status db_models.TransactionStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Joins("JOIN bots ON bots.id = transactions.bot_id").
		Where("bots.operator_id = ? AND transactions.status = ?", operatorID, status).
		Count(&n).Error
	return n, err
}

func (r *DashboardRepository) SumCompletedAmount(ctx context.Context, operatorID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Joins("JOIN bots ON bots.id = transactions.bot_id").
		Where("bots.operator_id = ? AND transactions.status = ?", operatorID, db_models.TxnStatusCompleted).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Scan(&total).Error
	return total, err
}
