package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type IPlanRepository interface {
	GetByID(ctx context.Context, planID string) (*db_models.Plan, error)
	ListActiveByBot(ctx context.Context, botID string) ([]db_models.Plan, error)
	ListByBot(ctx context.Context, botID string) ([]db_models.Plan, error)
	Create(ctx context.Context, plan *db_models.Plan) error
	Update(ctx context.Context, plan *db_models.Plan) error
	Delete(ctx context.Context, planID string) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(ctx context.Context, planID string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// ListActiveByBot returns the plans shown in the funnel, cheapest first.
func (r *PlanRepository) ListActiveByBot(ctx context.Context, botID string) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := r.db.WithContext(ctx).
		Where("bot_id = ? AND is_active = ?", botID, true).
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepository) ListByBot(ctx context.Context, botID string) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := r.db.WithContext(ctx).Where("bot_id = ?", botID).Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepository) Create(ctx context.Context, plan *db_models.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) Update(ctx context.Context, plan *db_models.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *PlanRepository) Delete(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Plan{}, "id = ?", planID).Error
}
