package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type IOperatorRepository interface {
	GetByID(ctx context.Context, operatorID string) (*db_models.Operator, error)
	GetByEmail(ctx context.Context, email string) (*db_models.Operator, error)
	Create(ctx context.Context, operator *db_models.Operator) error
}

type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) IOperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) GetByID(ctx context.Context, operatorID string) (*db_models.Operator, error) {
	var operator db_models.Operator
	err := r.db.WithContext(ctx).First(&operator, "id = ?", operatorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*db_models.Operator, error) {
	var operator db_models.Operator
	err := r.db.WithContext(ctx).First(&operator, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) Create(ctx context.Context, operator *db_models.Operator) error {
	return r.db.WithContext(ctx).Create(operator).Error
}
