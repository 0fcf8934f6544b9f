package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type IBotRepository interface {
	GetByID(ctx context.Context, botID string) (*db_models.Bot, error)
	ListByOperator(ctx context.Context, operatorID string) ([]db_models.Bot, error)
	Create(ctx context.Context, bot *db_models.Bot) error
	Update(ctx context.Context, bot *db_models.Bot) error
	Delete(ctx context.Context, botID string) error
}

type BotRepository struct {
	db *gorm.DB
}

func NewBotRepository(db *gorm.DB) IBotRepository {
	return &BotRepository{db: db}
}

func (r *BotRepository) GetByID(ctx context.Context, botID string) (*db_models.Bot, error) {
	var bot db_models.Bot
	err := r.db.WithContext(ctx).First(&bot, "id = ?", botID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bot, nil
}

func (r *BotRepository) ListByOperator(ctx context.Context, operatorID string) ([]db_models.Bot, error) {
	var bots []db_models.Bot
	err := r.db.WithContext(ctx).Where("operator_id = ?", operatorID).Find(&bots).Error
	if err != nil {
		return nil, err
	}
	return bots, nil
}

func (r *BotRepository) Create(ctx context.Context, bot *db_models.Bot) error {
	return r.db.WithContext(ctx).Create(bot).Error
}

func (r *BotRepository) Update(ctx context.Context, bot *db_models.Bot) error {
	return r.db.WithContext(ctx).Save(bot).Error
}

// Delete cascades to the bot's plans, packages, subscriptions and
// transactions.
func (r *BotRepository) Delete(ctx context.Context, botID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bot_id = ?", botID).Delete(&db_models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bot_id = ?", botID).Delete(&db_models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bot_id = ?", botID).Delete(&db_models.Plan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bot_id = ?", botID).Delete(&db_models.Package{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Bot{}, "id = ?", botID).Error
	})
}
