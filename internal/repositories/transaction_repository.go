package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/pkg/utils"
)

type ITransactionRepository interface {
	GetByID(ctx context.Context, transactionID string) (*db_models.Transaction, error)
	ListByBot(ctx context.Context, botID string) ([]db_models.Transaction, error)
	Create(ctx context.Context, txn *db_models.Transaction) error
	MarkFailed(ctx context.Context, transactionID string) error
	AttachCharge(ctx context.Context, transactionID, pixCode, qrCodeURL, gatewayPaymentID string) error

	// Complete flips a PENDING transaction to COMPLETED, optionally linking
	// the subscription it paid for, inside the caller's gorm transaction.
	// Returns ErrAlreadyCompleted when the row was no longer PENDING, so
	// concurrent confirmations resolve to exactly one winner at the store.
	Complete(tx *gorm.DB, transactionID string, subscriptionID *uuid.UUID) error
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ITransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepository) ListByBot(ctx context.Context, botID string) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := r.db.WithContext(ctx).Where("bot_id = ?", botID).Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *TransactionRepository) Create(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *TransactionRepository) MarkFailed(ctx context.Context, transactionID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", transactionID).
		Update("status", db_models.TxnStatusFailed).Error
}

func (r *TransactionRepository) AttachCharge(ctx context.Context, transactionID, pixCode, qrCodeURL, gatewayPaymentID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", transactionID).
		Updates(map[string]interface{}{
			"pix_code":           pixCode,
			"pix_qr_code":        qrCodeURL,
			"gateway_payment_id": gatewayPaymentID,
		}).Error
}

func (r *TransactionRepository) Complete(tx *gorm.DB, transactionID string, subscriptionID *uuid.UUID) error {
	updates := map[string]interface{}{"status": db_models.TxnStatusCompleted}
	if subscriptionID != nil {
		updates["subscription_id"] = *subscriptionID
	}
	res := tx.Model(&db_models.Transaction{}).
		Where("id = ? AND status = ?", transactionID, db_models.TxnStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrAlreadyCompleted
	}
	return nil
}
