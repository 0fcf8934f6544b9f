package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vipgate/internal/gateways"
	"vipgate/internal/models/db_models"
	"vipgate/internal/models/response_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

const chargeTTL = 15 * time.Minute

// ChargeInput identifies what is being bought and by whom. Exactly one of
// PlanID/PackageID must be set.
type ChargeInput struct {
	BotID            string
	PlanID           string
	PackageID        string
	TelegramUserID   string
	TelegramName     string
	TelegramUsername string
	WithBump         bool
}

type PaymentService interface {
	GenerateCharge(ctx context.Context, input ChargeInput) (*response_models.GeneratePixResponse, error)
}

type paymentService struct {
	botRepo     repositories.IBotRepository
	planRepo    repositories.IPlanRepository
	packageRepo repositories.IPackageRepository
	txnRepo     repositories.ITransactionRepository
	registry    *gateways.Registry
	logger      *zap.Logger
}

func NewPaymentService(
	botRepo repositories.IBotRepository,
	planRepo repositories.IPlanRepository,
	packageRepo repositories.IPackageRepository,
	txnRepo repositories.ITransactionRepository,
	registry *gateways.Registry,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		botRepo:     botRepo,
		planRepo:    planRepo,
		packageRepo: packageRepo,
		txnRepo:     txnRepo,
		registry:    registry,
		logger:      logger,
	}
}

func (s *paymentService) GenerateCharge(ctx context.Context, input ChargeInput) (*response_models.GeneratePixResponse, error) {
	if (input.PlanID == "") == (input.PackageID == "") {
		return nil, utils.ErrInvalidRequest
	}

	bot, err := s.botRepo.GetByID(ctx, input.BotID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bot == nil {
		return nil, utils.ErrBotNotFound
	}
	if !bot.PaymentEnabled {
		return nil, utils.ErrPaymentDisabled
	}

	amount, itemName, planID, packageID, err := s.resolveItem(ctx, input)
	if err != nil {
		return nil, err
	}

	adapter, err := s.registry.Resolve(bot.PaymentGateway)
	if err != nil {
		return nil, err
	}

	// Pending row first, gateway second. A rejected charge leaves a FAILED
	// record behind instead of vanishing without trace.
	txn := &db_models.Transaction{
		BotID:            bot.ID,
		PlanID:           planID,
		PackageID:        packageID,
		TelegramUserID:   input.TelegramUserID,
		TelegramName:     input.TelegramName,
		TelegramUsername: input.TelegramUsername,
		Amount:           amount,
		Status:           db_models.TxnStatusPending,
		PaymentGateway:   bot.PaymentGateway,
		ExpiresAt:        time.Now().Add(chargeTTL).Unix(),
	}
	if meta, err := json.Marshal(map[string]interface{}{
		"item_name": itemName,
		"with_bump": input.WithBump,
	}); err == nil {
		txn.Metadata = meta
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		s.logger.Error("create transaction", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	charge, err := adapter.CreateCharge(ctx, gateways.Credentials{
		PublicToken:  bot.PaymentPublicToken,
		PrivateToken: bot.PaymentPrivateToken,
	}, gateways.ChargeRequest{
		AmountCents:   utils.AmountInCents(amount),
		TransactionID: txn.ID.String(),
		PayerName:     input.TelegramName,
		PayerID:       input.TelegramUserID,
	})
	if err != nil {
		if markErr := s.txnRepo.MarkFailed(ctx, txn.ID.String()); markErr != nil {
			s.logger.Error("mark transaction failed", zap.Error(markErr))
		}
		s.logger.Warn("pix charge failed",
			zap.String("bot_id", bot.ID.String()),
			zap.String("gateway", string(bot.PaymentGateway)),
			zap.Error(err))
		return nil, err
	}

	if err := s.txnRepo.AttachCharge(ctx, txn.ID.String(), charge.PixCode, charge.QRCodeURL, charge.GatewayPaymentID); err != nil {
		s.logger.Error("attach charge", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &response_models.GeneratePixResponse{
		OK:            true,
		TransactionID: txn.ID.String(),
		PixCode:       charge.PixCode,
		QRCodeURL:     charge.QRCodeURL,
		Amount:        amount,
		ItemName:      itemName,
		ExpiresAt:     txn.ExpiresAt,
	}, nil
}

// resolveItem loads the plan or package and computes the charge total. The
// order bump is priced here so the webhook funnel and the HTTP endpoint
// cannot disagree on the amount.
func (s *paymentService) resolveItem(ctx context.Context, input ChargeInput) (float64, string, *uuid.UUID, *uuid.UUID, error) {
	if input.PlanID != "" {
		plan, err := s.planRepo.GetByID(ctx, input.PlanID)
		if err != nil {
			return 0, "", nil, nil, utils.ErrDatabaseError
		}
		if plan == nil || !plan.IsActive {
			return 0, "", nil, nil, utils.ErrPlanNotFound
		}
		amount := plan.Price
		if input.WithBump && plan.OrderBumpEnabled {
			amount += plan.OrderBumpPrice
		}
		return amount, plan.Name, &plan.ID, nil, nil
	}

	pkg, err := s.packageRepo.GetByID(ctx, input.PackageID)
	if err != nil {
		return 0, "", nil, nil, utils.ErrDatabaseError
	}
	if pkg == nil || !pkg.IsActive {
		return 0, "", nil, nil, utils.ErrPackageNotFound
	}
	amount := pkg.Price
	if input.WithBump && pkg.OrderBumpEnabled {
		amount += pkg.OrderBumpPrice
	}
	return amount, pkg.Name, nil, &pkg.ID, nil
}
