package services

import (
	"context"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/response_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

// DashboardService backs the operator-facing read surface: aggregate counters
// plus the per-bot subscription and transaction listings. Listings enforce bot
// ownership; a bot owned by someone else reads as not found.
type DashboardService interface {
	BuildStatistics(ctx context.Context, operatorID string) (*response_models.StatisticsReport, error)
	ListSubscriptions(ctx context.Context, operatorID, botID string) ([]db_models.Subscription, error)
	ListTransactions(ctx context.Context, operatorID, botID string) ([]db_models.Transaction, error)
}

type dashboardService struct {
	dashboardRepo repositories.IDashboardRepository
	botRepo       repositories.IBotRepository
	subRepo       repositories.ISubscriptionRepository
	txnRepo       repositories.ITransactionRepository
}

func NewDashboardService(
	dashboardRepo repositories.IDashboardRepository,
	botRepo repositories.IBotRepository,
	subRepo repositories.ISubscriptionRepository,
	txnRepo repositories.ITransactionRepository,
) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		botRepo:       botRepo,
		subRepo:       subRepo,
		txnRepo:       txnRepo,
	}
}

func (s *dashboardService) BuildStatistics(ctx context.Context, operatorID string) (*response_models.StatisticsReport, error) {
	report := &response_models.StatisticsReport{}

	var err error
	if report.TotalBots, err = s.dashboardRepo.CountBots(ctx, operatorID); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.ActiveSubscriptions, err = s.dashboardRepo.CountSubscriptionsByStatus(ctx, operatorID, db_models.SubStatusActive); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.ExpiredSubscriptions, err = s.dashboardRepo.CountSubscriptionsByStatus(ctx, operatorID, db_models.SubStatusExpired); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.PendingTransactions, err = s.dashboardRepo.CountTransactionsByStatus(ctx, operatorID, db_models.TxnStatusPending); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.CompletedPayments, err = s.dashboardRepo.CountTransactionsByStatus(ctx, operatorID, db_models.TxnStatusCompleted); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.TotalRevenue, err = s.dashboardRepo.SumCompletedAmount(ctx, operatorID); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return report, nil
}

func (s *dashboardService) ListSubscriptions(ctx context.Context, operatorID, botID string) ([]db_models.Subscription, error) {
	if err := s.checkBotOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	subs, err := s.subRepo.ListByBot(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return subs, nil
}

func (s *dashboardService) ListTransactions(ctx context.Context, operatorID, botID string) ([]db_models.Transaction, error) {
	if err := s.checkBotOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListByBot(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return txns, nil
}

func (s *dashboardService) checkBotOwnership(ctx context.Context, operatorID, botID string) error {
	bot, err := s.botRepo.GetByID(ctx, botID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if bot == nil || bot.OperatorID.String() != operatorID {
		return utils.ErrBotNotFound
	}
	return nil
}
