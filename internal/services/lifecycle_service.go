package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/response_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

// Expiry warnings go out once, when the end date enters the [3d, 4d) window.
const (
	expiryWarningLead   = 3 * 24 * time.Hour
	expiryWarningWindow = 24 * time.Hour
)

// LifecycleService runs the scheduled sweeps over subscriptions. Both sweeps
// collect per-row failures and keep going; one broken bot token must not
// stall every other tenant.
type LifecycleService interface {
	RemoveExpired(ctx context.Context) (*response_models.SweepReport, error)
	NotifyExpiring(ctx context.Context) (*response_models.SweepReport, error)
}

type lifecycleService struct {
	subRepo repositories.ISubscriptionRepository
	tg      *telegram.Factory
	logger  *zap.Logger
	now     func() time.Time
}

func NewLifecycleService(
	subRepo repositories.ISubscriptionRepository,
	tg *telegram.Factory,
	logger *zap.Logger,
) LifecycleService {
	return &lifecycleService{
		subRepo: subRepo,
		tg:      tg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *lifecycleService) RemoveExpired(ctx context.Context) (*response_models.SweepReport, error) {
	subs, err := s.subRepo.FindExpired(ctx, s.now())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	report := &response_models.SweepReport{
		OK:     true,
		Total:  len(subs),
		Errors: []response_models.SweepError{},
	}

	for _, sub := range subs {
		client := s.tg.Client(sub.Bot.BotToken)
		userID, _ := strconv.ParseInt(sub.TelegramUserID, 10, 64)

		if err := client.BanChatMember(ctx, sub.Bot.VIPGroupID, userID); err != nil {
			s.logger.Warn("ban expired member",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("telegram_user_id", sub.TelegramUserID),
				zap.Error(err))
			report.Errors = append(report.Errors, response_models.SweepError{
				SubscriptionID: sub.ID.String(),
				UserID:         sub.TelegramUserID,
				Error:          err.Error(),
			})
			continue
		}

		if err := s.subRepo.UpdateStatus(ctx, sub.ID.String(), db_models.SubStatusExpired); err != nil {
			s.logger.Error("mark subscription expired",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			report.Errors = append(report.Errors, response_models.SweepError{
				SubscriptionID: sub.ID.String(),
				UserID:         sub.TelegramUserID,
				Error:          err.Error(),
			})
			continue
		}

		expiredMessage := "⛔ <b>Sua assinatura expirou!</b>\n\n" +
			fmt.Sprintf("Seu acesso ao plano <b>%s</b> foi encerrado e você foi removido do grupo VIP.\n\n", utils.EscapeHTML(sub.Plan.Name)) +
			"🔄 Para renovar, envie /start e escolha um novo plano."
		if err := client.SendMessage(ctx, userID, expiredMessage, nil); err != nil {
			s.logger.Warn("notify expired member",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
		}

		report.Processed++
	}

	report.Message = fmt.Sprintf("Processed %d of %d expired subscriptions", report.Processed, report.Total)
	return report, nil
}

func (s *lifecycleService) NotifyExpiring(ctx context.Context) (*response_models.SweepReport, error) {
	now := s.now()
	from := now.Add(expiryWarningLead)
	to := from.Add(expiryWarningWindow)

	subs, err := s.subRepo.FindExpiringBetween(ctx, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	report := &response_models.SweepReport{
		OK:     true,
		Total:  len(subs),
		Errors: []response_models.SweepError{},
	}

	for _, sub := range subs {
		if sub.EndDate == nil {
			continue
		}

		client := s.tg.Client(sub.Bot.BotToken)
		userID, _ := strconv.ParseInt(sub.TelegramUserID, 10, 64)

		daysLeft := int((time.Unix(*sub.EndDate, 0).Sub(now).Hours() + 23) / 24)
		warning := "⏰ <b>Sua assinatura está acabando!</b>\n\n" +
			fmt.Sprintf("Seu plano <b>%s</b> expira em %d dias, no dia %s.\n\n",
				utils.EscapeHTML(sub.Plan.Name), daysLeft, time.Unix(*sub.EndDate, 0).Format("02/01/2006")) +
			"🔄 Para renovar sem perder o acesso, envie /start e escolha um novo plano."

		if err := client.SendMessage(ctx, userID, warning, nil); err != nil {
			s.logger.Warn("send expiry warning",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("telegram_user_id", sub.TelegramUserID),
				zap.Error(err))
			report.Errors = append(report.Errors, response_models.SweepError{
				SubscriptionID: sub.ID.String(),
				UserID:         sub.TelegramUserID,
				Error:          err.Error(),
			})
			continue
		}

		if sub.Bot.RegistryChannelID != "" {
			headsUp := "⏰ <b>Assinatura expirando</b>\n\n" +
				fmt.Sprintf("👤 Usuário: %s%s\n", utils.EscapeHTML(sub.TelegramName), usernameSuffix(sub.TelegramUsername)) +
				fmt.Sprintf("💳 Plano: %s\n", utils.EscapeHTML(sub.Plan.Name)) +
				fmt.Sprintf("📅 Expira em: %s", time.Unix(*sub.EndDate, 0).Format("02/01/2006"))
			if err := client.SendMessage(ctx, sub.Bot.RegistryChannelID, headsUp, nil); err != nil {
				s.logger.Warn("notify registry channel",
					zap.String("subscription_id", sub.ID.String()),
					zap.Error(err))
			}
		}

		// Stamp only after a delivered warning so a failed send retries on
		// the next sweep.
		if err := s.subRepo.MarkNotified(ctx, sub.ID.String(), now); err != nil {
			s.logger.Error("mark subscription notified",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			report.Errors = append(report.Errors, response_models.SweepError{
				SubscriptionID: sub.ID.String(),
				UserID:         sub.TelegramUserID,
				Error:          err.Error(),
			})
			continue
		}

		report.Processed++
	}

	report.Message = fmt.Sprintf("Notified %d of %d expiring subscriptions", report.Processed, report.Total)
	return report, nil
}
