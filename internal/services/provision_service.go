package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/response_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

type ProvisionService interface {
	// Confirm atomically completes a transaction and provisions whatever it
	// paid for. Exactly one of planID/packageID.
	Confirm(ctx context.Context, transactionID, planID, packageID string) (*response_models.ConfirmPaymentResponse, error)
}

type provisionService struct {
	db          *gorm.DB
	botRepo     repositories.IBotRepository
	planRepo    repositories.IPlanRepository
	packageRepo repositories.IPackageRepository
	txnRepo     repositories.ITransactionRepository
	subRepo     repositories.ISubscriptionRepository
	tg          *telegram.Factory
	logger      *zap.Logger
}

func NewProvisionService(
	db *gorm.DB,
	botRepo repositories.IBotRepository,
	planRepo repositories.IPlanRepository,
	packageRepo repositories.IPackageRepository,
	txnRepo repositories.ITransactionRepository,
	subRepo repositories.ISubscriptionRepository,
	tg *telegram.Factory,
	logger *zap.Logger,
) ProvisionService {
	return &provisionService{
		db:          db,
		botRepo:     botRepo,
		planRepo:    planRepo,
		packageRepo: packageRepo,
		txnRepo:     txnRepo,
		subRepo:     subRepo,
		tg:          tg,
		logger:      logger,
	}
}

func (s *provisionService) Confirm(ctx context.Context, transactionID, planID, packageID string) (*response_models.ConfirmPaymentResponse, error) {
	if transactionID == "" || (planID == "") == (packageID == "") {
		return nil, utils.ErrInvalidRequest
	}

	txn, err := s.txnRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}
	if txn.Status == db_models.TxnStatusCompleted {
		return nil, utils.ErrAlreadyCompleted
	}
	if txn.ExpiresAt > 0 && time.Now().Unix() > txn.ExpiresAt {
		return nil, utils.ErrTransactionExpired
	}

	var plan *db_models.Plan
	var pkg *db_models.Package
	if planID != "" {
		plan, err = s.planRepo.GetByID(ctx, planID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if plan == nil {
			return nil, utils.ErrPlanNotFound
		}
	} else {
		pkg, err = s.packageRepo.GetByID(ctx, packageID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if pkg == nil {
			return nil, utils.ErrPackageNotFound
		}
	}

	bot, err := s.botRepo.GetByID(ctx, txn.BotID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bot == nil {
		return nil, utils.ErrBotNotFound
	}

	client := s.tg.Client(bot.BotToken)
	userID, _ := strconv.ParseInt(txn.TelegramUserID, 10, 64)

	// Best-effort identity lookup; a broken getChat never blocks the
	// provisioning.
	userName := "User"
	userUsername := ""
	if chat, chatErr := client.GetChat(ctx, userID); chatErr == nil {
		if chat.FirstName != "" {
			userName = chat.FirstName
		}
		userUsername = chat.Username
	}

	if plan != nil {
		return s.confirmPlan(ctx, bot, plan, txn, client, userID, userName, userUsername)
	}
	return s.confirmPackage(ctx, bot, pkg, txn, client, userID, userName, userUsername)
}

func (s *provisionService) confirmPlan(
	ctx context.Context,
	bot *db_models.Bot,
	plan *db_models.Plan,
	txn *db_models.Transaction,
	client *telegram.Client,
	userID int64,
	userName, userUsername string,
) (*response_models.ConfirmPaymentResponse, error) {
	startDate := time.Now()
	var endDate *int64
	if !plan.IsLifetime() {
		e := startDate.AddDate(0, 0, plan.DurationDays).Unix()
		endDate = &e
	}

	sub := &db_models.Subscription{
		BotID:            bot.ID,
		PlanID:           plan.ID,
		TelegramUserID:   txn.TelegramUserID,
		TelegramUsername: userUsername,
		TelegramName:     userName,
		StartDate:        startDate.Unix(),
		EndDate:          endDate,
		Status:           db_models.SubStatusActive,
		PaymentID:        txn.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return s.txnRepo.Complete(tx, txn.ID.String(), &sub.ID)
	})
	if errors.Is(err, utils.ErrAlreadyCompleted) {
		// A concurrent confirmation won; the subscription insert above was
		// rolled back with the transaction.
		return nil, utils.ErrAlreadyCompleted
	}
	if err != nil {
		s.logger.Error("provision subscription", zap.String("transaction_id", txn.ID.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	// Payment truth is recorded; everything below is delivery and is logged
	// but never rolled back.
	if err := client.UnbanChatMember(ctx, bot.VIPGroupID, userID); err != nil {
		s.logger.Warn("unban before invite", zap.String("bot_id", bot.ID.String()), zap.Error(err))
	}

	link, err := client.CreateChatInviteLink(ctx, bot.VIPGroupID, 1)
	if err != nil {
		s.logger.Error("create invite link", zap.String("bot_id", bot.ID.String()), zap.Error(err))
	} else {
		validUntil := "Vitalício"
		if endDate != nil {
			validUntil = time.Unix(*endDate, 0).Format("02/01/2006")
		}

		userMessage := "✅ <b>Pagamento Confirmado!</b>\n\n" +
			fmt.Sprintf("Sua assinatura do plano <b>%s</b> está ativa!\n\n", utils.EscapeHTML(plan.Name)) +
			"🎉 Clique no link abaixo para entrar no grupo VIP:\n" +
			link.InviteLink + "\n\n" +
			fmt.Sprintf("📅 Válido até: %s\n", validUntil) +
			"⏰ Você receberá um lembrete 3 dias antes de expirar."

		if err := client.SendMessage(ctx, userID, userMessage, nil); err != nil {
			s.logger.Warn("notify purchaser", zap.String("bot_id", bot.ID.String()), zap.Error(err))
		}

		if bot.RegistryChannelID != "" {
			registryMessage := "🎉 <b>Novo Membro VIP!</b>\n\n" +
				fmt.Sprintf("👤 Usuário: %s%s\n", utils.EscapeHTML(userName), usernameSuffix(userUsername)) +
				fmt.Sprintf("💳 Plano: %s\n", utils.EscapeHTML(plan.Name)) +
				fmt.Sprintf("💵 Valor: %s\n", utils.FormatPrice(txn.Amount)) +
				fmt.Sprintf("📅 Válido até: %s", validUntil)

			if err := client.SendMessage(ctx, bot.RegistryChannelID, registryMessage, nil); err != nil {
				s.logger.Warn("notify registry channel", zap.String("bot_id", bot.ID.String()), zap.Error(err))
			}
		}
	}

	return &response_models.ConfirmPaymentResponse{
		OK:             true,
		SubscriptionID: sub.ID.String(),
		Message:        "Payment confirmed and user added to VIP group",
	}, nil
}

func (s *provisionService) confirmPackage(
	ctx context.Context,
	bot *db_models.Bot,
	pkg *db_models.Package,
	txn *db_models.Transaction,
	client *telegram.Client,
	userID int64,
	userName, userUsername string,
) (*response_models.ConfirmPaymentResponse, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.txnRepo.Complete(tx, txn.ID.String(), nil)
	})
	if errors.Is(err, utils.ErrAlreadyCompleted) {
		return nil, utils.ErrAlreadyCompleted
	}
	if err != nil {
		s.logger.Error("complete package transaction", zap.String("transaction_id", txn.ID.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	userMessage := "✅ <b>Pagamento Confirmado!</b>\n\n" +
		fmt.Sprintf("Você adquiriu: <b>%s</b>\n\n", utils.EscapeHTML(pkg.Name)) +
		fmt.Sprintf("💵 Valor: %s\n\n", utils.FormatPrice(txn.Amount))
	if content := renderDeliverables(pkg.Deliverables); content != "" {
		userMessage += "📬 <b>Seu conteúdo:</b>\n" + content + "\n\n"
	}
	userMessage += "🎉 Obrigado pela compra!"

	if err := client.SendMessage(ctx, userID, userMessage, nil); err != nil {
		s.logger.Warn("notify purchaser", zap.String("bot_id", bot.ID.String()), zap.Error(err))
	}

	if bot.RegistryChannelID != "" {
		registryMessage := "💰 <b>Nova Compra!</b>\n\n" +
			fmt.Sprintf("👤 Usuário: %s%s\n", utils.EscapeHTML(userName), usernameSuffix(userUsername)) +
			fmt.Sprintf("📦 Pacote: %s\n", utils.EscapeHTML(pkg.Name)) +
			fmt.Sprintf("💵 Valor: %s", utils.FormatPrice(txn.Amount))

		if err := client.SendMessage(ctx, bot.RegistryChannelID, registryMessage, nil); err != nil {
			s.logger.Warn("notify registry channel", zap.String("bot_id", bot.ID.String()), zap.Error(err))
		}
	}

	return &response_models.ConfirmPaymentResponse{
		OK:      true,
		Message: "Package payment confirmed",
	}, nil
}

func usernameSuffix(username string) string {
	if username == "" {
		return ""
	}
	return " (@" + username + ")"
}

// renderDeliverables flattens the package payload into one bullet per entry,
// sorted by label so the message is stable.
func renderDeliverables(raw datatypes.JSON) string {
	if len(raw) == 0 {
		return ""
	}

	var items map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return ""
	}

	labels := make([]string, 0, len(items))
	for label := range items {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	for _, label := range labels {
		b.WriteString(fmt.Sprintf("• <b>%s</b>: %s\n", utils.EscapeHTML(label), utils.EscapeHTML(fmt.Sprint(items[label]))))
	}
	return strings.TrimRight(b.String(), "\n")
}
