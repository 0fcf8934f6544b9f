package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/request_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

// WebhookBaseURL is the public origin Telegram delivers updates to, read from
// WEBHOOK_BASE_URL at startup.
type WebhookBaseURL string

type BotService interface {
	Connect(ctx context.Context, operatorID string, req request_models.ConnectBotRequest) (*db_models.Bot, error)
	List(ctx context.Context, operatorID string) ([]db_models.Bot, error)
	Get(ctx context.Context, operatorID, botID string) (*db_models.Bot, error)
	Update(ctx context.Context, operatorID, botID string, req request_models.UpdateBotRequest) (*db_models.Bot, error)
	Delete(ctx context.Context, operatorID, botID string) error
}

type botService struct {
	botRepo     repositories.IBotRepository
	tg          *telegram.Factory
	webhookBase WebhookBaseURL
	logger      *zap.Logger
}

func NewBotService(
	botRepo repositories.IBotRepository,
	tg *telegram.Factory,
	webhookBase WebhookBaseURL,
	logger *zap.Logger,
) BotService {
	return &botService{
		botRepo:     botRepo,
		tg:          tg,
		webhookBase: webhookBase,
		logger:      logger,
	}
}

// Connect validates the token against getMe, registers the webhook and stores
// the bot under the operator.
func (s *botService) Connect(ctx context.Context, operatorID string, req request_models.ConnectBotRequest) (*db_models.Bot, error) {
	opID, err := uuid.Parse(operatorID)
	if err != nil {
		return nil, utils.ErrInvalidRequest
	}

	client := s.tg.Client(req.BotToken)
	me, err := client.GetMe(ctx)
	if err != nil {
		s.logger.Warn("token validation failed", zap.Error(err))
		return nil, utils.ErrInvalidTelegramToken
	}

	bot := &db_models.Bot{
		OperatorID:        opID,
		BotToken:          req.BotToken,
		BotUsername:       me.Username,
		BotName:           me.FirstName,
		WelcomeMessage:    req.WelcomeMessage,
		VIPGroupID:        req.VIPGroupID,
		RegistryChannelID: req.RegistryChannelID,
		IsActive:          true,
		ShowQRCodeInChat:  true,
	}
	if err := s.botRepo.Create(ctx, bot); err != nil {
		s.logger.Error("create bot", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	webhookURL := string(s.webhookBase) + "/telegram-webhook?bot_id=" + bot.ID.String()
	if err := client.SetWebhook(ctx, webhookURL); err != nil {
		s.logger.Error("set webhook", zap.String("bot_id", bot.ID.String()), zap.Error(err))
		// The row stays; the dashboard exposes a reconnect action.
	}

	if err := client.SetMyCommands(ctx, []telegram.BotCommand{
		{Command: "start", Description: "Ver planos disponíveis"},
	}); err != nil {
		s.logger.Warn("set commands", zap.String("bot_id", bot.ID.String()), zap.Error(err))
	}

	return bot, nil
}

func (s *botService) List(ctx context.Context, operatorID string) ([]db_models.Bot, error) {
	bots, err := s.botRepo.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return bots, nil
}

func (s *botService) Get(ctx context.Context, operatorID, botID string) (*db_models.Bot, error) {
	bot, err := s.ownedBot(ctx, operatorID, botID)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

func (s *botService) Update(ctx context.Context, operatorID, botID string, req request_models.UpdateBotRequest) (*db_models.Bot, error) {
	bot, err := s.ownedBot(ctx, operatorID, botID)
	if err != nil {
		return nil, err
	}

	applyBotUpdate(bot, req)

	if req.PaymentGateway != nil {
		switch db_models.PaymentGateway(*req.PaymentGateway) {
		case db_models.GatewayPushinPay, db_models.GatewaySyncpay, db_models.GatewayMercadoPago, db_models.GatewayAsaas:
			bot.PaymentGateway = db_models.PaymentGateway(*req.PaymentGateway)
		default:
			return nil, utils.ErrUnsupportedGateway
		}
	}

	if err := s.botRepo.Update(ctx, bot); err != nil {
		s.logger.Error("update bot", zap.String("bot_id", botID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return bot, nil
}

func (s *botService) Delete(ctx context.Context, operatorID, botID string) error {
	bot, err := s.ownedBot(ctx, operatorID, botID)
	if err != nil {
		return err
	}

	if err := s.tg.Client(bot.BotToken).DeleteWebhook(ctx); err != nil {
		s.logger.Warn("delete webhook", zap.String("bot_id", botID), zap.Error(err))
	}

	if err := s.botRepo.Delete(ctx, botID); err != nil {
		s.logger.Error("delete bot", zap.String("bot_id", botID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

// ownedBot loads a bot and enforces that it belongs to the operator. A bot
// owned by someone else reads as not found.
func (s *botService) ownedBot(ctx context.Context, operatorID, botID string) (*db_models.Bot, error) {
	bot, err := s.botRepo.GetByID(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bot == nil || bot.OperatorID.String() != operatorID {
		return nil, utils.ErrBotNotFound
	}
	return bot, nil
}

func applyBotUpdate(bot *db_models.Bot, req request_models.UpdateBotRequest) {
	if req.WelcomeMessage != nil {
		bot.WelcomeMessage = *req.WelcomeMessage
	}
	bot.MediaURL = coalescePtr(req.MediaURL, bot.MediaURL)
	bot.MediaType = coalescePtr(req.MediaType, bot.MediaType)
	bot.SecondaryText = coalescePtr(req.SecondaryText, bot.SecondaryText)

	if req.CTAEnabled != nil {
		bot.CTAEnabled = *req.CTAEnabled
	}
	bot.CTAText = coalescePtr(req.CTAText, bot.CTAText)
	bot.CTAButtonText = coalescePtr(req.CTAButtonText, bot.CTAButtonText)
	bot.CTAButtonURL = coalescePtr(req.CTAButtonURL, bot.CTAButtonURL)

	if req.VIPGroupID != nil {
		bot.VIPGroupID = *req.VIPGroupID
	}
	if req.RegistryChannelID != nil {
		bot.RegistryChannelID = *req.RegistryChannelID
	}
	if req.IsActive != nil {
		bot.IsActive = *req.IsActive
	}

	if req.PaymentEnabled != nil {
		bot.PaymentEnabled = *req.PaymentEnabled
	}
	if req.PaymentPublicToken != nil {
		bot.PaymentPublicToken = *req.PaymentPublicToken
	}
	if req.PaymentPrivateToken != nil {
		bot.PaymentPrivateToken = *req.PaymentPrivateToken
	}

	bot.PaymentMethodMessage = coalescePtr(req.PaymentMethodMessage, bot.PaymentMethodMessage)
	bot.PaymentMethodButtonText = coalescePtr(req.PaymentMethodButtonText, bot.PaymentMethodButtonText)
	bot.PixMainMessage = coalescePtr(req.PixMainMessage, bot.PixMainMessage)
	bot.PixStatusButtonText = coalescePtr(req.PixStatusButtonText, bot.PixStatusButtonText)
	bot.PixQRCodeButtonText = coalescePtr(req.PixQRCodeButtonText, bot.PixQRCodeButtonText)

	if req.ShowQRCodeInChat != nil {
		bot.ShowQRCodeInChat = *req.ShowQRCodeInChat
	}
	if req.PixFormatBlockquote != nil {
		bot.PixFormatBlockquote = *req.PixFormatBlockquote
	}
	bot.PixMediaURL = coalescePtr(req.PixMediaURL, bot.PixMediaURL)
	bot.PixMediaType = coalescePtr(req.PixMediaType, bot.PixMediaType)
	bot.PixAudioURL = coalescePtr(req.PixAudioURL, bot.PixAudioURL)
}

func coalescePtr(incoming, current *string) *string {
	if incoming != nil {
		return incoming
	}
	return current
}
