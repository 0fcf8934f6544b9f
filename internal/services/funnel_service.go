package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"vipgate/internal/models/db_models"
	"vipgate/internal/repositories"
	mem "vipgate/pkg/memcache"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

// Funnel step defaults; every one of them can be overridden per bot from the
// dashboard.
const (
	defaultPlansText         = "📋 Escolha seu plano:"
	defaultNoPlansText       = "Nenhum plano disponível no momento. Por favor, tente novamente mais tarde."
	defaultCTAText           = "👇 Clique no botão abaixo:"
	defaultMethodMessage     = "🌟 Plano selecionado:\n\n🎁 Plano: {plan_name}\n💰 Valor: {plan_value}\n⏳ Duração: {plan_duration}\n\nEscolha o método de pagamento abaixo:"
	defaultMethodButtonText  = "💠 Pagar com Pix"
	defaultPixMainMessage    = "🌟 Você selecionou o seguinte plano:\n\n🎁 Plano: {plan_name}\n💰 Valor: {plan_value}\n\n💠 Pague via Pix Copia e Cola:\n\n{payment_pointer}\n\n👆 Toque na chave PIX acima para copiá-la\n\n‼️ Após o pagamento, clique no botão abaixo:"
	defaultStatusButtonText  = "Verificar Status do Pagamento"
	defaultQRCodeButtonText  = "Mostrar QR Code"
	defaultBackButtonText    = "⬅️ Voltar"
	defaultSubscribeText     = "✅ Assinar Plano"
	defaultSubscribeBumpText = "🎁 Assinar com Bônus"
)

const startCooldown = 2 * time.Second

// FunnelService drives the purchase conversation. It is stateless between
// turns: every branching decision rides in the callback_data payload, which
// keeps concurrent webhook deliveries harmless.
type FunnelService interface {
	HandleUpdate(ctx context.Context, bot *db_models.Bot, update *telegram.Update) error
}

type funnelService struct {
	planRepo repositories.IPlanRepository
	txnRepo  repositories.ITransactionRepository
	payments PaymentService
	tg       *telegram.Factory
	limiter  mem.RateLimiter
	logger   *zap.Logger
}

func NewFunnelService(
	planRepo repositories.IPlanRepository,
	txnRepo repositories.ITransactionRepository,
	payments PaymentService,
	tg *telegram.Factory,
	limiter mem.RateLimiter,
	logger *zap.Logger,
) FunnelService {
	return &funnelService{
		planRepo: planRepo,
		txnRepo:  txnRepo,
		payments: payments,
		tg:       tg,
		limiter:  limiter,
		logger:   logger,
	}
}

func (s *funnelService) HandleUpdate(ctx context.Context, bot *db_models.Bot, update *telegram.Update) error {
	client := s.tg.Client(bot.BotToken)

	if update.Message != nil && strings.HasPrefix(update.Message.Text, "/start") {
		return s.handleStart(ctx, bot, client, update.Message)
	}
	if update.CallbackQuery != nil {
		return s.handleCallback(ctx, bot, client, update.CallbackQuery)
	}
	return nil
}

func (s *funnelService) handleStart(ctx context.Context, bot *db_models.Bot, client *telegram.Client, msg *telegram.Message) error {
	chatID := msg.Chat.ID
	userName := ""
	if msg.From != nil {
		userName = msg.From.FirstName
	}

	if !s.limiter.Allow("start:"+bot.ID.String()+":"+strconv.FormatInt(chatID, 10), startCooldown) {
		return nil
	}

	plans, err := s.planRepo.ListActiveByBot(ctx, bot.ID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if len(plans) == 0 {
		if err := client.SendMessage(ctx, chatID, defaultNoPlansText, nil); err != nil {
			s.logger.Warn("send no-plans message", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return nil
	}

	vars := map[string]string{"profile_name": userName}
	welcomeText := utils.RenderTemplate(bot.WelcomeMessage, vars)

	// Welcome sequence: media → secondary text → CTA → plan list. Each step
	// only depends on the bot config read once above.
	if bot.MediaURL != nil && bot.MediaType != nil {
		switch *bot.MediaType {
		case "image":
			err = client.SendPhoto(ctx, chatID, *bot.MediaURL, welcomeText, nil)
		case "video":
			err = client.SendVideo(ctx, chatID, *bot.MediaURL, welcomeText, nil)
		default:
			err = client.SendMessage(ctx, chatID, welcomeText, nil)
		}
	} else {
		err = client.SendMessage(ctx, chatID, welcomeText, nil)
	}
	if err != nil {
		s.logger.Warn("send welcome", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if bot.SecondaryText != nil && *bot.SecondaryText != "" {
		if err := client.SendMessage(ctx, chatID, utils.RenderTemplate(*bot.SecondaryText, vars), nil); err != nil {
			s.logger.Warn("send secondary text", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	if bot.CTAEnabled && bot.CTAButtonText != nil && *bot.CTAButtonText != "" {
		ctaText := defaultCTAText
		if bot.CTAText != nil && *bot.CTAText != "" {
			ctaText = utils.RenderTemplate(*bot.CTAText, vars)
		}

		var ctaKeyboard telegram.InlineKeyboardMarkup
		hasURL := bot.CTAButtonURL != nil && *bot.CTAButtonURL != ""
		if hasURL {
			ctaKeyboard = telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
				{{Text: *bot.CTAButtonText, URL: *bot.CTAButtonURL}},
			}}
		} else {
			ctaKeyboard = telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
				{{Text: *bot.CTAButtonText, CallbackData: "show_plans"}},
			}}
		}

		if err := client.SendMessage(ctx, chatID, ctaText, &ctaKeyboard); err != nil {
			s.logger.Warn("send cta", zap.Int64("chat_id", chatID), zap.Error(err))
		}

		// An in-chat CTA suspends the funnel until the show_plans callback.
		if !hasURL {
			return nil
		}
	}

	keyboard := buildPlansKeyboard(plans)
	if err := client.SendMessage(ctx, chatID, defaultPlansText, &keyboard); err != nil {
		s.logger.Warn("send plans keyboard", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return nil
}

func (s *funnelService) handleCallback(ctx context.Context, bot *db_models.Bot, client *telegram.Client, query *telegram.CallbackQuery) error {
	// Message gone (deleted, too old): acknowledge and bail out.
	if query.Message == nil || query.Message.Chat.ID == 0 || query.Message.MessageID == 0 {
		return s.answer(ctx, client, query.ID, "", false)
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case data == "show_plans":
		return s.showPlans(ctx, bot, client, query, chatID, 0)
	case data == "back_to_plans":
		return s.showPlans(ctx, bot, client, query, chatID, messageID)
	case strings.HasPrefix(data, "plan_"):
		return s.showPlanDetail(ctx, bot, client, query, chatID, messageID)
	case strings.HasPrefix(data, "subscribe_"):
		return s.showPaymentMethod(ctx, bot, client, query, chatID, messageID)
	case strings.HasPrefix(data, "pix_"):
		return s.generatePix(ctx, bot, client, query, chatID, messageID)
	case strings.HasPrefix(data, "qrcode_"):
		return s.showQRCode(ctx, client, query, chatID)
	case strings.HasPrefix(data, "check_"):
		return s.checkStatus(ctx, client, query)
	}

	// Stale keyboards from a previous configuration are tolerated silently.
	return s.answer(ctx, client, query.ID, "", false)
}

// showPlans renders the plan list; messageID zero sends a fresh message,
// otherwise the tapped one is edited in place.
func (s *funnelService) showPlans(ctx context.Context, bot *db_models.Bot, client *telegram.Client, query *telegram.CallbackQuery, chatID, messageID int64) error {
	plans, err := s.planRepo.ListActiveByBot(ctx, bot.ID.String())
	if err == nil && len(plans) > 0 {
		keyboard := buildPlansKeyboard(plans)
		if messageID == 0 {
			err = client.SendMessage(ctx, chatID, defaultPlansText, &keyboard)
		} else {
			err = client.EditMessageText(ctx, chatID, messageID, defaultPlansText, &keyboard)
		}
	}
	if err != nil {
		s.logger.Warn("render plan list", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return s.answer(ctx, client, query.ID, "", false)
}

func (s *funnelService) showPlanDetail(ctx context.Context, bot *db_models.Bot, client *telegram.Client, query *telegram.CallbackQuery, chatID, messageID int64) error {
	planID := strings.TrimPrefix(query.Data, "plan_")

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err == nil && plan != nil {
		var b strings.Builder
		b.WriteString("<b>" + utils.EscapeHTML(plan.Name) + "</b>\n\n")
		if plan.Description != nil {
			b.WriteString(utils.EscapeHTML(*plan.Description) + "\n\n")
		}
		b.WriteString("💰 <b>Valor:</b> " + utils.FormatPrice(plan.Price) + "\n")
		b.WriteString("⏱ <b>Duração:</b> " + utils.FormatDuration(string(plan.DurationType), plan.DurationDays) + "\n\n")

		hasBump := plan.OrderBumpEnabled && plan.OrderBumpName != nil
		if hasBump {
			b.WriteString("\n🎁 <b>Oferta Especial:</b>\n")
			b.WriteString(utils.EscapeHTML(*plan.OrderBumpName) + "\n")
			if plan.OrderBumpDescription != nil {
				b.WriteString(utils.EscapeHTML(*plan.OrderBumpDescription) + "\n")
			}
			b.WriteString("Adicional: " + utils.FormatPrice(plan.OrderBumpPrice) + "\n")
		}

		keyboard := buildPlanDetailKeyboard(plan, hasBump)
		if err := client.EditMessageText(ctx, chatID, messageID, b.String(), &keyboard); err != nil {
			s.logger.Warn("render plan detail", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	return s.answer(ctx, client, query.ID, "", false)
}

func (s *funnelService) showPaymentMethod(ctx context.Context, bot *db_models.Bot, client *telegram.Client, query *telegram.CallbackQuery, chatID, messageID int64) error {
	planID, withBump, ok := parseFunnelPayload(query.Data, "subscribe_")
	if !ok {
		return s.answer(ctx, client, query.ID, "", false)
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err == nil && plan != nil {
		totalPrice := plan.Price
		if withBump && plan.OrderBumpEnabled {
			totalPrice += plan.OrderBumpPrice
		}

		methodMessage := stringOr(bot.PaymentMethodMessage, defaultMethodMessage)
		rendered := utils.RenderTemplate(methodMessage, map[string]string{
			"profile_name":  query.From.FirstName,
			"plan_name":     plan.Name,
			"plan_value":    utils.FormatPrice(totalPrice),
			"plan_duration": utils.FormatDuration(string(plan.DurationType), plan.DurationDays),
		})

		keyboard := telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: stringOr(bot.PaymentMethodButtonText, defaultMethodButtonText), CallbackData: "pix_" + planID + bumpSuffix(withBump)}},
			{{Text: defaultBackButtonText, CallbackData: "plan_" + planID}},
		}}

		if err := client.EditMessageText(ctx, chatID, messageID, rendered, &keyboard); err != nil {
			s.logger.Warn("render payment method", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	return s.answer(ctx, client, query.ID, "", false)
}

func (s *funnelService) generatePix(ctx context.Context, bot *db_models.Bot, client *telegram.Client, query *telegram.CallbackQuery, chatID, messageID int64) error {
	planID, withBump, ok := parseFunnelPayload(query.Data, "pix_")
	if !ok || !bot.PaymentEnabled {
		return s.answer(ctx, client, query.ID, "", false)
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil || plan == nil {
		return s.answer(ctx, client, query.ID, "", false)
	}

	charge, err := s.payments.GenerateCharge(ctx, ChargeInput{
		BotID:            bot.ID.String(),
		PlanID:           planID,
		TelegramUserID:   strconv.FormatInt(query.From.ID, 10),
		TelegramName:     query.From.FirstName,
		TelegramUsername: query.From.Username,
		WithBump:         withBump,
	})
	if err != nil {
		// The purchaser keeps the payment-method screen; the failure only
		// shows up in operator logs.
		s.logger.Warn("pix generation failed",
			zap.String("bot_id", bot.ID.String()),
			zap.String("plan_id", planID),
			zap.Error(err))
		return s.answer(ctx, client, query.ID, "", false)
	}

	// The payment pointer stays live markup; everything else is escaped
	// through the regular template pass.
	pointer := "<code>" + charge.PixCode + "</code>"
	if bot.PixFormatBlockquote {
		pointer = "<blockquote>" + charge.PixCode + "</blockquote>"
	}

	pixMessage := utils.RenderTemplate(stringOr(bot.PixMainMessage, defaultPixMainMessage), map[string]string{
		"profile_name":  query.From.FirstName,
		"plan_name":     plan.Name,
		"plan_value":    utils.FormatPrice(charge.Amount),
		"plan_duration": utils.FormatDuration(string(plan.DurationType), plan.DurationDays),
	})
	pixMessage = utils.RenderTemplateRaw(pixMessage, map[string]string{"payment_pointer": pointer})

	rows := [][]telegram.InlineKeyboardButton{}
	if bot.ShowQRCodeInChat && charge.QRCodeURL != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: stringOr(bot.PixQRCodeButtonText, defaultQRCodeButtonText), CallbackData: "qrcode_" + charge.TransactionID},
		})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: stringOr(bot.PixStatusButtonText, defaultStatusButtonText), CallbackData: "check_" + charge.TransactionID},
	})
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: defaultBackButtonText, CallbackData: "subscribe_" + planID + bumpSuffix(withBump)},
	})
	keyboard := telegram.InlineKeyboardMarkup{InlineKeyboard: rows}

	if bot.PixMediaURL != nil && bot.PixMediaType != nil {
		media := telegram.InputMedia{
			Type:      "photo",
			Media:     *bot.PixMediaURL,
			Caption:   pixMessage,
			ParseMode: "HTML",
		}
		if *bot.PixMediaType == "video" {
			media.Type = "video"
		}
		err = client.EditMessageMedia(ctx, chatID, messageID, media, &keyboard)
	} else {
		err = client.EditMessageText(ctx, chatID, messageID, pixMessage, &keyboard)
	}
	if err != nil {
		s.logger.Warn("render pix message", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if bot.PixAudioURL != nil && *bot.PixAudioURL != "" {
		if err := client.SendAudio(ctx, chatID, *bot.PixAudioURL); err != nil {
			s.logger.Warn("send pix audio", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	return s.answer(ctx, client, query.ID, "Gerando PIX...", false)
}

// showQRCode sends the stored QR asset as a photo; conversation state is
// untouched.
func (s *funnelService) showQRCode(ctx context.Context, client *telegram.Client, query *telegram.CallbackQuery, chatID int64) error {
	transactionID := strings.TrimPrefix(query.Data, "qrcode_")

	txn, err := s.txnRepo.GetByID(ctx, transactionID)
	if err == nil && txn != nil && txn.PixQRCode != "" {
		if err := client.SendPhoto(ctx, chatID, txn.PixQRCode, "📱 QR Code para pagamento PIX", nil); err != nil {
			s.logger.Warn("send qr code", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	return s.answer(ctx, client, query.ID, "", false)
}

// checkStatus is a poll; actual confirmation arrives out-of-band through the
// provisioning service.
func (s *funnelService) checkStatus(ctx context.Context, client *telegram.Client, query *telegram.CallbackQuery) error {
	transactionID := strings.TrimPrefix(query.Data, "check_")

	txn, err := s.txnRepo.GetByID(ctx, transactionID)
	if err != nil || txn == nil {
		return s.answer(ctx, client, query.ID, "", false)
	}

	if txn.Status == db_models.TxnStatusCompleted {
		return s.answer(ctx, client, query.ID, "✅ Pagamento confirmado! Bem-vindo ao VIP!", true)
	}
	return s.answer(ctx, client, query.ID, "⏳ Pagamento ainda não confirmado. Aguarde...", true)
}

func (s *funnelService) answer(ctx context.Context, client *telegram.Client, queryID, text string, alert bool) error {
	if err := client.AnswerCallbackQuery(ctx, queryID, text, alert); err != nil {
		s.logger.Warn("answer callback query", zap.Error(err))
	}
	return nil
}

func buildPlansKeyboard(plans []db_models.Plan) telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(plans))
	for _, plan := range plans {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         plan.Name + " - " + utils.FormatPrice(plan.Price),
			CallbackData: "plan_" + plan.ID.String(),
		}})
	}
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func buildPlanDetailKeyboard(plan *db_models.Plan, hasBump bool) telegram.InlineKeyboardMarkup {
	rows := [][]telegram.InlineKeyboardButton{}

	if hasBump {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         stringOr(plan.OrderBumpAcceptText, defaultSubscribeBumpText),
			CallbackData: "subscribe_" + plan.ID.String() + "_with_bump",
		}})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{{
		Text:         defaultSubscribeText,
		CallbackData: "subscribe_" + plan.ID.String() + "_no_bump",
	}})
	rows = append(rows, []telegram.InlineKeyboardButton{{
		Text:         defaultBackButtonText,
		CallbackData: "back_to_plans",
	}})

	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// parseFunnelPayload splits "<prefix><planId>_{with|no}_bump" payloads.
func parseFunnelPayload(data, prefix string) (planID string, withBump bool, ok bool) {
	rest := strings.TrimPrefix(data, prefix)
	switch {
	case strings.HasSuffix(rest, "_with_bump"):
		return strings.TrimSuffix(rest, "_with_bump"), true, true
	case strings.HasSuffix(rest, "_no_bump"):
		return strings.TrimSuffix(rest, "_no_bump"), false, true
	}
	return "", false, false
}

func bumpSuffix(withBump bool) string {
	if withBump {
		return "_with_bump"
	}
	return "_no_bump"
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
