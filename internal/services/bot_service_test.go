package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/request_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

func newBotService(db *gorm.DB, factory *telegram.Factory) BotService {
	return NewBotService(
		repositories.NewBotRepository(db),
		factory,
		WebhookBaseURL("https://api.example.com"),
		zap.NewNop(),
	)
}

func seedOperator(t *testing.T, db *gorm.DB) *db_models.Operator {
	t.Helper()

	op := &db_models.Operator{Name: "Ana", Email: uuid.NewString() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(op).Error)
	return op
}

func TestConnectBot(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Results["getMe"] = map[string]interface{}{"id": 42, "first_name": "VIP Bot", "username": "vip_bot"}

	op := seedOperator(t, db)
	svc := newBotService(db, factory)

	bot, err := svc.Connect(context.Background(), op.ID.String(), request_models.ConnectBotRequest{
		BotToken:       "12345:token",
		WelcomeMessage: "Olá {profile_name}!",
		VIPGroupID:     "-100123",
	})
	require.NoError(t, err)
	assert.Equal(t, "vip_bot", bot.BotUsername)
	assert.Equal(t, "VIP Bot", bot.BotName)
	assert.True(t, bot.IsActive)

	hooks := fake.Calls("setWebhook")
	require.Len(t, hooks, 1)
	assert.Equal(t, "https://api.example.com/telegram-webhook?bot_id="+bot.ID.String(), hooks[0].Body["url"])
	assert.Len(t, fake.Calls("setMyCommands"), 1)
}

func TestConnectBotInvalidToken(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Fail["getMe"] = true

	op := seedOperator(t, db)
	svc := newBotService(db, factory)

	_, err := svc.Connect(context.Background(), op.ID.String(), request_models.ConnectBotRequest{
		BotToken:       "bad-token",
		WelcomeMessage: "Olá!",
		VIPGroupID:     "-100123",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidTelegramToken)
}

func TestUpdateBotOwnership(t *testing.T) {
	db := newTestDB(t)
	_, factory := newFakeTelegram(t)

	op := seedOperator(t, db)
	other := seedOperator(t, db)
	bot := seedBot(t, db, func(b *db_models.Bot) { b.OperatorID = op.ID })

	svc := newBotService(db, factory)

	enabled := true
	_, err := svc.Update(context.Background(), other.ID.String(), bot.ID.String(), request_models.UpdateBotRequest{
		PaymentEnabled: &enabled,
	})
	assert.ErrorIs(t, err, utils.ErrBotNotFound)

	updated, err := svc.Update(context.Background(), op.ID.String(), bot.ID.String(), request_models.UpdateBotRequest{
		PaymentEnabled: &enabled,
	})
	require.NoError(t, err)
	assert.True(t, updated.PaymentEnabled)
}

func TestUpdateBotRejectsUnknownGateway(t *testing.T) {
	db := newTestDB(t)
	_, factory := newFakeTelegram(t)

	op := seedOperator(t, db)
	bot := seedBot(t, db, func(b *db_models.Bot) { b.OperatorID = op.ID })

	svc := newBotService(db, factory)

	gateway := "stripe"
	_, err := svc.Update(context.Background(), op.ID.String(), bot.ID.String(), request_models.UpdateBotRequest{
		PaymentGateway: &gateway,
	})
	assert.ErrorIs(t, err, utils.ErrUnsupportedGateway)

	gateway = "syncpay"
	updated, err := svc.Update(context.Background(), op.ID.String(), bot.ID.String(), request_models.UpdateBotRequest{
		PaymentGateway: &gateway,
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.GatewaySyncpay, updated.PaymentGateway)
}

func TestDeleteBotDropsWebhookAndChildren(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)

	op := seedOperator(t, db)
	bot := seedBot(t, db, func(b *db_models.Bot) { b.OperatorID = op.ID })
	seedPlan(t, db, bot, nil)

	svc := newBotService(db, factory)
	require.NoError(t, svc.Delete(context.Background(), op.ID.String(), bot.ID.String()))

	assert.Len(t, fake.Calls("deleteWebhook"), 1)

	var count int64
	require.NoError(t, db.Model(&db_models.Bot{}).Where("id = ?", bot.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&db_models.Plan{}).Where("bot_id = ?", bot.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInactiveFlagsSurviveCreate(t *testing.T) {
	db := newTestDB(t)

	bot := seedBot(t, db, func(b *db_models.Bot) {
		b.IsActive = false
		b.ShowQRCodeInChat = false
	})
	plan := seedPlan(t, db, bot, func(p *db_models.Plan) { p.IsActive = false })
	pkg := &db_models.Package{BotID: bot.ID, Name: "Pack", Price: 9.9, IsActive: false}
	require.NoError(t, db.Create(pkg).Error)

	var reloadedBot db_models.Bot
	require.NoError(t, db.First(&reloadedBot, "id = ?", bot.ID).Error)
	assert.False(t, reloadedBot.IsActive)
	assert.False(t, reloadedBot.ShowQRCodeInChat)

	var reloadedPlan db_models.Plan
	require.NoError(t, db.First(&reloadedPlan, "id = ?", plan.ID).Error)
	assert.False(t, reloadedPlan.IsActive)

	var reloadedPkg db_models.Package
	require.NoError(t, db.First(&reloadedPkg, "id = ?", pkg.ID).Error)
	assert.False(t, reloadedPkg.IsActive)
}
