package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vipgate/internal/gateways"
	"vipgate/internal/models/db_models"
	"vipgate/internal/repositories"
	"vipgate/internal/services"
	mem "vipgate/pkg/memcache"
	"vipgate/pkg/telegram"
)

func newWebhookRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&db_models.Bot{}, &db_models.Plan{}, &db_models.Package{}, &db_models.Transaction{}))

	// Every Bot API call is swallowed with ok=true.
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": true})
	}))
	t.Cleanup(tgServer.Close)

	factory := telegram.NewFactory(zap.NewNop())
	factory.BaseURL = tgServer.URL

	botRepo := repositories.NewBotRepository(db)
	paymentService := services.NewPaymentService(
		botRepo,
		repositories.NewPlanRepository(db),
		repositories.NewPackageRepository(db),
		repositories.NewTransactionRepository(db),
		gateways.NewRegistry(gateways.NewPushinPay(zap.NewNop()), gateways.NewSyncpay(zap.NewNop())),
		zap.NewNop(),
	)
	funnelService := services.NewFunnelService(
		repositories.NewPlanRepository(db),
		repositories.NewTransactionRepository(db),
		paymentService,
		factory,
		mem.NewTTLRateLimiter(),
		zap.NewNop(),
	)

	controller := NewWebhookController(botRepo, funnelService, zap.NewNop())

	r := gin.New()
	r.POST("/telegram-webhook", controller.HandleUpdate)
	return r, db
}

func postUpdate(r *gin.Engine, path string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"update_id":1,"message":{"message_id":10,"chat":{"id":555},"from":{"id":555,"first_name":"Maria"},"text":"/start"}}`)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRequiresBotID(t *testing.T) {
	r, _ := newWebhookRouter(t)

	w := postUpdate(r, "/telegram-webhook")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnknownBot(t *testing.T) {
	r, _ := newWebhookRouter(t)

	w := postUpdate(r, "/telegram-webhook?bot_id=11111111-2222-3333-4444-555555555555")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookInactiveBot(t *testing.T) {
	r, db := newWebhookRouter(t)

	bot := &db_models.Bot{BotToken: "tok", WelcomeMessage: "Oi", VIPGroupID: "-1", IsActive: false}
	require.NoError(t, db.Create(bot).Error)

	w := postUpdate(r, "/telegram-webhook?bot_id="+bot.ID.String())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookAcceptsUpdate(t *testing.T) {
	r, db := newWebhookRouter(t)

	bot := &db_models.Bot{BotToken: "tok", WelcomeMessage: "Oi {profile_name}", VIPGroupID: "-1", IsActive: true}
	require.NoError(t, db.Create(bot).Error)

	w := postUpdate(r, "/telegram-webhook?bot_id="+bot.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["ok"])
}

func TestWebhookIgnoresUnknownUpdateKinds(t *testing.T) {
	r, db := newWebhookRouter(t)

	bot := &db_models.Bot{BotToken: "tok", WelcomeMessage: "Oi", VIPGroupID: "-1", IsActive: true}
	require.NoError(t, db.Create(bot).Error)

	req := httptest.NewRequest(http.MethodPost, "/telegram-webhook?bot_id="+bot.ID.String(),
		strings.NewReader(`{"update_id":2,"edited_message":{"message_id":9}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
