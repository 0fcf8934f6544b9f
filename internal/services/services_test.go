package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/pkg/telegram"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&db_models.Operator{},
		&db_models.Bot{},
		&db_models.Plan{},
		&db_models.Package{},
		&db_models.Subscription{},
		&db_models.Transaction{},
	))
	return db
}

// telegramCall is one recorded Bot API request.
type telegramCall struct {
	Method string
	Body   map[string]interface{}
}

// fakeTelegram answers every Bot API method with ok=true and records what was
// called. Results for getChat and createChatInviteLink can be overridden via
// the Results map, keyed by method name; Delay stalls a method to widen race
// windows in concurrency tests.
type fakeTelegram struct {
	mu      sync.Mutex
	calls   []telegramCall
	Results map[string]interface{}
	Fail    map[string]bool
	Delay   map[string]time.Duration
}

func newFakeTelegram(t *testing.T) (*fakeTelegram, *telegram.Factory) {
	t.Helper()

	fake := &fakeTelegram{
		Results: map[string]interface{}{},
		Fail:    map[string]bool{},
		Delay:   map[string]time.Duration{},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)

		fake.mu.Lock()
		fake.calls = append(fake.calls, telegramCall{Method: method, Body: body})
		failing := fake.Fail[method]
		result := fake.Results[method]
		delay := fake.Delay[method]
		fake.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if failing {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":          false,
				"error_code":  400,
				"description": "forced failure",
			})
			return
		}
		if result == nil {
			result = true
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": result})
	}))
	t.Cleanup(server.Close)

	factory := telegram.NewFactory(zap.NewNop())
	factory.BaseURL = server.URL
	return fake, factory
}

func (f *fakeTelegram) Calls(method string) []telegramCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []telegramCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeTelegram) LastText(method string) string {
	calls := f.Calls(method)
	if len(calls) == 0 {
		return ""
	}
	text, _ := calls[len(calls)-1].Body["text"].(string)
	return text
}

func seedBot(t *testing.T, db *gorm.DB, mutate func(*db_models.Bot)) *db_models.Bot {
	t.Helper()

	bot := &db_models.Bot{
		BotToken:          "token-" + strings.ReplaceAll(t.Name(), "/", "_"),
		BotUsername:       "vip_bot",
		BotName:           "VIP Bot",
		WelcomeMessage:    "Olá {profile_name}!",
		VIPGroupID:        "-100123",
		RegistryChannelID: "-100456",
		IsActive:          true,
		PaymentEnabled:    true,
		ShowQRCodeInChat:  true,
		PaymentGateway:    db_models.GatewayPushinPay,
	}
	if mutate != nil {
		mutate(bot)
	}
	require.NoError(t, db.Create(bot).Error)
	return bot
}

func seedPlan(t *testing.T, db *gorm.DB, bot *db_models.Bot, mutate func(*db_models.Plan)) *db_models.Plan {
	t.Helper()

	plan := &db_models.Plan{
		BotID:        bot.ID,
		Name:         "VIP Mensal",
		DurationType: db_models.DurationMonthly,
		DurationDays: 30,
		Price:        19.9,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(plan)
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}
