package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

func newProvisionService(db *gorm.DB, factory *telegram.Factory) ProvisionService {
	return NewProvisionService(
		db,
		repositories.NewBotRepository(db),
		repositories.NewPlanRepository(db),
		repositories.NewPackageRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewSubscriptionRepository(db),
		factory,
		zap.NewNop(),
	)
}

func seedPendingTxn(t *testing.T, db *gorm.DB, bot *db_models.Bot, plan *db_models.Plan) *db_models.Transaction {
	t.Helper()

	txn := &db_models.Transaction{
		BotID:          bot.ID,
		TelegramUserID: "555",
		TelegramName:   "Maria",
		Amount:         19.9,
		Status:         db_models.TxnStatusPending,
		PaymentGateway: bot.PaymentGateway,
		ExpiresAt:      time.Now().Add(10 * time.Minute).Unix(),
	}
	if plan != nil {
		txn.PlanID = &plan.ID
	}
	require.NoError(t, db.Create(txn).Error)
	return txn
}

func TestConfirmPlanProvisionsSubscription(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Results["getChat"] = map[string]interface{}{"id": 555, "first_name": "Maria", "username": "maria"}
	fake.Results["createChatInviteLink"] = map[string]interface{}{"invite_link": "https://t.me/+abc123"}

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, nil)
	txn := seedPendingTxn(t, db, bot, plan)

	svc := newProvisionService(db, factory)
	resp, err := svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	require.NotEmpty(t, resp.SubscriptionID)

	var sub db_models.Subscription
	require.NoError(t, db.First(&sub, "id = ?", resp.SubscriptionID).Error)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, "555", sub.TelegramUserID)
	require.NotNil(t, sub.EndDate)
	assert.InDelta(t, time.Now().AddDate(0, 0, 30).Unix(), *sub.EndDate, 5)

	var updated db_models.Transaction
	require.NoError(t, db.First(&updated, "id = ?", txn.ID).Error)
	assert.Equal(t, db_models.TxnStatusCompleted, updated.Status)
	require.NotNil(t, updated.SubscriptionID)
	assert.Equal(t, sub.ID, *updated.SubscriptionID)

	// Unban precedes the single-use invite link.
	assert.Len(t, fake.Calls("unbanChatMember"), 1)
	links := fake.Calls("createChatInviteLink")
	require.Len(t, links, 1)
	assert.Equal(t, float64(1), links[0].Body["member_limit"])

	// Purchaser message carries the link; the registry channel is told too.
	messages := fake.Calls("sendMessage")
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Body["text"], "https://t.me/+abc123")
	assert.Contains(t, messages[1].Body["text"], "Novo Membro VIP")
}

func TestConfirmLifetimePlanHasNoEndDate(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Results["createChatInviteLink"] = map[string]interface{}{"invite_link": "https://t.me/+life"}

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, func(p *db_models.Plan) {
		p.DurationType = db_models.DurationLifetime
		p.DurationDays = 0
	})
	txn := seedPendingTxn(t, db, bot, plan)

	svc := newProvisionService(db, factory)
	resp, err := svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
	require.NoError(t, err)

	var sub db_models.Subscription
	require.NoError(t, db.First(&sub, "id = ?", resp.SubscriptionID).Error)
	assert.Nil(t, sub.EndDate)
	assert.Contains(t, fake.LastText("sendMessage"), "Vitalício")
}

func TestConfirmIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Results["createChatInviteLink"] = map[string]interface{}{"invite_link": "https://t.me/+abc"}

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, nil)
	txn := seedPendingTxn(t, db, bot, plan)

	svc := newProvisionService(db, factory)
	_, err := svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
	assert.ErrorIs(t, err, utils.ErrAlreadyCompleted)

	var count int64
	require.NoError(t, db.Model(&db_models.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmConcurrentCallsProvisionOnce(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)
	fake.Results["createChatInviteLink"] = map[string]interface{}{"invite_link": "https://t.me/+abc"}
	// Hold both calls inside Confirm past the upfront status check so the
	// store-level guard is what decides the winner.
	fake.Delay["getChat"] = 300 * time.Millisecond

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, nil)
	txn := seedPendingTxn(t, db, bot, plan)

	svc := newProvisionService(db, factory)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicate int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, utils.ErrAlreadyCompleted):
			duplicate++
		default:
			t.Fatalf("unexpected confirm error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicate)

	var count int64
	require.NoError(t, db.Model(&db_models.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Len(t, fake.Calls("createChatInviteLink"), 1)
}

func TestCompleteOnlyFlipsPendingTransactions(t *testing.T) {
	db := newTestDB(t)

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, nil)
	txn := seedPendingTxn(t, db, bot, plan)

	repo := repositories.NewTransactionRepository(db)
	require.NoError(t, repo.Complete(db, txn.ID.String(), nil))
	assert.ErrorIs(t, repo.Complete(db, txn.ID.String(), nil), utils.ErrAlreadyCompleted)
}

func TestConfirmExpiredTransaction(t *testing.T) {
	db := newTestDB(t)
	_, factory := newFakeTelegram(t)

	bot := seedBot(t, db, nil)
	plan := seedPlan(t, db, bot, nil)
	txn := seedPendingTxn(t, db, bot, plan)
	require.NoError(t, db.Model(txn).Update("expires_at", time.Now().Add(-time.Minute).Unix()).Error)

	svc := newProvisionService(db, factory)
	_, err := svc.Confirm(context.Background(), txn.ID.String(), plan.ID.String(), "")
	assert.ErrorIs(t, err, utils.ErrTransactionExpired)
}

func TestConfirmUnknownTransaction(t *testing.T) {
	db := newTestDB(t)
	_, factory := newFakeTelegram(t)
	seedBot(t, db, nil)

	svc := newProvisionService(db, factory)
	_, err := svc.Confirm(context.Background(), "11111111-2222-3333-4444-555555555555", "11111111-2222-3333-4444-555555555555", "")
	assert.ErrorIs(t, err, utils.ErrTransactionNotFound)
}

func TestConfirmRequiresExactlyOneItem(t *testing.T) {
	db := newTestDB(t)
	_, factory := newFakeTelegram(t)

	svc := newProvisionService(db, factory)
	_, err := svc.Confirm(context.Background(), "txn", "", "")
	assert.ErrorIs(t, err, utils.ErrInvalidRequest)

	_, err = svc.Confirm(context.Background(), "txn", "plan", "pkg")
	assert.ErrorIs(t, err, utils.ErrInvalidRequest)
}

func TestConfirmPackageCompletesWithoutSubscription(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)

	bot := seedBot(t, db, nil)
	pkg := &db_models.Package{
		BotID:    bot.ID,
		Name:     "Pack Fotos",
		Price:    14.9,
		IsActive: true,
	}
	require.NoError(t, db.Create(pkg).Error)

	txn := seedPendingTxn(t, db, bot, nil)
	txn.PackageID = &pkg.ID
	require.NoError(t, db.Save(txn).Error)

	svc := newProvisionService(db, factory)
	resp, err := svc.Confirm(context.Background(), txn.ID.String(), "", pkg.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Empty(t, resp.SubscriptionID)

	var updated db_models.Transaction
	require.NoError(t, db.First(&updated, "id = ?", txn.ID).Error)
	assert.Equal(t, db_models.TxnStatusCompleted, updated.Status)

	// No group mutation for one-time packages.
	assert.Empty(t, fake.Calls("unbanChatMember"))
	assert.Empty(t, fake.Calls("createChatInviteLink"))
	assert.Contains(t, fake.LastText("sendMessage"), "Nova Compra")
}

func TestConfirmPackageSendsDeliverables(t *testing.T) {
	db := newTestDB(t)
	fake, factory := newFakeTelegram(t)

	bot := seedBot(t, db, nil)
	pkg := &db_models.Package{
		BotID:        bot.ID,
		Name:         "Pack Fotos",
		Price:        14.9,
		IsActive:     true,
		Deliverables: datatypes.JSON(`{"Senha":"vip123","Drive":"https://drive.google.com/abc"}`),
	}
	require.NoError(t, db.Create(pkg).Error)

	txn := seedPendingTxn(t, db, bot, nil)
	txn.PackageID = &pkg.ID
	require.NoError(t, db.Save(txn).Error)

	svc := newProvisionService(db, factory)
	_, err := svc.Confirm(context.Background(), txn.ID.String(), "", pkg.ID.String())
	require.NoError(t, err)

	messages := fake.Calls("sendMessage")
	require.NotEmpty(t, messages)
	text, _ := messages[0].Body["text"].(string)
	assert.Contains(t, text, "Seu conteúdo")
	assert.Contains(t, text, "<b>Drive</b>: https://drive.google.com/abc")
	assert.Contains(t, text, "<b>Senha</b>: vip123")
}
