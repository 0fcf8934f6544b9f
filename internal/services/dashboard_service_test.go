package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

func newDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repositories.NewDashboardRepository(db),
		repositories.NewBotRepository(db),
		repositories.NewSubscriptionRepository(db),
		repositories.NewTransactionRepository(db),
	)
}

func TestDashboardListsBotSubscriptionsAndTransactions(t *testing.T) {
	db := newTestDB(t)

	op := seedOperator(t, db)
	bot := seedBot(t, db, func(b *db_models.Bot) { b.OperatorID = op.ID })
	plan := seedPlan(t, db, bot, nil)
	sub := seedSubscription(t, db, bot, plan, unixPtr(time.Now().Add(24*time.Hour)))
	txn := seedPendingTxn(t, db, bot, plan)

	svc := newDashboardService(db)

	subs, err := svc.ListSubscriptions(context.Background(), op.ID.String(), bot.ID.String())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)

	txns, err := svc.ListTransactions(context.Background(), op.ID.String(), bot.ID.String())
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)
}

func TestDashboardListingsEnforceOwnership(t *testing.T) {
	db := newTestDB(t)

	owner := seedOperator(t, db)
	intruder := seedOperator(t, db)
	bot := seedBot(t, db, func(b *db_models.Bot) { b.OperatorID = owner.ID })

	svc := newDashboardService(db)

	_, err := svc.ListSubscriptions(context.Background(), intruder.ID.String(), bot.ID.String())
	assert.ErrorIs(t, err, utils.ErrBotNotFound)

	_, err = svc.ListTransactions(context.Background(), intruder.ID.String(), bot.ID.String())
	assert.ErrorIs(t, err, utils.ErrBotNotFound)
}
