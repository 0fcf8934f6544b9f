package telegram_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vipgate/pkg/telegram"
)

var Module = fx.Provide(provideFactory)

func provideFactory(logger *zap.Logger) *telegram.Factory {
	return telegram.NewFactory(logger)
}
