package funnel_fx

import (
	"go.uber.org/fx"

	"vipgate/internal/api/controllers"
	"vipgate/internal/services"
)

var Module = fx.Provide(
	services.NewFunnelService,
	controllers.NewWebhookController,
)
