package gateway_fx

import (
	"go.uber.org/fx"

	"vipgate/internal/gateways"
)

var Module = fx.Provide(
	gateways.NewPushinPay,
	gateways.NewSyncpay,
	gateways.NewRegistry,
)
