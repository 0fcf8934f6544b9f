package payment_fx

import (
	"go.uber.org/fx"

	"vipgate/internal/api/controllers"
	"vipgate/internal/repositories"
	"vipgate/internal/services"
)

var Module = fx.Provide(
	repositories.NewTransactionRepository,
	services.NewPaymentService,
	services.NewProvisionService,
	controllers.NewPaymentController,
)
