package lifecycle_fx

import (
	"go.uber.org/fx"

	"vipgate/internal/api/controllers"
	"vipgate/internal/repositories"
	"vipgate/internal/services"
)

var Module = fx.Provide(
	repositories.NewSubscriptionRepository,
	services.NewLifecycleService,
	controllers.NewSchedulerController,
)
