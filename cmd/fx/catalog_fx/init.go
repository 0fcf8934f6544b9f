package catalog_fx

import (
	"go.uber.org/fx"

	"vipgate/internal/api/controllers"
	"vipgate/internal/repositories"
	"vipgate/internal/services"
)

var Module = fx.Provide(
	repositories.NewPlanRepository,
	repositories.NewPackageRepository,
	services.NewCatalogService,
	controllers.NewCatalogController,
)
