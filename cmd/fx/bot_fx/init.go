package bot_fx

import (
	"os"

	"go.uber.org/fx"

	"vipgate/internal/api/controllers"
	"vipgate/internal/repositories"
	"vipgate/internal/services"
)

var Module = fx.Provide(
	provideWebhookBase,
	repositories.NewBotRepository,
	services.NewBotService,
	controllers.NewBotController,
)

func provideWebhookBase() services.WebhookBaseURL {
	return services.WebhookBaseURL(os.Getenv("WEBHOOK_BASE_URL"))
}
