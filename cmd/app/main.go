package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"vipgate/cmd/fx/bot_fx"
	"vipgate/cmd/fx/catalog_fx"
	"vipgate/cmd/fx/dashboard_fx"
	"vipgate/cmd/fx/db_fx"
	"vipgate/cmd/fx/funnel_fx"
	"vipgate/cmd/fx/gateway_fx"
	"vipgate/cmd/fx/lifecycle_fx"
	"vipgate/cmd/fx/logger_fx"
	"vipgate/cmd/fx/memcache_fx"
	"vipgate/cmd/fx/operator_fx"
	"vipgate/cmd/fx/payment_fx"
	"vipgate/cmd/fx/scheduler_fx"
	"vipgate/cmd/fx/telegram_fx"
	"vipgate/internal/api/controllers"
	"vipgate/internal/infra"
	"vipgate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		telegram_fx.Module,
		memcache_fx.Module,
		gateway_fx.Module,
		operator_fx.Module,
		bot_fx.Module,
		catalog_fx.Module,
		payment_fx.Module,
		funnel_fx.Module,
		lifecycle_fx.Module,
		dashboard_fx.Module,
		scheduler_fx.Module,

		fx.Invoke(infra.AutoMigrate),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	webhookController *controllers.WebhookController,
	paymentController *controllers.PaymentController,
	schedulerController *controllers.SchedulerController,
	operatorController *controllers.OperatorController,
	botController *controllers.BotController,
	catalogController *controllers.CatalogController,
	dashboardController *controllers.DashboardController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	RegisterRoutes(r,
		webhookController,
		paymentController,
		schedulerController,
		operatorController,
		botController,
		catalogController,
		dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	webhookController *controllers.WebhookController,
	paymentController *controllers.PaymentController,
	schedulerController *controllers.SchedulerController,
	operatorController *controllers.OperatorController,
	botController *controllers.BotController,
	catalogController *controllers.CatalogController,
	dashboardController *controllers.DashboardController) {

	// Public surface called by Telegram and the payment confirmation flow.
	r.POST("/telegram-webhook", webhookController.HandleUpdate)
	r.POST("/generate-pix", paymentController.GeneratePix)
	r.POST("/confirm-payment", paymentController.ConfirmPayment)
	r.POST("/remove-expired-users", schedulerController.RemoveExpired)
	r.POST("/notify-expiring-soon", schedulerController.NotifyExpiring)

	operatorsGroup := r.Group("/operators")
	operatorsGroup.POST("/signup", operatorController.SignUp)
	operatorsGroup.POST("/login", operatorController.Login)

	botsGroup := r.Group("/bots")
	botsGroup.Use(middleware.JWTAuthMiddleware())
	botsGroup.POST("", botController.Connect)
	botsGroup.GET("", botController.List)
	botsGroup.GET("/:id", botController.Get)
	botsGroup.PUT("/:id", botController.Update)
	botsGroup.DELETE("/:id", botController.Delete)

	botsGroup.POST("/:id/plans", catalogController.CreatePlan)
	botsGroup.GET("/:id/plans", catalogController.ListPlans)
	botsGroup.PUT("/:id/plans/:planId", catalogController.UpdatePlan)
	botsGroup.DELETE("/:id/plans/:planId", catalogController.DeletePlan)

	botsGroup.POST("/:id/packages", catalogController.CreatePackage)
	botsGroup.GET("/:id/packages", catalogController.ListPackages)
	botsGroup.PUT("/:id/packages/:packageId", catalogController.UpdatePackage)
	botsGroup.DELETE("/:id/packages/:packageId", catalogController.DeletePackage)

	botsGroup.GET("/:id/subscriptions", dashboardController.BotSubscriptions)
	botsGroup.GET("/:id/transactions", dashboardController.BotTransactions)

	dashboardGroup := r.Group("/dashboard")
	dashboardGroup.Use(middleware.JWTAuthMiddleware())
	dashboardGroup.GET("/statistics", dashboardController.Statistics)
}
