package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"givehub/cmd/fx/account_fx"
	"givehub/cmd/fx/controllers_fx"
	"givehub/cmd/fx/dashboard_fx"
	"givehub/cmd/fx/db_fx"
	"givehub/cmd/fx/donation_fx"
	"givehub/cmd/fx/item_fx"
	"givehub/cmd/fx/mail_fx"
	"givehub/cmd/fx/memcache_fx"
	"givehub/cmd/fx/notification_fx"
	"givehub/cmd/fx/transaction_fx"
	"givehub/internal/api/controllers"
	"givehub/internal/models/db_models"
	"givehub/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		notification_fx.Module,
		account_fx.Module,
		donation_fx.Module,
		item_fx.Module,
		transaction_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
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
	accountController *controllers.AccountController,
	donationController *controllers.DonationController,
	itemController *controllers.ItemController,
	transactionController *controllers.TransactionController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
	adminController *controllers.AdminController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController,
		donationController,
		itemController,
		transactionController,
		notificationController,
		dashboardController,
		adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	donationController *controllers.DonationController,
	itemController *controllers.ItemController,
	transactionController *controllers.TransactionController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
	adminController *controllers.AdminController) {

	auth := r.Group("/auth")
	auth.POST("/register", accountController.Register)
	auth.POST("/login", accountController.Login)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.POST("/reset-password", accountController.ResetPassword)

	accounts := r.Group("/accounts")
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.GetProfile)
	accounts.PUT("/me", middleware.JWTAuthMiddleware(), accountController.UpdateProfile)
	accounts.GET("/:id", accountController.PublicProfile)

	donations := r.Group("/donations")
	donations.GET("", middleware.OptionalJWTMiddleware(), donationController.List)
	donations.GET("/mine", middleware.JWTAuthMiddleware(), donationController.MyDonations)
	donations.GET("/:id", middleware.OptionalJWTMiddleware(), donationController.Get)
	donations.POST("", middleware.JWTAuthMiddleware(), donationController.Create)
	donations.PUT("/:id", middleware.JWTAuthMiddleware(), donationController.Update)
	donations.DELETE("/:id", middleware.JWTAuthMiddleware(), donationController.Delete)
	donations.PATCH("/:id/status", middleware.JWTAuthMiddleware(), donationController.SetStatus)
	donations.POST("/:id/request", middleware.JWTAuthMiddleware(), donationController.Request)
	donations.POST("/:id/favorite", middleware.JWTAuthMiddleware(), donationController.ToggleFavorite)

	items := r.Group("/items")
	items.GET("", middleware.OptionalJWTMiddleware(), itemController.List)
	items.GET("/mine", middleware.JWTAuthMiddleware(), itemController.MyItems)
	items.GET("/:id", middleware.OptionalJWTMiddleware(), itemController.Get)
	items.POST("", middleware.JWTAuthMiddleware(), itemController.Create)
	items.PUT("/:id", middleware.JWTAuthMiddleware(), itemController.Update)
	items.DELETE("/:id", middleware.JWTAuthMiddleware(), itemController.Delete)
	items.POST("/:id/purchase", middleware.JWTAuthMiddleware(), itemController.Purchase)
	items.POST("/:id/favorite", middleware.JWTAuthMiddleware(), itemController.ToggleFavorite)

	transactions := r.Group("/transactions", middleware.JWTAuthMiddleware())
	transactions.GET("", transactionController.ListMine)
	transactions.GET("/:id", transactionController.Get)
	transactions.PATCH("/:id/status", transactionController.UpdateStatus)
	transactions.POST("/:id/messages", transactionController.AddMessage)
	transactions.POST("/:id/rating", transactionController.SubmitRating)

	notifications := r.Group("/notifications", middleware.JWTAuthMiddleware())
	notifications.GET("", notificationController.List)
	notifications.GET("/unread-count", notificationController.UnreadCount)
	notifications.PATCH("/:id/read", notificationController.MarkRead)
	notifications.PATCH("/read-all", notificationController.MarkAllRead)
	notifications.DELETE("/:id", notificationController.Delete)

	dashboard := r.Group("/dashboard", middleware.JWTAuthMiddleware())
	dashboard.GET("", dashboardController.UserDashboard)

	admin := r.Group("/admin",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.GET("/accounts", adminController.ListAccounts)
	admin.GET("/accounts/:id", adminController.GetAccount)
	admin.PUT("/accounts/:id", adminController.UpdateAccount)
	admin.DELETE("/accounts/:id", adminController.DeleteAccount)
	admin.PATCH("/items/:id/status", adminController.SetItemStatus)
	admin.PATCH("/donations/:id/featured", adminController.FeatureDonation)
	admin.PATCH("/items/:id/featured", adminController.FeatureItem)
	admin.GET("/transactions", adminController.ListTransactions)
	admin.GET("/dashboard", adminController.Overview)
	admin.GET("/analytics", adminController.Analytics)
}
