package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/greenmandi/storefront/internal/server/http/handlers"
	"github.com/greenmandi/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/otp/request", authHandler.RequestOTP)
	auth.POST("/otp/verify", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)

	catalog := api.Group("/catalog")
	catalog.GET("/categories", catalogHandler.Categories)
	catalog.GET("/products", catalogHandler.Products)
	catalog.GET("/products/:id", catalogHandler.Product)
	catalog.GET("/suggest", catalogHandler.Suggest)
	catalog.GET("/pincode/:code", catalogHandler.Pincode)

	api.POST("/payment/webhook", orderHandler.Webhook)

	user := api.Group("/user")
	user.Use(middleware.AuthRequired(facade))
	user.GET("/profile", authHandler.Profile)
	user.DELETE("/profile", authHandler.Deactivate)
	user.GET("/addresses", addressHandler.List)
	user.POST("/addresses", addressHandler.Create)
	user.PUT("/addresses/:id", addressHandler.Update)
	user.DELETE("/addresses/:id", addressHandler.Delete)
	user.POST("/addresses/:id/default", addressHandler.SetDefault)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/:number", orderHandler.Get)
	orders.GET("/:number/events", orderHandler.Events)
	orders.POST("/:number/payment/confirm", orderHandler.ConfirmPayment)
	orders.POST("/:number/payment/fail", orderHandler.FailPayment)
	orders.POST("/coupon", orderHandler.ValidateCoupon)

	return engine
}
