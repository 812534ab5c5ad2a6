// Package server assembles the HTTP API and the background recurring
// scheduler around a ledger.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gelirgider/internal/docs" // Import swagger docs
	"gelirgider/internal/handlers"
	"gelirgider/internal/middleware"
	"gelirgider/internal/services"
)

// Services bundles the business logic the router exposes.
type Services struct {
	Transactions services.TransactionServicer
	Recurring    services.RecurringServicer
	Rates        services.RateServicer
	Reports      services.ReportServicer
	Catalog      services.CatalogServicer
}

// NewServices wires every service around ledger. source may be nil.
func NewServices(ledger services.Ledger, source services.RateSource) Services {
	return Services{
		Transactions: services.NewTransactionService(ledger),
		Recurring:    services.NewRecurringService(ledger),
		Rates:        services.NewRateService(ledger, source),
		Reports:      services.NewReportService(ledger),
		Catalog:      services.NewCatalogService(),
	}
}

// NewRouter builds the gin engine. When apiKey is non-empty every /api/v1
// route requires it in the X-API-Key header.
func NewRouter(svc Services, apiKey string) *gin.Engine {
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	recurringHandler := handlers.NewRecurringHandler(svc.Recurring)
	rateHandler := handlers.NewRateHandler(svc.Rates)
	reportHandler := handlers.NewReportHandler(svc.Reports)
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(apiKey))

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	recurring := v1.Group("/recurring")
	recurring.GET("", recurringHandler.ListRecurringItems)
	recurring.POST("", recurringHandler.CreateRecurringItem)
	recurring.POST("/generate", recurringHandler.GenerateRecurring)
	recurring.PATCH("/:id", recurringHandler.UpdateRecurringItem)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringItem)
	recurring.POST("/:id/toggle", recurringHandler.ToggleRecurringItem)

	rates := v1.Group("/rates")
	rates.GET("", rateHandler.GetRates)
	rates.POST("/reset", rateHandler.ResetRates)
	rates.POST("/refresh", rateHandler.RefreshRates)
	rates.PUT("/:currency", rateHandler.UpdateRate)

	reports := v1.Group("/reports")
	reports.GET("/monthly", reportHandler.MonthlyReport)
	reports.GET("/yearly", reportHandler.YearlyReport)

	v1.GET("/categories", catalogHandler.ListCategories)
	v1.GET("/categories/:type/:id", catalogHandler.GetCategory)
	v1.GET("/statuses", catalogHandler.ListStatuses)

	return router
}
