// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and applies the
// admin gate to status-changing endpoints.
package routes

import (
	"time"

	"credline/internal/config"
	"credline/internal/handlers"
	"credline/internal/middleware"
	"credline/internal/repositories"
	"credline/internal/services/creditline"
	"credline/internal/services/ledger"
	"credline/internal/services/risk"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	repo := repositories.NewCreditLineRepository(db)

	var evaluator risk.Evaluator
	if url := config.GetEnv("RISK_ENGINE_URL", ""); url != "" {
		evaluator = risk.NewHTTPEvaluator(url, 10*time.Second)
	}
	riskService := risk.NewService(evaluator)

	creditService := creditline.NewService(
		repo,
		repositories.CacheService,
		riskService,
		creditline.Config{},
		&creditline.NoopMetricsCollector{},
	)
	ledgerService := ledger.NewService(repo)

	creditHandler := handlers.NewCreditLineHandler(creditService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	riskHandler := handlers.NewRiskHandler(riskService)

	adminAuth := middleware.NewAdminMiddleware(
		config.GetEnv("JWT_SECRET", "credline"),
		config.GetEnv("ADMIN_API_KEY_HASH", ""),
		log,
	)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	credit := api.Group("/credit")
	credit.Get("/lines", creditHandler.ListCreditLines)
	credit.Post("/lines", creditHandler.CreateCreditLine)
	credit.Get("/lines/:id", creditHandler.GetCreditLine)
	credit.Post("/lines/:id/draw", creditHandler.Draw)
	credit.Post("/lines/:id/repay", creditHandler.Repay)
	credit.Get("/lines/:id/transactions", transactionHandler.GetTransactions)

	// Admin-only lifecycle operations
	credit.Post("/lines/:id/suspend", adminAuth.Handler, creditHandler.Suspend)
	credit.Post("/lines/:id/resume", adminAuth.Handler, creditHandler.Resume)
	credit.Post("/lines/:id/close", adminAuth.Handler, creditHandler.Close)
	credit.Post("/lines/:id/evaluate", adminAuth.Handler, creditHandler.ApplyRiskAssessment)
	credit.Get("/lines/:id/verify", adminAuth.Handler, creditHandler.VerifyLedger)

	riskGroup := api.Group("/risk")
	riskGroup.Post("/evaluate", riskHandler.EvaluateWallet)
}
