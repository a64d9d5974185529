package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cosmolab/akompta-api/internal/application/auth"
	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/application/usecase"
	"github.com/cosmolab/akompta-api/internal/application/voice"
	infraai "github.com/cosmolab/akompta-api/internal/infrastructure/ai"
	infrapdf "github.com/cosmolab/akompta-api/internal/infrastructure/pdf"
	"github.com/cosmolab/akompta-api/internal/infrastructure/postgres"
	httpRouter "github.com/cosmolab/akompta-api/internal/interfaces/http"
	"github.com/cosmolab/akompta-api/pkg/config"
	"github.com/cosmolab/akompta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	savingsRepo := postgres.NewSavingsRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Moteur transactionnel : toute écriture de vente, dépense ou stock
	// passe par l'applier, que la requête vienne de l'API ou de la voix.
	applier := ledger.NewApplier(txRunner, productRepo, saleRepo, expenseRepo)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, movementRepo, applier)
	saleUC := usecase.NewSaleUseCase(saleRepo, analyticsRepo, applier)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, analyticsRepo, applier)
	savingsUC := usecase.NewSavingsUseCase(savingsRepo, analyticsRepo)

	openaiSvc := infraai.NewOpenAIService(cfg.AI.OpenAIAPIKey, cfg.AI.ChatModel, cfg.AI.TranscribeModel)
	voiceUC := voice.NewUseCase(openaiSvc, applier, productRepo, log.Zerolog())

	dashboardUC := reporting.NewDashboardUseCase(analyticsRepo, saleRepo, productRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reporting.NewReportUseCase(
		reportRepo, analyticsRepo, saleRepo, expenseRepo, userRepo,
		pdfGenerator, cfg.App.ReportsDir, log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // marge pour les uploads audio de 10 Mo
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	// Le fichier est produit par swag init ; sans lui, swagger.New panique.
	const swaggerSpec = "./docs/swagger.json"
	if swaggerSpecPresent(swaggerSpec) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Akompta API",
		}))
	} else {
		log.Warn().Str("fichier", swaggerSpec).Msg("swagger.json introuvable, UI /docs désactivée")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		ExpenseUC:   expenseUC,
		SavingsUC:   savingsUC,
		VoiceUC:     voiceUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}

func swaggerSpecPresent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
