package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/auth"
	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/application/usecase"
	"github.com/cosmolab/akompta-api/internal/application/voice"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *usecase.SaleUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	SavingsUC   *usecase.SavingsUseCase
	VoiceUC     *voice.UseCase
	DashboardUC *reporting.DashboardUseCase
	ReportUC    *reporting.ReportUseCase
	JWTSecret   string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Profil
	protected.Get("/auth/profile", authHandler.Profile)
	protected.Put("/auth/profile", authHandler.UpdateProfile)

	// Produits et stock
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", productHandler.UpdateStock)
	products.Get("/:id/movements", productHandler.Movements)

	// Ventes
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/stats", saleHandler.Stats)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Delete("/:id", saleHandler.Delete)

	// Dépenses
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/stats", expenseHandler.Stats)
	expenses.Get("/categories", expenseHandler.Categories)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Épargne Mobile Money
	savings := protected.Group("/savings")
	savingsHandler := NewSavingsHandler(deps.SavingsUC)
	savings.Post("/", savingsHandler.Create)
	savings.Get("/", savingsHandler.List)
	savings.Get("/balance", savingsHandler.Balance)
	savings.Get("/providers", savingsHandler.Providers)
	savings.Get("/:id", savingsHandler.GetByID)
	savings.Put("/:id", savingsHandler.Update)
	savings.Delete("/:id", savingsHandler.Delete)

	// Commandes vocales
	voiceGroup := protected.Group("/voice")
	voiceHandler := NewVoiceHandler(deps.VoiceUC)
	voiceGroup.Post("/process", voiceHandler.ProcessAudio)
	voiceGroup.Post("/text", voiceHandler.ProcessText)
	voiceGroup.Post("/test-parse", voiceHandler.TestParse)

	// Tableau de bord
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Dashboard)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Rapports PDF
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/generate", reportHandler.Generate)
	reports.Get("/", reportHandler.List)
	reports.Get("/:id/download", reportHandler.Download)
	reports.Delete("/:id", reportHandler.Delete)
}
