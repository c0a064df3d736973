package routes

import (
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/auth"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

// Version é exposta no /health
const Version = "1.0.0"

// Dependencies é o que a API precisa para montar casos de uso e rotas
type Dependencies struct {
	DB            *gorm.DB
	Logger        logger.Logger
	Metrics       *metrics.Metrics
	Cache         *cache.Cache
	Authenticator auth.Authenticator
	Tokens        *auth.TokenManager
	Revocations   repository.RevocationStore
	Cookie        handlers.CookieOptions
	ImportMaxRows int
}

// BuildUseCases instancia os repositórios e casos de uso sobre o banco
func BuildUseCases(deps Dependencies) *usecases.UseCases {
	// Repositories
	reportRepo := repositories.NewReportRepository(deps.DB)
	hierarchyRepo := repositories.NewHierarchyRepository(deps.DB)
	surveyRepo := repositories.NewSurveyRepository(deps.DB)
	rosterRepo := repositories.NewRosterRepository(deps.DB)
	dashboardRepo := repositories.NewDashboardRepository(deps.DB)
	incidentRepo := repositories.NewIncidentRepository(deps.DB)

	// Use Cases
	return &usecases.UseCases{
		Reports:   usecases.NewReportUseCase(reportRepo, hierarchyRepo, surveyRepo, deps.Cache, deps.Metrics, deps.Logger),
		Surveys:   usecases.NewSurveyUseCase(surveyRepo, deps.Cache, deps.Logger),
		Imports:   usecases.NewImportUseCase(rosterRepo, deps.Cache, deps.Metrics, deps.Logger, deps.ImportMaxRows),
		Auth:      usecases.NewAuthUseCase(deps.Authenticator, deps.Tokens, deps.Revocations, deps.Logger),
		Dashboard: usecases.NewDashboardUseCase(dashboardRepo),
		Incidents: usecases.NewIncidentUseCase(incidentRepo),
		Catalog:   usecases.NewCatalogUseCase(hierarchyRepo, deps.Cache),
	}
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	useCases := BuildUseCases(deps)
	h := handlers.NewHandlers(useCases, deps.DB, deps.Cookie, Version, deps.Logger)
	RegisterRoutes(app, h, useCases.Auth, deps.Metrics)
}

// RegisterRoutes registra as rotas sobre handlers já montados
func RegisterRoutes(app *fiber.App, h *handlers.Handlers, sessions middleware.SessionAuthenticator, m *metrics.Metrics) {
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// ETag para respostas de catálogo e gráficos
	app.Use(etag.New())

	// Health check e métricas
	app.Get("/health", h.Performance.Health)
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	groups := middleware.SetupRouteGroups(app, "/", middleware.RequireSession(sessions))

	registerAuthRoutes(groups, h.Auth)
	registerReportRoutes(groups, h.Reports)
	registerSurveyRoutes(groups, h.Surveys)
	registerImportRoutes(groups, h.Imports)

	groups.Authenticated.Get("/dashboard/totals", h.Dashboard.GetTotals)
	groups.Authenticated.Get("/dashboard/rollup/:level", h.Dashboard.GetRollup)

	groups.Authenticated.Get("/incidents", h.Incidents.GetIncidents)
	groups.Admin.Post("/incidents", h.Incidents.CreateIncident)

	groups.Authenticated.Get("/catalog/regions", h.Catalog.GetRegions)
	groups.Authenticated.Get("/catalog/regions/:id/subregions", h.Catalog.GetSubRegions)
	groups.Authenticated.Get("/catalog/subregions/:id/schools", h.Catalog.GetSchools)
}

func registerAuthRoutes(groups middleware.RouteGroups, h *handlers.AuthHandler) {
	groups.Public.Post("/auth/login", middleware.LoginLimiter(10, time.Minute), h.Login)
	groups.Public.Post("/auth/logout", h.Logout)
	groups.Authenticated.Get("/auth/me", h.Me)
}

func registerSurveyRoutes(groups middleware.RouteGroups, h *handlers.SurveyHandler) {
	groups.Authenticated.Get("/surveys", h.GetSurveys)
	groups.Authenticated.Get("/surveys/:id", h.GetSurvey)
	groups.Admin.Post("/surveys", h.CreateSurvey)
	groups.Admin.Put("/surveys/:id", h.UpdateSurvey)
	groups.Admin.Delete("/surveys/:id", h.DeleteSurvey)
}

func registerImportRoutes(groups middleware.RouteGroups, h *handlers.ImportHandler) {
	groups.Admin.Post("/import", h.ImportRoster)
	groups.Admin.Get("/import/batches", h.GetBatches)
}
