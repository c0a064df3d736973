package handlers

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"gorm.io/gorm"
)

// Handlers reúne os handlers HTTP montados sobre os casos de uso
type Handlers struct {
	Reports     *ReportHandler
	Surveys     *SurveyHandler
	Imports     *ImportHandler
	Auth        *AuthHandler
	Dashboard   *DashboardHandler
	Incidents   *IncidentHandler
	Catalog     *CatalogHandler
	Performance *PerformanceHandler
}

func NewHandlers(useCases *usecases.UseCases, db *gorm.DB, cookie CookieOptions, version string, log logger.Logger) *Handlers {
	return &Handlers{
		Reports:     NewReportHandler(useCases.Reports, log),
		Surveys:     NewSurveyHandler(useCases.Surveys, log),
		Imports:     NewImportHandler(useCases.Imports, log),
		Auth:        NewAuthHandler(useCases.Auth, cookie, log),
		Dashboard:   NewDashboardHandler(useCases.Dashboard, log),
		Incidents:   NewIncidentHandler(useCases.Incidents, log),
		Catalog:     NewCatalogHandler(useCases.Catalog, log),
		Performance: NewPerformanceHandler(db, version),
	}
}
