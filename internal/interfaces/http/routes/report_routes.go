package routes

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
)

func registerReportRoutes(groups middleware.RouteGroups, h *handlers.ReportHandler) {
	groups.Authenticated.Get("/reports", h.GetCharts)
	groups.Authenticated.Get("/reports/rows", h.GetRows)

	// Exportações CSV por granularidade e o PDF
	groups.Authenticated.Get("/reports/export/survey/:surveyId", h.ExportSurvey)
	groups.Authenticated.Get("/reports/export/survey/:surveyId/region", h.ExportRegion)
	groups.Authenticated.Get("/reports/export/survey/:surveyId/subregion", h.ExportSubRegion)
	groups.Authenticated.Get("/reports/export/survey/:surveyId/school/:schoolId?", h.ExportSchool)
	groups.Authenticated.Get("/reports/export/survey/:surveyId/pdf", h.ExportPDF)
}
