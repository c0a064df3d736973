package usecases

import "fmt"

// UseCases reúne os casos de uso montados na inicialização da API
type UseCases struct {
	Reports   *ReportUseCase
	Surveys   *SurveyUseCase
	Imports   *ImportUseCase
	Auth      *AuthUseCase
	Dashboard *DashboardUseCase
	Incidents *IncidentUseCase
	Catalog   *CatalogUseCase
}

// Chaves do cache em memória
const (
	catalogCachePrefix  = "catalog:"
	questionCachePrefix = "questions:"
)

func questionCacheKey(surveyID int64) string {
	return fmt.Sprintf("%s%d", questionCachePrefix, surveyID)
}
