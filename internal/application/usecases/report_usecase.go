package usecases

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/report"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
)

// Export é um arquivo pronto para download; Content nulo significa relatório vazio
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// ReportUseCase executa o pipeline filtro → seleção → agregação → formato
type ReportUseCase struct {
	reports   repositories.IReportRepository
	hierarchy repositories.IHierarchyRepository
	surveys   repositories.ISurveyRepository
	cache     *cache.Cache
	metrics   *metrics.Metrics
	log       logger.Logger
	now       func() time.Time
}

func NewReportUseCase(
	reports repositories.IReportRepository,
	hierarchy repositories.IHierarchyRepository,
	surveys repositories.ISurveyRepository,
	c *cache.Cache,
	m *metrics.Metrics,
	log logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reports:   reports,
		hierarchy: hierarchy,
		surveys:   surveys,
		cache:     c,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// Build valida o filtro da granularidade e devolve o relatório agregado.
// Sem participações completas o resultado é vazio e nenhuma resposta é consultada.
func (uc *ReportUseCase) Build(ctx context.Context, raw report.RawFilter, g model.Granularity) (*model.AggregatedReport, error) {
	f, err := report.ResolveFilter(raw, report.RequiredFields(g)...)
	if err != nil {
		return nil, err
	}

	ids, err := uc.reports.SelectParticipations(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &model.AggregatedReport{
		Filter:         f,
		Participations: len(ids),
		Questions:      []model.QuestionResult{},
	}
	if len(ids) == 0 {
		return result, nil
	}

	catalog, err := uc.questionCatalog(ctx, f.SurveyID)
	if err != nil {
		return nil, err
	}
	counts, err := uc.reports.CountAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}
	result.Questions = report.Aggregate(catalog, counts)

	if result.Context, err = uc.resolveContext(ctx, f); err != nil {
		return nil, err
	}
	return result, nil
}

// Charts devolve as séries dos gráficos do dashboard
func (uc *ReportUseCase) Charts(ctx context.Context, raw report.RawFilter) ([]model.ChartSeries, error) {
	start := time.Now()
	result, err := uc.Build(ctx, raw, model.GranularitySurvey)
	if err != nil {
		return nil, err
	}
	uc.metrics.ObserveReport("chart", model.GranularitySurvey.String(), time.Since(start))
	return report.ChartSeries(result), nil
}

// Rows devolve a página pedida das linhas do documento e o total de linhas
func (uc *ReportUseCase) Rows(ctx context.Context, raw report.RawFilter, page, limit int) ([]model.DocumentRow, int, error) {
	result, err := uc.Build(ctx, raw, model.GranularitySurvey)
	if err != nil {
		return nil, 0, err
	}
	if result.IsEmpty() {
		return []model.DocumentRow{}, 0, nil
	}
	rows := report.DocumentRows(result)
	return report.PageRows(rows, page, limit), len(rows), nil
}

// ExportCSV gera o CSV da granularidade; relatório sem respostas devolve Export sem conteúdo
func (uc *ReportUseCase) ExportCSV(ctx context.Context, raw report.RawFilter, g model.Granularity) (*Export, error) {
	start := time.Now()
	result, err := uc.Build(ctx, raw, g)
	if err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    exportFilename(result.Filter, g, uc.now(), "csv"),
		ContentType: "text/csv; charset=utf-8",
	}
	if result.IsEmpty() {
		return export, nil
	}

	var buf bytes.Buffer
	if export.Rows, err = report.WriteCSV(&buf, g, result); err != nil {
		return nil, fmt.Errorf("erro ao gerar csv: %w", err)
	}
	export.Content = buf.Bytes()

	uc.metrics.ObserveReport("csv", g.String(), time.Since(start))
	uc.log.Info("CSV exportado",
		logger.Int64("survey_id", result.Filter.SurveyID),
		logger.String("granularity", g.String()),
		logger.Int("rows", export.Rows),
	)
	return export, nil
}

// ExportPDF gera o documento tabular com todos os filtros opcionais aplicados
func (uc *ReportUseCase) ExportPDF(ctx context.Context, raw report.RawFilter) (*Export, error) {
	start := time.Now()
	result, err := uc.Build(ctx, raw, model.GranularitySurvey)
	if err != nil {
		return nil, err
	}

	generatedAt := uc.now().In(utils.GetLimaLocation())
	export := &Export{
		Filename:    exportFilename(result.Filter, model.GranularitySurvey, generatedAt, "pdf"),
		ContentType: "application/pdf",
	}
	if result.IsEmpty() {
		return export, nil
	}

	rows := report.DocumentRows(result)
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, result, rows, generatedAt); err != nil {
		return nil, err
	}
	export.Content = buf.Bytes()
	export.Rows = len(rows)

	uc.metrics.ObserveReport("pdf", model.GranularitySurvey.String(), time.Since(start))
	return export, nil
}

func (uc *ReportUseCase) questionCatalog(ctx context.Context, surveyID int64) ([]model.QuestionCatalogRow, error) {
	return cache.Remember(uc.cache, questionCacheKey(surveyID), func() ([]model.QuestionCatalogRow, error) {
		return uc.reports.GetQuestionCatalog(ctx, surveyID)
	})
}

// resolveContext busca os nomes de encuesta, DRE, UGEL e escola usados nas exportações
func (uc *ReportUseCase) resolveContext(ctx context.Context, f model.ReportFilter) (model.ReportContext, error) {
	var rc model.ReportContext

	survey, err := uc.surveys.FindByID(ctx, f.SurveyID, false)
	if err != nil {
		return rc, err
	}
	rc.SurveyTitle = survey.Title

	switch {
	case f.SchoolID != nil:
		placement, err := uc.hierarchy.FindSchoolPlacement(ctx, *f.SchoolID)
		if err != nil {
			return rc, err
		}
		rc.SchoolName = placement.SchoolName
		rc.SubRegionName = placement.SubRegionName
		rc.RegionName = placement.RegionName
	case f.SubRegionID != nil:
		subRegion, err := uc.hierarchy.FindSubRegion(ctx, *f.SubRegionID)
		if err != nil {
			return rc, err
		}
		rc.SubRegionName = subRegion.Name
		region, err := uc.hierarchy.FindRegion(ctx, subRegion.RegionID)
		if err != nil {
			return rc, err
		}
		rc.RegionName = region.Name
	case f.RegionID != nil:
		region, err := uc.hierarchy.FindRegion(ctx, *f.RegionID)
		if err != nil {
			return rc, err
		}
		rc.RegionName = region.Name
	}
	return rc, nil
}

func exportFilename(f model.ReportFilter, g model.Granularity, at time.Time, ext string) string {
	name := fmt.Sprintf("encuesta_%d", f.SurveyID)
	switch g {
	case model.GranularityRegion:
		name += fmt.Sprintf("_dre_%d", *f.RegionID)
	case model.GranularitySubRegion:
		name += fmt.Sprintf("_ugel_%d", *f.SubRegionID)
	case model.GranularitySchool:
		name += fmt.Sprintf("_ie_%d", *f.SchoolID)
	}
	return fmt.Sprintf("%s_%s.%s", name, at.Format("20060102"), ext)
}
