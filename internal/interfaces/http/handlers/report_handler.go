package handlers

import (
	"fmt"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/report"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler expõe gráficos, linhas do documento e exportações
type ReportHandler struct {
	reports *usecases.ReportUseCase
	log     logger.Logger
}

func NewReportHandler(reports *usecases.ReportUseCase, log logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

// GetCharts retorna as séries dos gráficos
// @Summary Gráficos de resultados
// @Tags reports
// @Produce json
// @Param survey query int true "ID da encuesta"
// @Param region query int false "ID da DRE"
// @Param subregion query int false "ID da UGEL"
// @Param school query int false "ID da escola"
// @Param educationLevel query string false "Nível educativo"
// @Param grade query string false "Grau"
// @Success 200 {object} map[string]interface{} "{success, charts: [{question, data}]}"
// @Failure 400 {object} map[string]interface{} "Encuesta não informada"
// @Router /reports [get]
func (h *ReportHandler) GetCharts(c *fiber.Ctx) error {
	series, err := h.reports.Charts(c.UserContext(), rawFilter(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"charts":  series,
	})
}

// GetRows retorna a página de linhas (pergunta, opção, quantidade) do documento
// @Summary Linhas do relatório em PDF
// @Tags reports
// @Produce json
// @Param page query int false "Página" default(1)
// @Param limit query int false "Itens por página" default(10)
// @Router /reports/rows [get]
func (h *ReportHandler) GetRows(c *fiber.Ctx) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	rows, total, err := h.reports.Rows(c.UserContext(), rawFilter(c), page, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondList(c, rows, Pagination{Page: page, Limit: limit, Total: int64(total)})
}

// ExportSurvey exporta o CSV da encuesta inteira; filtros da query são ignorados
// @Router /reports/export/survey/{surveyId} [get]
func (h *ReportHandler) ExportSurvey(c *fiber.Ctx) error {
	raw := report.RawFilter{Survey: c.Params("surveyId")}
	return h.exportCSV(c, raw, model.GranularitySurvey)
}

// ExportRegion exporta o CSV de uma DRE
// @Router /reports/export/survey/{surveyId}/region [get]
func (h *ReportHandler) ExportRegion(c *fiber.Ctx) error {
	raw := rawFilter(c)
	raw.Survey = c.Params("surveyId")
	return h.exportCSV(c, raw, model.GranularityRegion)
}

// ExportSubRegion exporta o CSV de uma UGEL
// @Router /reports/export/survey/{surveyId}/subregion [get]
func (h *ReportHandler) ExportSubRegion(c *fiber.Ctx) error {
	raw := rawFilter(c)
	raw.Survey = c.Params("surveyId")
	return h.exportCSV(c, raw, model.GranularitySubRegion)
}

// ExportSchool exporta o CSV de uma escola. Sem schoolId responde 400 com field school.
// @Router /reports/export/survey/{surveyId}/school/{schoolId} [get]
func (h *ReportHandler) ExportSchool(c *fiber.Ctx) error {
	raw := rawFilter(c)
	raw.Survey = c.Params("surveyId")
	raw.School = c.Params("schoolId")
	return h.exportCSV(c, raw, model.GranularitySchool)
}

// ExportPDF gera o documento com os filtros opcionais
// @Router /reports/export/survey/{surveyId}/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	raw := rawFilter(c)
	raw.Survey = c.Params("surveyId")

	export, err := h.reports.ExportPDF(c.UserContext(), raw)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendExport(c, export)
}

func (h *ReportHandler) exportCSV(c *fiber.Ctx, raw report.RawFilter, g model.Granularity) error {
	export, err := h.reports.ExportCSV(c.UserContext(), raw, g)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendExport(c, export)
}

// sendExport responde 204 quando não há dados
func sendExport(c *fiber.Ctx, export *usecases.Export) error {
	if export.Content == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	return c.Send(export.Content)
}
