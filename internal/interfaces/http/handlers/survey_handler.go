package handlers

import (
	"strconv"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// SurveyHandler lida com o CRUD de encuestas
type SurveyHandler struct {
	surveyUseCase *usecases.SurveyUseCase
	log           logger.Logger
}

// NewSurveyHandler cria uma nova instância de SurveyHandler
func NewSurveyHandler(surveyUseCase *usecases.SurveyUseCase, log logger.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveyUseCase: surveyUseCase,
		log:           log,
	}
}

// GetSurveys retorna as encuestas paginadas
// @Summary Retorna as encuestas
// @Description Lista paginada com filtro opcional de encuestas ativas
// @Tags surveys
// @Produce json
// @Param page query int false "Página atual" default(1)
// @Param limit query int false "Itens por página" default(10)
// @Param sortBy query string false "Campo de ordenação" default(created_at)
// @Param sortDirection query string false "asc ou desc" default(desc)
// @Param active query bool false "Somente ativas"
// @Success 200 {object} map[string]interface{} "Lista de encuestas"
// @Failure 400 {object} map[string]interface{} "Erro de parâmetros"
// @Router /surveys [get]
func (h *SurveyHandler) GetSurveys(c *fiber.Ctx) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	params := repositories.SurveyListParams{
		Page:          page,
		Limit:         limit,
		SortBy:        c.Query("sortBy", "created_at"),
		SortDirection: c.Query("sortDirection", "desc"),
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return respondError(c, h.log, errs.NewValidation("active", "debe ser true o false"))
		}
		params.Active = &active
	}

	surveys, total, err := h.surveyUseCase.List(c.UserContext(), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondList(c, surveys, Pagination{Page: page, Limit: limit, Total: total})
}

// GetSurvey retorna uma encuesta com perguntas e opções
// @Router /surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	survey, err := h.surveyUseCase.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, survey)
}

// CreateSurvey cria a encuesta com perguntas e opções em uma transação
// @Router /surveys [post]
func (h *SurveyHandler) CreateSurvey(c *fiber.Ctx) error {
	var in usecases.SurveyInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, errs.NewValidation("body", "JSON inválido"))
	}
	survey, err := h.surveyUseCase.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondCreated(c, "Encuesta creada", survey)
}

// UpdateSurvey substitui a encuesta inteira
// @Router /surveys/{id} [put]
func (h *SurveyHandler) UpdateSurvey(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in usecases.SurveyInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, errs.NewValidation("body", "JSON inválido"))
	}
	survey, err := h.surveyUseCase.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Encuesta actualizada",
		"data":    survey,
	})
}

// DeleteSurvey remove a encuesta e suas perguntas
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) DeleteSurvey(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.surveyUseCase.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return respondMessage(c, fiber.StatusOK, "Encuesta eliminada")
}
