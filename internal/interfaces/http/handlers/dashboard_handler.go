package handlers

import (
	"strconv"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler lida com os cards de totais e os rollups do painel
type DashboardHandler struct {
	dashboardUseCase *usecases.DashboardUseCase
	log              logger.Logger
}

// NewDashboardHandler cria uma nova instância de DashboardHandler
func NewDashboardHandler(dashboardUseCase *usecases.DashboardUseCase, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		log:              log,
	}
}

// GetTotals retorna os totais dos cards divididos por gestão
// @Summary Totais do painel
// @Description Escolas, UGEL, DRE e participações, cada um dividido em pública e privada
// @Tags dashboard
// @Produce json
// @Param survey query int false "ID da encuesta"
// @Param region query int false "ID da DRE"
// @Param subregion query int false "ID da UGEL"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/totals [get]
func (h *DashboardHandler) GetTotals(c *fiber.Ctx) error {
	scope, err := parseScope(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	totals, err := h.dashboardUseCase.Totals(c.UserContext(), scope)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, totals)
}

// GetRollup retorna participações agrupadas por DRE, UGEL, escola ou gestão
// @Summary Rollup de participações
// @Tags dashboard
// @Produce json
// @Param level path string true "region, subregion, school ou management"
// @Router /dashboard/rollup/{level} [get]
func (h *DashboardHandler) GetRollup(c *fiber.Ctx) error {
	scope, err := parseScope(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	rows, err := h.dashboardUseCase.Rollup(c.UserContext(), c.Params("level"), scope)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, rows)
}

func parseScope(c *fiber.Ctx) (repositories.RollupScope, error) {
	var scope repositories.RollupScope
	for key, dst := range map[string]**int64{
		"survey":    &scope.SurveyID,
		"region":    &scope.RegionID,
		"subregion": &scope.SubRegionID,
	} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return scope, errs.NewValidation(key, "identificador inválido")
		}
		*dst = &id
	}
	return scope, nil
}
