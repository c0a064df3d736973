package handlers

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// IncidentHandler registra e lista incidencias reportadas no painel
type IncidentHandler struct {
	incidentUseCase *usecases.IncidentUseCase
	log             logger.Logger
}

func NewIncidentHandler(incidentUseCase *usecases.IncidentUseCase, log logger.Logger) *IncidentHandler {
	return &IncidentHandler{incidentUseCase: incidentUseCase, log: log}
}

// GetIncidents lista as incidencias, opcionalmente por período
// @Param from query string false "Data inicial (2006-01-02 ou RFC3339)"
// @Param to query string false "Data final, inclusive quando só a data é informada"
// @Router /incidents [get]
func (h *IncidentHandler) GetIncidents(c *fiber.Ctx) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	params := repositories.IncidentListParams{Page: page, Limit: limit}
	if params.From, err = parseDateQuery(c, "from", false); err != nil {
		return respondError(c, h.log, err)
	}
	if params.To, err = parseDateQuery(c, "to", true); err != nil {
		return respondError(c, h.log, err)
	}

	incidents, total, err := h.incidentUseCase.List(c.UserContext(), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondList(c, incidents, Pagination{Page: page, Limit: limit, Total: total})
}

// CreateIncident
// @Router /incidents [post]
func (h *IncidentHandler) CreateIncident(c *fiber.Ctx) error {
	var in usecases.IncidentInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, errs.NewValidation("body", "JSON inválido"))
	}
	incident, err := h.incidentUseCase.Create(c.UserContext(), in, middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondCreated(c, "Incidencia registrada", incident)
}
