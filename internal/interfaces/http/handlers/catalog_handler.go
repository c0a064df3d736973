package handlers

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler alimenta os selects de DRE, UGEL e escola do painel
type CatalogHandler struct {
	catalogUseCase *usecases.CatalogUseCase
	log            logger.Logger
}

func NewCatalogHandler(catalogUseCase *usecases.CatalogUseCase, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase, log: log}
}

// GetRegions
// @Router /catalog/regions [get]
func (h *CatalogHandler) GetRegions(c *fiber.Ctx) error {
	regions, err := h.catalogUseCase.Regions(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, regions)
}

// GetSubRegions lista as UGEL de uma DRE
// @Router /catalog/regions/{id}/subregions [get]
func (h *CatalogHandler) GetSubRegions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	subRegions, err := h.catalogUseCase.SubRegions(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, subRegions)
}

// GetSchools lista as escolas de uma UGEL
// @Router /catalog/subregions/{id}/schools [get]
func (h *CatalogHandler) GetSchools(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	schools, err := h.catalogUseCase.Schools(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, schools)
}
