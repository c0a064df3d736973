package handlers

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// ImportHandler recebe as cargas de nómina
type ImportHandler struct {
	importUseCase *usecases.ImportUseCase
	log           logger.Logger
}

func NewImportHandler(importUseCase *usecases.ImportUseCase, log logger.Logger) *ImportHandler {
	return &ImportHandler{importUseCase: importUseCase, log: log}
}

// ImportRoster processa o arquivo .xlsx ou .csv enviado no campo "file"
// @Summary Carga de nómina
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Planilha da nómina"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /import [post]
func (h *ImportHandler) ImportRoster(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, errs.NewValidation("file", "adjunte un archivo .xlsx o .csv"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.log, errs.NewValidation("file", "no se pudo leer el archivo"))
	}
	defer file.Close()

	uploadedBy := ""
	if identity := middleware.CurrentIdentity(c); identity != nil {
		uploadedBy = identity.Email
	}

	summary, err := h.importUseCase.Import(c.UserContext(), file, fileHeader.Filename, uploadedBy)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Carga procesada",
		"data":    summary,
	})
}

// GetBatches lista o histórico de cargas
// @Router /import/batches [get]
func (h *ImportHandler) GetBatches(c *fiber.Ctx) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	batches, total, err := h.importUseCase.Batches(c.UserContext(), page, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondList(c, batches, Pagination{Page: page, Limit: limit, Total: total})
}
