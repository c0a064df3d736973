package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/report"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Error interno del servidor"

// Pagination acompanha as respostas de listagem
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondList(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": status < fiber.StatusBadRequest,
		"message": message,
	})
}

// respondError traduz os erros de domínio em status HTTP. Erros não mapeados são logados
// e viram 500 com mensagem genérica.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	var mf *errs.MissingFilterError
	var ve *errs.ValidationError
	var fe *fiber.Error

	switch {
	case errors.As(err, &mf):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": mf.Message,
			"field":   mf.Field,
		})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": ve.Message,
			"errors":  ve.Fields,
		})
	case errors.Is(err, errs.ErrNotFound):
		return respondMessage(c, fiber.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, errs.ErrConflict):
		return respondMessage(c, fiber.StatusConflict, conflictMessage(err))
	case errors.Is(err, errs.ErrInvalidCredentials):
		return respondMessage(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	case errors.Is(err, errs.ErrUnauthorized):
		return respondMessage(c, fiber.StatusUnauthorized, "Sesión no válida o expirada")
	case errors.Is(err, errs.ErrForbidden):
		return respondMessage(c, fiber.StatusForbidden, "Acceso denegado")
	case errors.As(err, &fe):
		return respondMessage(c, fe.Code, fe.Message)
	}

	log.Error("Erro ao processar requisição",
		logger.String("method", c.Method()),
		logger.String("path", c.Path()),
		logger.Error(err),
	)
	return respondMessage(c, fiber.StatusInternalServerError, internalErrorMessage)
}

// conflictMessage mantém só o detalhe após o sentinel, sem o contexto interno do erro
func conflictMessage(err error) string {
	msg := err.Error()
	marker := errs.ErrConflict.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		if detail := strings.TrimSpace(msg[i+len(marker):]); detail != "" && !strings.HasPrefix(detail, "idx_") {
			return strings.ToUpper(detail[:1]) + detail[1:]
		}
	}
	return "Conflicto con datos existentes"
}

// parsePaging lê page e limit; valores ausentes assumem 1 e 10
func parsePaging(c *fiber.Ctx) (int, int, error) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, errs.NewValidation("page", "parámetro inválido")
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, errs.NewValidation("limit", "debe estar entre 1 y 100")
	}
	return page, limit, nil
}

// parseIDParam lê um id positivo do path
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidation(name, "identificador inválido")
	}
	return id, nil
}

// parseDateQuery lê uma data opcional; com endOfDay uma data sem hora avança para o dia seguinte
func parseDateQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDateParam(raw)
	if err != nil {
		return nil, errs.NewValidation(key, "formato de fecha inválido")
	}
	if endOfDay && len(raw) == len("2006-01-02") {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// rawFilter lê os filtros hierárquicos da query string
func rawFilter(c *fiber.Ctx) report.RawFilter {
	return report.RawFilter{
		Survey:         c.Query("survey"),
		Region:         c.Query("region"),
		SubRegion:      c.Query("subregion"),
		School:         c.Query("school"),
		EducationLevel: c.Query("educationLevel"),
		Grade:          c.Query("grade"),
	}
}

// ErrorHandler é o handler de erro do fiber: rotas inexistentes, limites de corpo e panics
// recuperados saem no mesmo envelope das respostas da API
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
			return respondMessage(c, fiber.StatusNotFound, "Ruta no encontrada")
		}
		return respondError(c, log, err)
	}
}
