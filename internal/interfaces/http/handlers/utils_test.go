package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"filtro ausente", errs.NewMissingFilter("survey", "Seleccione una encuesta"), 400, "Seleccione una encuesta"},
		{"validação", errs.NewValidation("title", "campo obligatorio"), 400, "Datos inválidos"},
		{"não encontrado", fmt.Errorf("erro ao buscar encuesta: %w", errs.ErrNotFound), 404, "Recurso no encontrado"},
		{"conflito", fmt.Errorf("erro ao atualizar: %w: hay respuestas registradas", errs.ErrConflict), 409, "Hay respuestas registradas"},
		{"conflito de índice", fmt.Errorf("%w: idx_users_email", errs.ErrConflict), 409, "Conflicto con datos existentes"},
		{"credenciais", errs.ErrInvalidCredentials, 401, "Credenciales inválidas"},
		{"sessão", errs.ErrUnauthorized, 401, "Sesión no válida o expirada"},
		{"proibido", errs.ErrForbidden, 403, "Acceso denegado"},
		{"fiber", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Archivo demasiado grande"), 413, "Archivo demasiado grande"},
		{"genérico", errors.New("pq: connection refused"), 500, internalErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, logger.NewNopLogger(), tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestRespondErrorLogsUnexpected(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Get("/reports", func(c *fiber.Ctx) error {
		return respondError(c, logger.NewFromZap(zap.New(core)), errors.New("timeout"))
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "/reports", logs.All()[0].ContextMap()["path"])
}

func TestParsePaging(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit, err := parsePaging(c)
		if err != nil {
			return respondError(c, logger.NewNopLogger(), err)
		}
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]int{"page": 1, "limit": 10}, body)

	for _, q := range []string{"?page=0", "?page=x", "?limit=500"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+q, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestRawFilterReadsQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(rawFilter(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?survey=1&region=4&educationLevel=Secundaria&grade=3", nil))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1", body["Survey"])
	assert.Equal(t, "4", body["Region"])
	assert.Equal(t, "Secundaria", body["EducationLevel"])
	assert.Equal(t, "3", body["Grade"])
}

func TestErrorHandlerEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
	app.Get("/falha", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/inexistente", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/falha", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, internalErrorMessage, body["message"])
}
