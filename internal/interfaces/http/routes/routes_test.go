package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/auth"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportRepo struct {
	participations []int64
	lastFilter     model.ReportFilter
}

func (s *stubReportRepo) SelectParticipations(_ context.Context, f model.ReportFilter) ([]int64, error) {
	s.lastFilter = f
	return s.participations, nil
}

func (s *stubReportRepo) GetQuestionCatalog(_ context.Context, _ int64) ([]model.QuestionCatalogRow, error) {
	yes, no := "Sí", "No"
	one, two := int64(1), int64(2)
	return []model.QuestionCatalogRow{
		{QuestionID: 1, OrderIndex: 1, Text: "¿Te sientes seguro en tu colegio?", OptionID: &one, OptionText: &yes},
		{QuestionID: 1, OrderIndex: 1, Text: "¿Te sientes seguro en tu colegio?", OptionID: &two, OptionText: &no},
	}, nil
}

func (s *stubReportRepo) CountAnswers(_ context.Context, ids []int64) ([]model.AnswerCountRow, error) {
	one, two := int64(1), int64(2)
	return []model.AnswerCountRow{
		{QuestionID: 1, OptionID: &one, Count: 2},
		{QuestionID: 1, OptionID: &two, Count: 1},
	}, nil
}

type stubHierarchyRepo struct{}

func (stubHierarchyRepo) ListRegions(_ context.Context) ([]entities.Region, error) {
	return []entities.Region{{ID: 4, Name: "DRE Cusco"}}, nil
}

func (stubHierarchyRepo) ListSubRegions(_ context.Context, _ int64) ([]entities.SubRegion, error) {
	return []entities.SubRegion{}, nil
}

func (stubHierarchyRepo) ListSchools(_ context.Context, _ int64) ([]entities.School, error) {
	return []entities.School{}, nil
}

func (stubHierarchyRepo) FindRegion(_ context.Context, id int64) (*entities.Region, error) {
	if id != 4 {
		return nil, errs.ErrNotFound
	}
	return &entities.Region{ID: 4, Name: "DRE Cusco"}, nil
}

func (stubHierarchyRepo) FindSubRegion(_ context.Context, _ int64) (*entities.SubRegion, error) {
	return nil, errs.ErrNotFound
}

func (stubHierarchyRepo) FindSchoolPlacement(_ context.Context, _ int64) (*entities.SchoolPlacement, error) {
	return nil, errs.ErrNotFound
}

type stubSurveyRepo struct{}

func (stubSurveyRepo) List(_ context.Context, _ repositories.SurveyListParams) ([]entities.Survey, int64, error) {
	return []entities.Survey{{ID: 1, Title: "Clima escolar 2026"}}, 1, nil
}

func (stubSurveyRepo) FindByID(_ context.Context, id int64, _ bool) (*entities.Survey, error) {
	if id != 1 {
		return nil, errs.ErrNotFound
	}
	return &entities.Survey{ID: 1, Title: "Clima escolar 2026"}, nil
}

func (stubSurveyRepo) Create(_ context.Context, _ *entities.Survey) error { return nil }

func (stubSurveyRepo) Update(_ context.Context, _ *entities.Survey) error { return nil }

func (stubSurveyRepo) Delete(_ context.Context, id int64) error {
	if id != 1 {
		return errs.ErrNotFound
	}
	return nil
}

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, email, password string) (*entity.Identity, error) {
	if password != "secreto" {
		return nil, errs.ErrInvalidCredentials
	}
	role := entity.RoleAnalyst
	if strings.HasPrefix(email, "admin") {
		role = entity.RoleAdmin
	}
	return &entity.Identity{UserID: "u-1", Email: email, Role: role}, nil
}

func newTestApp(t *testing.T, participations []int64) *fiber.App {
	t.Helper()
	return newTestAppWithReports(t, &stubReportRepo{participations: participations})
}

func newTestAppWithReports(t *testing.T, reports *stubReportRepo) *fiber.App {
	t.Helper()

	log := logger.NewNopLogger()
	c := cache.New(time.Minute)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	surveys := stubSurveyRepo{}

	useCases := &usecases.UseCases{
		Reports: usecases.NewReportUseCase(reports, stubHierarchyRepo{}, surveys, c, nil, log),
		Surveys: usecases.NewSurveyUseCase(surveys, c, log),
		Auth:    usecases.NewAuthUseCase(stubAuthenticator{}, tokens, repository.NewMemoryRevocationStore(), log),
		Catalog: usecases.NewCatalogUseCase(stubHierarchyRepo{}, c),
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	middleware.SetupMiddlewares(app, middleware.Options{AllowOrigins: "http://localhost:3000", Logger: log, Metrics: metrics.New(nil)})
	h := handlers.NewHandlers(useCases, nil, handlers.CookieOptions{}, Version, log)
	RegisterRoutes(app, h, useCases.Auth, metrics.New(nil))
	return app
}

func login(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"`+email+`","password":"secreto"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			assert.True(t, ck.HttpOnly)
			return ck
		}
	}
	t.Fatal("cookie de sessão ausente")
	return nil
}

func doGet(t *testing.T, app *fiber.App, path string, ck *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	resp := doGet(t, app, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode(t, resp)["status"])
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/reports?survey=1", "/surveys", "/auth/me", "/catalog/regions"} {
		resp := doGet(t, app, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@minedu.pe","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Credenciales inválidas", decode(t, resp)["message"])
}

func TestMeAndLogout(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/auth/me", ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "analista", data["user"].(map[string]interface{})["role"])
	assert.NotContains(t, data["menu"], "importar")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/auth/me", ck)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAnalystCannotEditSurveys(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "ana@minedu.pe")

	req := httptest.NewRequest(http.MethodDelete, "/surveys/1", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminDeletesSurvey(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "admin@minedu.pe")

	req := httptest.NewRequest(http.MethodDelete, "/surveys/1", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/surveys/99", nil)
	req.AddCookie(ck)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSurveyValidation(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "admin@minedu.pe")

	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(ck)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["errors"], "title")
}

func TestChartsWithoutSurvey(t *testing.T) {
	app := newTestApp(t, []int64{1})
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports?region=4", ck)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Seleccione una encuesta", body["message"])
	assert.Equal(t, "survey", body["field"])
}

func TestCharts(t *testing.T) {
	app := newTestApp(t, []int64{1, 2, 3})
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports?survey=1", ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "data")
	series := body["charts"].([]interface{})
	require.Len(t, series, 1)
	chart := series[0].(map[string]interface{})
	assert.Contains(t, chart, "question")
	assert.Contains(t, chart, "data")
}

func TestExportSurveyCSV(t *testing.T) {
	app := newTestApp(t, []int64{1, 2, 3})
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports/export/survey/1", ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="encuesta_1_`)

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "\ufeff"))
	assert.Contains(t, string(content), `"Sí";2`+"\r\n")
}

func TestExportEmptyIsNoContent(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "ana@minedu.pe")

	for _, path := range []string{
		"/reports/export/survey/1",
		"/reports/export/survey/1/region?region=4",
		"/reports/export/survey/1/pdf",
	} {
		resp := doGet(t, app, path, ck)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, path)
	}
}

func TestExportMissingFilters(t *testing.T) {
	app := newTestApp(t, []int64{1})
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports/export/survey/1/region", ck)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Seleccione una DRE", decode(t, resp)["message"])

	resp = doGet(t, app, "/reports/export/survey/1/subregion?region=4", ck)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Seleccione una UGEL", decode(t, resp)["message"])

	resp = doGet(t, app, "/reports/export/survey/1/school/abc", ck)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/reports/export/survey/1/school", "/reports/export/survey/1/school/"} {
		resp = doGet(t, app, path, ck)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		body := decode(t, resp)
		assert.Equal(t, "school", body["field"], path)
		assert.Equal(t, false, body["success"], path)
	}
}

func TestExportSchoolWithoutDataIsNoContent(t *testing.T) {
	app := newTestApp(t, nil)
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports/export/survey/1/school/15", ck)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestExportSurveyIgnoresNarrowingFilters(t *testing.T) {
	reports := &stubReportRepo{participations: []int64{1, 2, 3}}
	app := newTestAppWithReports(t, reports)
	ck := login(t, app, "ana@minedu.pe")

	resp := doGet(t, app, "/reports/export/survey/1?region=4&subregion=9&school=15&grade=3", ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), reports.lastFilter.SurveyID)
	assert.Nil(t, reports.lastFilter.RegionID)
	assert.Nil(t, reports.lastFilter.SubRegionID)
	assert.Nil(t, reports.lastFilter.SchoolID)
	assert.Nil(t, reports.lastFilter.Grade)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	doGet(t, app, "/health", nil)
	resp := doGet(t, app, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
