package handlers

import (
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// CookieOptions controla os atributos do cookie de sessão
type CookieOptions struct {
	Secure bool
	Domain string
}

// AuthHandler lida com login, logout e a sessão atual
type AuthHandler struct {
	authUseCase *usecases.AuthUseCase
	cookie      CookieOptions
	log         logger.Logger
}

func NewAuthHandler(authUseCase *usecases.AuthUseCase, cookie CookieOptions, log logger.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase, cookie: cookie, log: log}
}

type sessionResponse struct {
	User      *entity.Identity `json:"user"`
	Menu      []string         `json:"menu"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}

// Login autentica e grava o cookie de sessão
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Credenciais inválidas"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in usecases.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, errs.NewValidation("body", "JSON inválido"))
	}

	session, err := h.authUseCase.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Cookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sesión iniciada",
		"data": sessionResponse{
			User:      session.Identity,
			Menu:      session.Identity.MenuSections(),
			ExpiresAt: &session.ExpiresAt,
		},
	})
}

// Logout revoga a sessão e apaga o cookie
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authUseCase.Logout(c.UserContext(), c.Cookies(middleware.SessionCookie)); err != nil {
		return respondError(c, h.log, err)
	}
	c.Cookie(h.sessionCookie("", time.Unix(0, 0)))
	return respondMessage(c, fiber.StatusOK, "Sesión cerrada")
}

// Me devolve o usuário da sessão e as seções do menu
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return respondError(c, h.log, errs.ErrUnauthorized)
	}
	return respondOK(c, sessionResponse{
		User: identity,
		Menu: identity.MenuSections(),
	})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
