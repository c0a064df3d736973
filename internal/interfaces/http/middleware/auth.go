package middleware

import (
	"context"
	"errors"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/gofiber/fiber/v2"
)

// SessionCookie é o nome do cookie HttpOnly que carrega o token de sessão
const SessionCookie = "encuestas_session"

const identityKey = "identity"

// SessionAuthenticator valida o token do cookie
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
}

// RequireSession exige um cookie de sessão válido e guarda a identidade em Locals.
// Falhas de infraestrutura seguem para o ErrorHandler em vez de virar 401.
func RequireSession(auth SessionAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.Authenticate(c.UserContext(), c.Cookies(SessionCookie))
		if err != nil && !errors.Is(err, errs.ErrUnauthorized) {
			return err
		}
		if err != nil || identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Sesión no válida o expirada",
			})
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole recusa usuários cujo papel não está na lista
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentIdentity(c).HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Acceso denegado",
			})
		}
		return c.Next()
	}
}

// CurrentIdentity devolve o usuário da requisição ou nil
func CurrentIdentity(c *fiber.Ctx) *entity.Identity {
	identity, _ := c.Locals(identityKey).(*entity.Identity)
	return identity
}
