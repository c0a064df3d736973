package middleware

import (
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Options configura a cadeia global de middlewares
type Options struct {
	AllowOrigins string
	Logger       logger.Logger
	Metrics      *metrics.Metrics
}

func SetupMiddlewares(app *fiber.App, opts Options) {
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	// o logger envolve o recover para registrar também as requisições com panic
	app.Use(RequestLogger(opts.Logger, opts.Metrics))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	// CORS com credenciais: o cookie de sessão precisa ir nas chamadas do painel
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders:    "Content-Disposition, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutos
	}))
}

// LoginLimiter limita as tentativas de login por IP
func LoginLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Demasiados intentos, intente nuevamente en unos minutos",
			})
		},
	})
}

// RouteGroups define os grupos de rotas da API. Os grupos protegidos compartilham o
// prefixo do público, então os guards são aplicados por rota e não com Use.
type RouteGroups struct {
	Public        fiber.Router
	Authenticated Guarded
	Admin         Guarded
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App, prefix string, authMiddleware fiber.Handler) RouteGroups {
	api := app.Group(prefix)

	return RouteGroups{
		Public:        api,
		Authenticated: Guarded{router: api, guards: []fiber.Handler{authMiddleware}},
		Admin:         Guarded{router: api, guards: []fiber.Handler{authMiddleware, RequireRole(entity.RoleAdmin)}},
	}
}

// Guarded registra rotas com os guards à frente dos handlers
type Guarded struct {
	router fiber.Router
	guards []fiber.Handler
}

func (g Guarded) chain(handlers []fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(g.guards)+len(handlers))
	chain = append(chain, g.guards...)
	return append(chain, handlers...)
}

func (g Guarded) Get(path string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Get(path, g.chain(handlers)...)
}

func (g Guarded) Post(path string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Post(path, g.chain(handlers)...)
}

func (g Guarded) Put(path string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Put(path, g.chain(handlers)...)
}

func (g Guarded) Delete(path string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Delete(path, g.chain(handlers)...)
}
