package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/config"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/auth"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/database"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	redisclient "github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/redis"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/interfaces/http/routes"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.Load(config.KeyDatabaseURL, config.KeySessionSecret)
	if err != nil {
		// ainda não há logger configurado
		fallback := logger.NewNopLogger()
		if l, lerr := logger.NewLogger(false); lerr == nil {
			fallback = l
		}
		fallback.Error("Configuração inválida", logger.Error(err))
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogDebug)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Warn("Arquivo .env ignorado", logger.Error(dotenvErr))
	}

	// Initialize database
	db, err := database.SetupDatabase(cfg, log)
	if err != nil {
		log.Error("Erro ao configurar o banco", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	authenticator, err := newAuthenticator(cfg, db)
	if err != nil {
		log.Error("Erro ao configurar autenticação", logger.Error(err))
		os.Exit(1)
	}

	m := metrics.New(nil)

	app := fiber.New(fiber.Config{
		AppName:      "encuestas-dashboard-api",
		Prefork:      false,
		BodyLimit:    10 * 1024 * 1024, // 10MB, planilhas de nómina
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	middleware.SetupMiddlewares(app, middleware.Options{
		AllowOrigins: cfg.AllowedOrigins(),
		Logger:       log,
		Metrics:      m,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		DB:            db,
		Logger:        log,
		Metrics:       m,
		Cache:         cache.New(cfg.CacheTTL),
		Authenticator: authenticator,
		Tokens:        auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL),
		Revocations:   newRevocationStore(cfg, log),
		Cookie:        handlers.CookieOptions{Secure: cfg.CookieSecure || cfg.IsProduction()},
		ImportMaxRows: cfg.ImportMaxRows,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Servidor iniciado", logger.String("port", cfg.Port), logger.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("Servidor encerrado com erro", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Encerrando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Erro no shutdown", logger.Error(err))
	}
}

func newAuthenticator(cfg *config.Config, db *gorm.DB) (auth.Authenticator, error) {
	if cfg.AuthProvider == config.AuthProviderSupabase {
		return auth.NewSupabaseAuthenticator(cfg.SupabaseURL, cfg.SupabaseKey)
	}
	return auth.NewLocalAuthenticator(repositories.NewUserRepository(db)), nil
}

// newRevocationStore usa o Redis quando configurado; sem ele as revogações ficam em memória
func newRevocationStore(cfg *config.Config, log logger.Logger) repository.RevocationStore {
	client, err := redisclient.NewClient(redisclient.Config{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		if !errors.Is(err, redisclient.ErrEmptyAddress) {
			log.Warn("Redis indisponível, revogação de sessões em memória", logger.Error(err))
		}
		return repository.NewMemoryRevocationStore()
	}
	return repository.NewRedisRevocationStore(client)
}
