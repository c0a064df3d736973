package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/config"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/database"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Ferramentas de administração do painel de encuestas",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "habilita logs de debug")

	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(addUserCommand())
	rootCmd.AddCommand(importCommand())
	rootCmd.AddCommand(summaryCommand())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

// env é o que os comandos compartilham: configuração, logger e banco
type env struct {
	cfg   *config.Config
	log   logger.Logger
	db    *gorm.DB
	cache *cache.Cache
}

// bootstrap carrega a configuração e abre o banco; migrate também aplica as migrações
func bootstrap(migrate bool) (*env, func(), error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(config.KeyDatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewLogger(debug || cfg.LogDebug)
	if err != nil {
		return nil, nil, err
	}

	var db *gorm.DB
	if migrate {
		db, err = database.SetupDatabase(cfg, log)
	} else {
		db, err = database.Open(cfg, log)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = database.Close(db)
		_ = log.Sync()
	}
	return &env{cfg: cfg, log: log, db: db, cache: cache.New(time.Minute)}, cleanup, nil
}
