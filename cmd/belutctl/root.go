package main

import (
	"context"
	"fmt"

	"belutin-web/internal/coa"
	"belutin-web/internal/config"
	"belutin-web/internal/database"
	"belutin-web/internal/repository"
	"belutin-web/internal/service"
	"belutin-web/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	flagDriver string
	flagSQLite string
)

var rootCmd = &cobra.Command{
	Use:          "belutctl",
	Short:        "Maintenance commands for the BELUT.IN eel farm ledger",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Override DB_DRIVER (mysql or sqlite)")
	rootCmd.PersistentFlags().StringVar(&flagSQLite, "sqlite", "", "Override SQLITE_PATH")
}

// env holds the services a command works with.
type env struct {
	cfg         *config.Config
	db          *sqlx.DB
	users       *repository.UserRepository
	ledger      *service.LedgerService
	opening     *service.OpeningBalanceService
	adjustments *service.AdjustmentService
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDriver != "" {
		cfg.DBDriver = flagDriver
	}
	if flagSQLite != "" {
		cfg.SQLitePath = flagSQLite
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	utils.SetLogLevel(cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log := utils.GetLogger()
	chart := coa.Default()
	journal := repository.NewJournalRepository(db, log)
	opening := repository.NewOpeningBalanceRepository(db)
	adjust := repository.NewAdjustmentRepository(db)
	return &env{
		cfg:         cfg,
		db:          db,
		users:       repository.NewUserRepository(db),
		ledger:      service.NewLedgerService(journal, opening, adjust, chart, log),
		opening:     service.NewOpeningBalanceService(opening, chart, log),
		adjustments: service.NewAdjustmentService(adjust, chart, log),
	}, nil
}

func (e *env) Close() {
	e.db.Close()
}
