package main

import (
	"log"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/auth"
	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/grid"
	"github.com/phkadmin/superbowl/internal/handlers"
	"github.com/phkadmin/superbowl/internal/pool"
	"github.com/phkadmin/superbowl/internal/store"
	"github.com/phkadmin/superbowl/pkg/common/env"
)

type Application struct {
	wg       sync.WaitGroup
	cfg      *Config
	logger   *slog.Logger
	store    *store.Store
	pool     *pool.Pool
	handlers *handlers.HandlerRepo
}

type Config struct {
	Port          int
	DatabasePath  string
	AdminPassword string
	SquaresCost   int
	MaxPerUser    int
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := &Config{
		Port:          env.GetInt("PORT", 8080),
		DatabasePath:  env.GetString("DATABASE_PATH", "./data/superbowl.db"),
		AdminPassword: env.GetString("ADMIN_PASSWORD", ""),
		SquaresCost:   env.GetInt("SQUARES_COST", 4),
		MaxPerUser:    env.GetInt("SQUARES_MAX_PER_USER", 5),
	}
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD not found")
	}

	// log to os standard output
	slogHandler := tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug})
	logger := slog.New(slogHandler)
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DatabasePath, func() (grid.Digits, grid.Digits) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return grid.NewDigits(rng), grid.NewDigits(rng)
	})
	if err != nil {
		logger.Error("open store", "error", err.Error())
		os.Exit(1)
	}
	defer st.Close()

	p, err := pool.New(logger, catalog.Event(), st, decimal.NewFromInt(int64(cfg.SquaresCost)), cfg.MaxPerUser)
	if err != nil {
		logger.Error("build pool", "error", err.Error())
		os.Exit(1)
	}

	handlerRepo := handlers.NewHandlerRepo(logger, p, auth.NewAdmin(cfg.AdminPassword))

	app := &Application{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		pool:     p,
		handlers: handlerRepo,
	}

	if err := app.run(); err != nil {
		logger.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}
