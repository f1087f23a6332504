package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/campuskit/registrar-service/internal/config"
	"github.com/campuskit/registrar-service/internal/utils"
)

// App holds the config and the shared DB pool.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing registrar-service App")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &App{Config: cfg, DB: pool}, nil
}

// Ping satisfies the health controller.
func (a *App) Ping(ctx context.Context) error {
	return a.DB.Ping(ctx)
}

func (a *App) Close() {
	utils.Logger.Info("registrar-service app shutting down.")
	a.DB.Close()
}
