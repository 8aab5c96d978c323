package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fyzahq/fyza/internal/config"
	"github.com/fyzahq/fyza/internal/db"
	"github.com/fyzahq/fyza/internal/repository"
	"github.com/fyzahq/fyza/internal/service"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	GoalService    *service.GoalService
	ProfileService *service.ProfileService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewWithDB(cfg, database), nil
}

// NewWithDB wires repositories and services on an already migrated database
func NewWithDB(cfg *config.Config, database *sqlx.DB) *App {
	// Repositories
	profileRepository := repository.NewProfileRepository(database)
	goalRepository := repository.NewGoalRepository(database)

	// Services
	goalService := service.NewGoalService(goalRepository, profileRepository)
	profileService := service.NewProfileService(profileRepository)

	return &App{
		Cfg:            cfg,
		DB:             database,
		GoalService:    goalService,
		ProfileService: profileService,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
