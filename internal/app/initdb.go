package app

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/psytest/internal/app/schema"
	"github.com/IT-Nick/psytest/internal/infra/config"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	logger := log.WithComponent("db")
	logger.Info().
		Str("host", connConfig.ConnConfig.Host).
		Str("database", connConfig.ConnConfig.Database).
		Msg("database connected")
	return db, nil
}

// Migrate создает таблицы, если их еще нет
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema.SQL); err != nil {
		return fmt.Errorf("app.Migrate: %w", err)
	}
	logger := log.WithComponent("db")
	logger.Info().Msg("schema is up to date")
	return nil
}
