package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"agromarket/internal/config"
)

func NewDb(ctx context.Context, cfg *config.Config) (*Database, error) {
	pool, err := pgxpool.Connect(ctx, generateDsn(cfg))
	if err != nil {
		return nil, err
	}
	return NewDatabase(pool), nil
}

func generateDsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
}
