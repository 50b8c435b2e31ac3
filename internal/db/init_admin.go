package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"agromarket/internal/config"
)

// InitAdmin seeds the initial manager account so the back office is
// reachable on a fresh database.
func InitAdmin(ctx context.Context, database *Database, cfg *config.Config) error {
	var count int
	err := database.ExecQueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE username = $1", cfg.AdminUsername).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = database.Exec(ctx,
		"INSERT INTO users (username, password, role) VALUES ($1, $2, 'manager')",
		cfg.AdminUsername, string(hashed))
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}
