package db

import (
	"context"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"paymaster/internal/domain/auth"
	"paymaster/internal/platform/config"
)

// Seed creates the initial operator account. It is a no-op when the account
// already exists or when seed credentials are not configured.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" {
		log.Println("seed skipped: SEED_ADMIN_EMAIL not set")
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = "ChangeMe123!"
		log.Println("seed warning: SEED_ADMIN_PASSWORD not set, using default")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
  `, email, hash)
	if err != nil {
		return err
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
