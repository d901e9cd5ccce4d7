package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"worklog/internal/domain/auth"
	"worklog/internal/platform/config"
)

// Seed ensures the singleton rows exist: the owner user and the business
// details record. It never overwrites a password that is already set.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureOwner(ctx, pool, cfg.SeedOwnerPassword); err != nil {
		return err
	}
	return ensureBusinessDetails(ctx, pool)
}

func ensureOwner(ctx context.Context, pool *pgxpool.Pool, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(password) == "" {
		return errors.New("SEED_OWNER_PASSWORD is required to create the owner user")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, "INSERT INTO users (password_hash) VALUES ($1)", hash)
	return err
}

func ensureBusinessDetails(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM business_details").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := pool.Exec(ctx, "INSERT INTO business_details DEFAULT VALUES")
	return err
}
