package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) PasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := s.DB.QueryRow(ctx, "SELECT password_hash FROM users LIMIT 1").Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *Store) UpdatePassword(ctx context.Context, hash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1, updated_at = now()", hash)
	return err
}
