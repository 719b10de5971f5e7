package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("admin not found")

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Credential, error)
	// CreateIfMissing inserts the account unless the username is taken.
	// Used to bootstrap the default admin on startup.
	CreateIfMissing(ctx context.Context, username, passwordHash, name string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	query := `
		SELECT id, username, password_hash, name, created_at
		FROM admins
		WHERE username = $1
	`

	var rec Credential
	err := r.db.QueryRow(ctx, query, username).Scan(
		&rec.ID, &rec.Username, &rec.PasswordHash, &rec.Name, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select admin %s: %w", username, err)
	}

	return &rec, nil
}

func (r *postgresRepository) CreateIfMissing(ctx context.Context, username, passwordHash, name string) error {
	query := `
		INSERT INTO admins (username, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, username, passwordHash, name); err != nil {
		return fmt.Errorf("repository: failed to create admin %s: %w", username, err)
	}

	return nil
}
