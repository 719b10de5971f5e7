package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("customer not found")
	ErrEmailExists = errors.New("customer email already exists")
)

type Repository interface {
	// CreateOrGet inserts the customer, or returns the id of the existing
	// row with the same email. The existing row is left untouched.
	CreateOrGet(ctx context.Context, c *Customer) (int64, error)
	GetAll(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateOrGet(ctx context.Context, c *Customer) (int64, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing id, which
	// closes the lookup-then-insert race on concurrent checkouts for the
	// same email.
	query := `
		INSERT INTO customers (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.Address).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("repository: failed to upsert customer %s: %w", c.Email, err)
	}

	return id, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by id %d: %w", id, err)
	}

	return &c, nil
}
