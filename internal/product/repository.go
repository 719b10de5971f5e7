package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	GetAll(ctx context.Context, category string) ([]Product, error)
	GetFeatured(ctx context.Context, limit int) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	MarkOutOfStock(ctx context.Context, id int64) error
	HasOrderReferences(ctx context.Context, id int64) (bool, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const productColumns = "id, name, description, price, category, image_url, in_stock, created_at"

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.InStock, &p.CreatedAt)
}

func (r *postgresRepository) GetAll(ctx context.Context, category string) ([]Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) GetFeatured(ctx context.Context, limit int) ([]Product, error) {
	query := "SELECT " + productColumns + ` FROM products
		WHERE in_stock = TRUE
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query featured products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("repository: failed to scan featured product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating featured products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	var p Product
	if err := scanProduct(r.db.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product by id %d: %w", id, err)
	}

	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) (int64, error) {
	query := `
		INSERT INTO products (name, description, price, category, image_url, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.InStock).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert product: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5, in_stock = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.InStock, p.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update product %d: %w", p.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) MarkOutOfStock(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "UPDATE products SET in_stock = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("repository: failed to mark product %d out of stock: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) HasOrderReferences(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check product %d references: %w", id, err)
	}

	return exists, nil
}
