package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// Create inserts the order header and all items in one transaction and
	// returns the new order id.
	Create(ctx context.Context, customerID int64, totalAmount int64, items []Item) (int64, error)
	GetAll(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (*Details, error)
	GetByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, customerID int64, totalAmount int64, items []Item) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error().Err(rbErr).Msg("repository: failed to rollback order transaction")
		}
	}()

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, customerID, totalAmount, StatusPending.String()).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	for i := range items {
		item := &items[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, custom_requirements)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING id
		`, orderID, item.ProductID, item.Quantity, item.Price, item.CustomRequirements).Scan(&item.ID)
		if err != nil {
			return 0, fmt.Errorf("repository: failed to insert order item for order %d: %w", orderID, err)
		}
		item.OrderID = orderID
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: failed to commit order transaction: %w", err)
	}

	return orderID, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.status, o.created_at, c.name
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.TotalAmount, &s.Status, &s.CreatedAt, &s.CustomerName); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order summary: %w", err)
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Details, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.status, o.created_at,
		       c.id, c.name, c.email, c.phone, c.address, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`

	var d Details
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CustomerID, &d.TotalAmount, &d.Status, &d.CreatedAt,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &d.Customer.Phone,
		&d.Customer.Address, &d.Customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %d: %w", id, err)
	}

	itemsQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       COALESCE(oi.custom_requirements, ''),
		       p.name, p.category, p.image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %d: %w", id, err)
	}
	defer rows.Close()

	d.Items = make([]ItemDetail, 0)
	for rows.Next() {
		var item ItemDetail
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&item.CustomRequirements,
			&item.ProductName, &item.ProductCategory, &item.ProductImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %d: %w", id, err)
		}
		d.Items = append(d.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %d: %w", id, err)
	}

	return &d, nil
}

func (r *postgresRepository) GetByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	query := `
		SELECT id, customer_id, total_amount, status, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order for customer %d: %w", customerID, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders for customer %d: %w", customerID, err)
	}

	return orders, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	cmdTag, err := r.db.Exec(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status.String(), id)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %d status: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
