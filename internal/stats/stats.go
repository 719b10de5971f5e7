// Package stats serves the admin dashboard projections. It reads through a
// separate sqlx connection: the queries are pure aggregations and sqlx's
// struct scanning keeps them short.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stitchfield/storefront/internal/config"
)

type RecentOrder struct {
	ID           int64     `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	TotalAmount  int64     `json:"total_amount" db:"total_amount"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type PopularProduct struct {
	ProductID     int64  `json:"product_id" db:"product_id"`
	Name          string `json:"name" db:"name"`
	Category      string `json:"category" db:"category"`
	TotalQuantity int64  `json:"total_quantity" db:"total_quantity"`
}

type Dashboard struct {
	TotalProducts   int64            `json:"total_products"`
	TotalOrders     int64            `json:"total_orders"`
	TotalCustomers  int64            `json:"total_customers"`
	TotalRevenue    int64            `json:"total_revenue"`
	RecentOrders    []RecentOrder    `json:"recent_orders"`
	PopularProducts []PopularProduct `json:"popular_products"`
}

type Store struct {
	db *sqlx.DB
}

func Open(cfg config.PostgresConfig) (*Store, error) {
	db, err := sqlx.Connect("postgres", cfg.URL("postgres"))
	if err != nil {
		return nil, fmt.Errorf("stats: failed to connect: %w", err)
	}
	return &Store{db: db}, nil
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dashboard aggregates the admin landing-page numbers: entity counts, total
// revenue, the five most recent orders and the five best-selling products.
func (s *Store) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{
		RecentOrders:    make([]RecentOrder, 0, 5),
		PopularProducts: make([]PopularProduct, 0, 5),
	}

	counts := []struct {
		dst   *int64
		query string
	}{
		{&d.TotalProducts, "SELECT COUNT(*) FROM products"},
		{&d.TotalOrders, "SELECT COUNT(*) FROM orders"},
		{&d.TotalCustomers, "SELECT COUNT(*) FROM customers"},
		{&d.TotalRevenue, "SELECT COALESCE(SUM(total_amount), 0) FROM orders"},
	}
	for _, c := range counts {
		if err := s.db.GetContext(ctx, c.dst, c.query); err != nil {
			return nil, fmt.Errorf("stats: failed to aggregate (%s): %w", c.query, err)
		}
	}

	recentQuery := `
		SELECT o.id, c.name AS customer_name, o.total_amount, o.status, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
		LIMIT 5
	`
	if err := s.db.SelectContext(ctx, &d.RecentOrders, recentQuery); err != nil {
		return nil, fmt.Errorf("stats: failed to fetch recent orders: %w", err)
	}

	popularQuery := `
		SELECT oi.product_id, p.name, p.category, SUM(oi.quantity) AS total_quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY oi.product_id, p.name, p.category
		ORDER BY total_quantity DESC
		LIMIT 5
	`
	if err := s.db.SelectContext(ctx, &d.PopularProducts, popularQuery); err != nil {
		return nil, fmt.Errorf("stats: failed to fetch popular products: %w", err)
	}

	return d, nil
}
