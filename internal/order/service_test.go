package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchfield/storefront/internal/customer"
	"github.com/stitchfield/storefront/internal/order"
)

type mockRepository struct {
	createFunc        func(ctx context.Context, customerID int64, totalAmount int64, items []order.Item) (int64, error)
	getAllFunc        func(ctx context.Context) ([]order.Summary, error)
	getByIDFunc       func(ctx context.Context, id int64) (*order.Details, error)
	getByCustomerFunc func(ctx context.Context, customerID int64) ([]order.Order, error)
	updateStatusFunc  func(ctx context.Context, id int64, status order.Status) error
}

func (m *mockRepository) Create(ctx context.Context, customerID int64, totalAmount int64, items []order.Item) (int64, error) {
	return m.createFunc(ctx, customerID, totalAmount, items)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]order.Summary, error) {
	return m.getAllFunc(ctx)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*order.Details, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) GetByCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	return m.getByCustomerFunc(ctx, customerID)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	return m.updateStatusFunc(ctx, id, status)
}

type mockCustomerService struct {
	createOrGetFunc func(ctx context.Context, c *customer.Customer) (int64, error)
}

func (m *mockCustomerService) CreateOrGet(ctx context.Context, c *customer.Customer) (int64, error) {
	return m.createOrGetFunc(ctx, c)
}

func (m *mockCustomerService) GetCustomers(ctx context.Context) ([]customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerService) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return nil, nil
}

func TestService_Checkout(t *testing.T) {
	t.Run("persists_recomputed_total", func(t *testing.T) {
		var gotTotal int64
		var gotCustomerID int64
		var gotItems []order.Item

		repo := &mockRepository{
			createFunc: func(ctx context.Context, customerID int64, totalAmount int64, items []order.Item) (int64, error) {
				gotCustomerID = customerID
				gotTotal = totalAmount
				gotItems = items
				return 77, nil
			},
		}
		customers := &mockCustomerService{
			createOrGetFunc: func(ctx context.Context, c *customer.Customer) (int64, error) {
				return 42, nil
			},
		}

		svc := order.NewService(repo, customers)
		req := validCheckout()
		req.TotalAmount = 999 // must be ignored

		result, err := svc.Checkout(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(77), result.OrderID)
		assert.Equal(t, int64(42), result.CustomerID)
		assert.Equal(t, int64(42), gotCustomerID)
		assert.Equal(t, int64(30000), gotTotal)
		require.Len(t, gotItems, 1)
		assert.Equal(t, int64(15000), gotItems[0].Price)
	})

	t.Run("empty_cart_creates_nothing", func(t *testing.T) {
		created := false
		repo := &mockRepository{
			createFunc: func(ctx context.Context, customerID int64, totalAmount int64, items []order.Item) (int64, error) {
				created = true
				return 1, nil
			},
		}
		customers := &mockCustomerService{
			createOrGetFunc: func(ctx context.Context, c *customer.Customer) (int64, error) {
				created = true
				return 1, nil
			},
		}

		svc := order.NewService(repo, customers)
		req := validCheckout()
		req.Items = nil

		result, err := svc.Checkout(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.False(t, created, "nothing may be persisted for an invalid checkout")

		var vErr *order.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "empty cart", vErr.Message)
	})

	t.Run("customer_failure_aborts", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, customerID int64, totalAmount int64, items []order.Item) (int64, error) {
				t.Fatal("order must not be created when the customer cannot be resolved")
				return 0, nil
			},
		}
		customers := &mockCustomerService{
			createOrGetFunc: func(ctx context.Context, c *customer.Customer) (int64, error) {
				return 0, errors.New("db down")
			},
		}

		svc := order.NewService(repo, customers)
		_, err := svc.Checkout(context.Background(), validCheckout())
		require.Error(t, err)
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    order.Status
		repoErr   error
		wantErrIs error
	}{
		{name: "pending_to_processing", status: order.StatusProcessing},
		{name: "to_completed", status: order.StatusCompleted},
		// No transition table: leaving cancelled is allowed.
		{name: "cancelled_to_processing", status: order.StatusProcessing},
		{name: "unknown_status", status: order.Status("shipped"), wantErrIs: order.ErrInvalidStatus},
		{name: "missing_order", status: order.StatusCancelled, repoErr: order.ErrNotFound, wantErrIs: order.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				updateStatusFunc: func(ctx context.Context, id int64, status order.Status) error {
					return tt.repoErr
				},
			}
			svc := order.NewService(repo, &mockCustomerService{})

			err := svc.UpdateOrderStatus(context.Background(), 5, tt.status)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrIs))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_GetOrderByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id int64) (*order.Details, error) {
				return nil, order.ErrNotFound
			},
		}
		svc := order.NewService(repo, &mockCustomerService{})

		_, err := svc.GetOrderByID(context.Background(), 123)
		assert.True(t, errors.Is(err, order.ErrNotFound))
	})

	t.Run("found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id int64) (*order.Details, error) {
				d := &order.Details{}
				d.ID = id
				d.Status = order.StatusPending
				return d, nil
			},
		}
		svc := order.NewService(repo, &mockCustomerService{})

		d, err := svc.GetOrderByID(context.Background(), 123)
		require.NoError(t, err)
		assert.Equal(t, int64(123), d.ID)
	})
}
