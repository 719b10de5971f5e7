package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlerHttp "github.com/stitchfield/storefront/internal/handler/http"
	"github.com/stitchfield/storefront/internal/order"
)

type mockOrderService struct {
	checkoutFunc          func(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error)
	getOrdersFunc         func(ctx context.Context) ([]order.Summary, error)
	getOrderByIDFunc      func(ctx context.Context, id int64) (*order.Details, error)
	getCustomerOrdersFunc func(ctx context.Context, customerID int64) ([]order.Order, error)
	updateOrderStatusFunc func(ctx context.Context, id int64, status order.Status) error
}

func (m *mockOrderService) Checkout(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error) {
	return m.checkoutFunc(ctx, req)
}

func (m *mockOrderService) GetOrders(ctx context.Context) ([]order.Summary, error) {
	return m.getOrdersFunc(ctx)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id int64) (*order.Details, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderService) GetCustomerOrders(ctx context.Context, customerID int64) ([]order.Order, error) {
	return m.getCustomerOrdersFunc(ctx, customerID)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id int64, status order.Status) error {
	return m.updateOrderStatusFunc(ctx, id, status)
}

func orderRouter(svc order.Service) *chi.Mux {
	h := handlerHttp.NewOrderHandler(svc)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

const checkoutBody = `{
	"customer": {
		"name": "Ada Obi",
		"email": "ada@example.com",
		"phone": "08012345678",
		"address": "12 Broad Street, Lagos"
	},
	"items": [
		{"product_id": 1, "quantity": 2, "price": 15000}
	]
}`

func TestOrderHandler_Checkout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockOrderService{
			checkoutFunc: func(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error) {
				require.Equal(t, "ada@example.com", req.Customer.Email)
				require.Len(t, req.Items, 1)
				return &order.CheckoutResult{OrderID: 7, CustomerID: 3}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(checkoutBody))
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"orderId":7,"customerId":3,"message":"Order created successfully"}`, rec.Body.String())
	})

	t.Run("validation_failure", func(t *testing.T) {
		svc := &mockOrderService{
			checkoutFunc: func(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error) {
				return nil, &order.ValidationError{Field: "items", Message: "empty cart"}
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(checkoutBody))
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"empty cart"}`, rec.Body.String())
	})

	t.Run("malformed_body", func(t *testing.T) {
		svc := &mockOrderService{
			checkoutFunc: func(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error) {
				t.Fatal("the service must not see an undecodable request")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("persistence_failure", func(t *testing.T) {
		svc := &mockOrderService{
			checkoutFunc: func(ctx context.Context, req *order.CheckoutRequest) (*order.CheckoutResult, error) {
				return nil, errors.New("db down")
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(checkoutBody))
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down", "internal detail must not leak")
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		svcErr   error
		wantCode int
		wantBody string
	}{
		{
			name:     "success",
			target:   "/orders/5/status",
			body:     `{"status":"processing"}`,
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"message":"Order status updated successfully"}`,
		},
		{
			name:     "invalid_status_value",
			target:   "/orders/5/status",
			body:     `{"status":"shipped"}`,
			svcErr:   order.ErrInvalidStatus,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Invalid status"}`,
		},
		{
			name:     "missing_order",
			target:   "/orders/999/status",
			body:     `{"status":"completed"}`,
			svcErr:   order.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"message":"Order not found"}`,
		},
		{
			name:     "non_numeric_id",
			target:   "/orders/abc/status",
			body:     `{"status":"completed"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Invalid order ID"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderService{
				updateOrderStatusFunc: func(ctx context.Context, id int64, status order.Status) error {
					return tt.svcErr
				},
			}

			req := httptest.NewRequest(http.MethodPut, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			orderRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		svc := &mockOrderService{
			getOrderByIDFunc: func(ctx context.Context, id int64) (*order.Details, error) {
				return nil, order.ErrNotFound
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/orders/404", nil)
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		svc := &mockOrderService{
			getOrderByIDFunc: func(ctx context.Context, id int64) (*order.Details, error) {
				d := &order.Details{}
				d.ID = id
				d.TotalAmount = 30000
				d.Status = order.StatusPending
				return d, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
		rec := httptest.NewRecorder()
		orderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_amount":30000`)
	})
}
