package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/customer"
)

var ErrInvalidStatus = errors.New("invalid order status")

// CheckoutResult identifies the records created by a successful checkout.
type CheckoutResult struct {
	OrderID    int64
	CustomerID int64
}

type Service interface {
	// Checkout validates the request, resolves the customer by email and
	// persists the order. Validation failures come back as
	// *ValidationError; everything else is a persistence failure.
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
	GetOrders(ctx context.Context) ([]Summary, error)
	GetOrderByID(ctx context.Context, id int64) (*Details, error)
	GetCustomerOrders(ctx context.Context, customerID int64) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status Status) error
}

type service struct {
	repo      Repository
	customers customer.Service
	assembler *Assembler
}

func NewService(repo Repository, customers customer.Service) Service {
	return &service{
		repo:      repo,
		customers: customers,
		assembler: NewAssembler(),
	}
}

func (s *service) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	draft, vErr := s.assembler.Assemble(req)
	if vErr != nil {
		log.Warn().Str("field", vErr.Field).Str("reason", vErr.Message).Msg("service: checkout rejected")
		return nil, vErr
	}

	customerID, err := s.customers.CreateOrGet(ctx, &draft.Customer)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve customer: %w", err)
	}

	orderID, err := s.repo.Create(ctx, customerID, draft.TotalAmount, draft.Items)
	if err != nil {
		log.Error().Err(err).Int64("customer_id", customerID).Msg("service: failed to create order")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Int64("order_id", orderID).
		Int64("customer_id", customerID).
		Int64("total_amount", draft.TotalAmount).
		Int("items", len(draft.Items)).
		Msg("service: order created")

	return &CheckoutResult{OrderID: orderID, CustomerID: customerID}, nil
}

func (s *service) GetOrders(ctx context.Context) ([]Summary, error) {
	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch orders")
		return nil, fmt.Errorf("service: failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *service) GetOrderByID(ctx context.Context, id int64) (*Details, error) {
	details, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order by id %d: %w", id, err)
	}
	return details, nil
}

func (s *service) GetCustomerOrders(ctx context.Context, customerID int64) ([]Order, error) {
	orders, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Int64("customer_id", customerID).Msg("service: failed to fetch customer orders")
		return nil, fmt.Errorf("service: failed to fetch customer orders: %w", err)
	}
	return orders, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	// Any valid status may replace any other; there is no transition table.
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Stringer("status", status).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order %d status: %w", id, err)
	}

	log.Info().Int64("order_id", id).Stringer("status", status).Msg("service: order status updated")
	return nil
}
