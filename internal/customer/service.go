package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	// CreateOrGet resolves the customer id for an email, creating the row
	// on first sight. Calling it twice with the same email returns the
	// same id.
	CreateOrGet(ctx context.Context, c *Customer) (int64, error)
	GetCustomers(ctx context.Context) ([]Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrGet(ctx context.Context, c *Customer) (int64, error) {
	id, err := s.repo.CreateOrGet(ctx, c)
	if err != nil {
		log.Error().Err(err).Str("email", c.Email).Msg("service: failed to create or get customer")
		return 0, fmt.Errorf("service: failed to create or get customer: %w", err)
	}

	log.Info().Int64("customer_id", id).Str("email", c.Email).Msg("service: customer resolved")
	return id, nil
}

func (s *service) GetCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch customers")
		return nil, fmt.Errorf("service: failed to fetch customers: %w", err)
	}
	return customers, nil
}

func (s *service) GetCustomerByID(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("service: failed to fetch customer")
		return nil, fmt.Errorf("service: failed to fetch customer by id %d: %w", id, err)
	}
	return c, nil
}
