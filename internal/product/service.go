package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const featuredLimit = 6

type Service interface {
	GetProducts(ctx context.Context, category string, featured bool) ([]Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) (int64, error)
	UpdateProduct(ctx context.Context, p *Product) error
	// DeleteProduct removes the product, or marks it out of stock when
	// existing order items reference it.
	DeleteProduct(ctx context.Context, id int64) (DeleteResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProducts(ctx context.Context, category string, featured bool) ([]Product, error) {
	var (
		products []Product
		err      error
	)
	if featured {
		products, err = s.repo.GetFeatured(ctx, featuredLimit)
	} else {
		products, err = s.repo.GetAll(ctx, category)
	}
	if err != nil {
		log.Error().Err(err).Str("category", category).Bool("featured", featured).Msg("service: failed to fetch products")
		return nil, fmt.Errorf("service: failed to fetch products: %w", err)
	}

	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product by id %d: %w", id, err)
	}

	return p, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (int64, error) {
	if p.Price <= 0 {
		return 0, errors.New("service: product price must be positive")
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("name", p.Name).Msg("service: failed to create product")
		return 0, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Int64("product_id", id).Str("name", p.Name).Msg("service: product created")
	return id, nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) error {
	if p.Price <= 0 {
		return errors.New("service: product price must be positive")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", p.ID).Msg("service: failed to update product")
		return fmt.Errorf("service: failed to update product %d: %w", p.ID, err)
	}

	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) (DeleteResult, error) {
	referenced, err := s.repo.HasOrderReferences(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to check product references")
		return DeleteResult{}, fmt.Errorf("service: failed to check product references: %w", err)
	}

	if referenced {
		if err := s.repo.MarkOutOfStock(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return DeleteResult{}, ErrNotFound
			}
			log.Error().Err(err).Int64("product_id", id).Msg("service: failed to soft-delete product")
			return DeleteResult{}, fmt.Errorf("service: failed to soft-delete product %d: %w", id, err)
		}

		log.Info().Int64("product_id", id).Msg("service: product has orders, marked out of stock")
		return DeleteResult{SoftDeleted: true}, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteResult{}, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to delete product")
		return DeleteResult{}, fmt.Errorf("service: failed to delete product %d: %w", id, err)
	}

	log.Info().Int64("product_id", id).Msg("service: product deleted")
	return DeleteResult{Deleted: true}, nil
}
