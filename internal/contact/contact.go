// Package contact handles storefront contact-form submissions.
package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IPAddress string    `json:"-"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

type Repository interface {
	Create(ctx context.Context, m *Message) (int64, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, m *Message) (int64, error) {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, m.Name, m.Email, m.Subject, m.Message, m.IPAddress, m.UserAgent).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert contact message: %w", err)
	}

	return id, nil
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// Submit validates and stores one contact-form message.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, ip, userAgent string) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	msg := &Message{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: ip,
		UserAgent: userAgent,
	}

	id, err := s.repo.Create(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("service: failed to store contact message")
		return fmt.Errorf("service: failed to store contact message: %w", err)
	}

	log.Info().Int64("message_id", id).Str("email", req.Email).Msg("contact message received")
	return nil
}
