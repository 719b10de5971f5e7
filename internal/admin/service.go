package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	repo     Repository
	sessions *Sessions
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		sessions: NewSessions(SessionTTL),
	}
}

// Bootstrap ensures the configured admin account exists. Called once on
// startup; an existing username is left untouched.
func (s *Service) Bootstrap(ctx context.Context, username, password, name string) error {
	if username == "" || password == "" {
		log.Warn().Msg("admin bootstrap skipped: no credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	if err := s.repo.CreateIfMissing(ctx, username, string(hash), name); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	log.Info().Str("username", username).Msg("admin account ensured")
	return nil
}

// Login checks the credentials and issues a session token valid for
// SessionTTL.
func (s *Service) Login(ctx context.Context, username, password string) (string, Admin, error) {
	rec, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", Admin{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", username).Msg("service: failed to look up admin")
		return "", Admin{}, fmt.Errorf("service: failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", Admin{}, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(rec.Admin)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create session token")
		return "", Admin{}, fmt.Errorf("service: failed to create session: %w", err)
	}

	log.Info().Str("username", username).Msg("admin logged in")
	return token, rec.Admin, nil
}

// Authenticate resolves a session token to the logged-in admin.
func (s *Service) Authenticate(token string) (Admin, bool) {
	return s.sessions.Get(token)
}

func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}
