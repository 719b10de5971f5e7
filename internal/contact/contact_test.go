package contact_test

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchfield/storefront/internal/contact"
)

type mockRepository struct {
	createFunc func(ctx context.Context, m *contact.Message) (int64, error)
}

func (m *mockRepository) Create(ctx context.Context, msg *contact.Message) (int64, error) {
	return m.createFunc(ctx, msg)
}

func validSubmit() *contact.SubmitRequest {
	return &contact.SubmitRequest{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Subject: "Custom order enquiry",
		Message: "Do you make agbada in childrens sizes?",
	}
}

func TestService_Submit(t *testing.T) {
	t.Run("stores_message_with_request_metadata", func(t *testing.T) {
		var got *contact.Message
		repo := &mockRepository{
			createFunc: func(ctx context.Context, m *contact.Message) (int64, error) {
				got = m
				return 1, nil
			},
		}
		svc := contact.NewService(repo)

		err := svc.Submit(context.Background(), validSubmit(), "10.0.0.1", "shopctl/1.0")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ada@example.com", got.Email)
		assert.Equal(t, "10.0.0.1", got.IPAddress)
		assert.Equal(t, "shopctl/1.0", got.UserAgent)
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, m *contact.Message) (int64, error) {
				t.Fatal("an invalid message must not be stored")
				return 0, nil
			},
		}
		svc := contact.NewService(repo)

		tests := []struct {
			name   string
			mutate func(req *contact.SubmitRequest)
		}{
			{"short_name", func(req *contact.SubmitRequest) { req.Name = "A" }},
			{"bad_email", func(req *contact.SubmitRequest) { req.Email = "not-an-email" }},
			{"short_subject", func(req *contact.SubmitRequest) { req.Subject = "Hi" }},
			{"short_message", func(req *contact.SubmitRequest) { req.Message = "too short" }},
			{"long_message", func(req *contact.SubmitRequest) { req.Message = strings.Repeat("a", 1001) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validSubmit()
				tt.mutate(req)

				err := svc.Submit(context.Background(), req, "10.0.0.1", "")
				require.Error(t, err)
				_, ok := err.(validator.ValidationErrors)
				assert.True(t, ok, "validation failures keep their field detail")
			})
		}
	})
}
