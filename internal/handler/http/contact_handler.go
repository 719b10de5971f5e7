package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/contact"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/contact", h.handleSubmit)
}

func (h *ContactHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contact.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.service.Submit(r.Context(), &req, clientIP(r), r.UserAgent())
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondWithValidationErrors(w, err)
			return
		}
		log.Error().Err(err).Msg("failed to submit contact message")
		respondWithServerError(w, r, "Failed to send message")
		return
	}

	respondWithJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Message sent successfully"})
}
