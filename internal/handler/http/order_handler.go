package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/order"
)

type CheckoutResponse struct {
	Success    bool   `json:"success"`
	OrderID    int64  `json:"orderId,omitempty"`
	CustomerID int64  `json:"customerId,omitempty"`
	Message    string `json:"message,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type OrderHandler struct {
	service order.Service
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/orders", h.handleCheckout)
}

func (h *OrderHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.Put("/orders/{id}/status", h.handleUpdateStatus)
}

func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req order.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		var vErr *order.ValidationError
		if errors.As(err, &vErr) {
			respondWithJSON(w, http.StatusBadRequest, CheckoutResponse{Success: false, Message: vErr.Message})
			return
		}
		log.Error().Err(err).Msg("checkout failed via service")
		respondWithServerError(w, r, "Failed to create order")
		return
	}

	respondWithJSON(w, http.StatusOK, CheckoutResponse{
		Success:    true,
		OrderID:    result.OrderID,
		CustomerID: result.CustomerID,
		Message:    "Order created successfully",
	})
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list orders via service")
		respondWithServerError(w, r, "Failed to retrieve orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	details, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error().Err(err).Int64("order_id", id).Msg("failed to get order via service")
		respondWithServerError(w, r, "Failed to retrieve order")
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err = h.service.UpdateOrderStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, order.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		default:
			log.Error().Err(err).Int64("order_id", id).Msg("failed to update order status via service")
			respondWithServerError(w, r, "Failed to update order status")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Order status updated successfully"})
}
