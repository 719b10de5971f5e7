package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/admin"
	"github.com/stitchfield/storefront/internal/customer"
	"github.com/stitchfield/storefront/internal/order"
	"github.com/stitchfield/storefront/internal/stats"
)

const sessionCookie = "admin_session"

type contextKey string

const adminContextKey contextKey = "admin"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Admin   admin.Admin `json:"admin"`
}

type CustomerDetailsResponse struct {
	customer.Customer
	Orders []order.Order `json:"orders"`
}

type AdminHandler struct {
	admins    *admin.Service
	customers customer.Service
	orders    order.Service
	dashboard *stats.Store
	secure    bool
}

func NewAdminHandler(admins *admin.Service, customers customer.Service, orders order.Service, dashboard *stats.Store, secureCookies bool) *AdminHandler {
	return &AdminHandler{
		admins:    admins,
		customers: customers,
		orders:    orders,
		dashboard: dashboard,
		secure:    secureCookies,
	}
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, adm, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Error().Err(err).Msg("admin login failed")
		respondWithServerError(w, r, "An error occurred during login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(admin.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, LoginResponse{Success: true, Admin: adm})
}

func (h *AdminHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.admins.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Logged out"})
}

// RequireAuth gates the admin API on a valid session cookie.
func (h *AdminHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		adm, ok := h.admins.Authenticate(cookie.Value)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, adm)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the authenticated admin set by RequireAuth.
func AdminFromContext(ctx context.Context) (admin.Admin, bool) {
	adm, ok := ctx.Value(adminContextKey).(admin.Admin)
	return adm, ok
}

func (h *AdminHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.GetCustomers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list customers via service")
		respondWithServerError(w, r, "Failed to retrieve customers")
		return
	}

	respondWithJSON(w, http.StatusOK, customers)
}

func (h *AdminHandler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	c, err := h.customers.GetCustomerByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer via service")
		respondWithServerError(w, r, "Failed to retrieve customer")
		return
	}

	orders, err := h.orders.GetCustomerOrders(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer orders via service")
		respondWithServerError(w, r, "Failed to retrieve customer orders")
		return
	}

	respondWithJSON(w, http.StatusOK, CustomerDetailsResponse{Customer: *c, Orders: orders})
}

func (h *AdminHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Dashboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard stats")
		respondWithServerError(w, r, "Failed to retrieve dashboard stats")
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/login", h.handleLogin)
}

func (h *AdminHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/customers", h.handleListCustomers)
	router.Get("/customers/{id}", h.handleGetCustomer)
	router.Get("/dashboard", h.handleDashboard)
	router.Post("/logout", h.handleLogout)
}
