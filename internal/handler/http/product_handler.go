package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/product"
)

type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,uri"`
	InStock     *bool  `json:"in_stock"`
}

type ProductHandler struct {
	service  product.Service
	validate *validator.Validate
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
}

func (h *ProductHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Post("/products", h.handleCreateProduct)
	router.Get("/products/{id}", h.handleGetProduct)
	router.Put("/products/{id}", h.handleUpdateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	featured := r.URL.Query().Get("featured") == "true"

	products, err := h.service.GetProducts(r.Context(), category, featured)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products via service")
		respondWithServerError(w, r, "Failed to retrieve products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	p, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("failed to get product via service")
		respondWithServerError(w, r, "Failed to retrieve product")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	p := requestToProduct(req)
	id, err := h.service.CreateProduct(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("failed to create product via service")
		respondWithServerError(w, r, "Failed to create product")
		return
	}

	p.ID = id
	respondWithJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	p := requestToProduct(req)
	p.ID = id
	if err := h.service.UpdateProduct(r.Context(), p); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("failed to update product via service")
		respondWithServerError(w, r, "Failed to update product")
		return
	}

	respondWithJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Product updated successfully"})
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("failed to delete product via service")
		respondWithServerError(w, r, "Failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	var req ProductRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithValidationErrors(w, err)
		return nil, false
	}

	return &req, true
}

func requestToProduct(req *ProductRequest) *product.Product {
	p := &product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		InStock:     true,
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	return p
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
