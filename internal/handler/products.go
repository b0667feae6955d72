package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/internal/middleware"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/Dienay/rangos-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ProductService interface {
	CreateProduct(ctx context.Context, actorID string, input service.CreateProductInput) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error)
}

type ProductHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	auth     func(http.Handler) http.Handler
	svc      ProductService
}

func NewProductHandler(logger *slog.Logger, auth func(http.Handler) http.Handler, svc ProductService) *ProductHandler {
	return &ProductHandler{
		logger:   logger.With(slog.String("handler", "products")),
		validate: validator.New(),
		auth:     auth,
		svc:      svc,
	}
}

func (h *ProductHandler) Init(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/top", h.TopProducts)
	r.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/products", h.CreateProduct)
	})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.Subject(ctx)
	if !ok {
		utils.WriteError(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	var req CreateProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.svc.CreateProduct(ctx, subject, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CoverPhoto:  req.CoverPhoto,
	})
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, ProductResponse{
		Message: "Product created successfully",
		Product: ProductEntityToJSON(product),
	}, http.StatusCreated)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.svc.ListProducts(ctx)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, ProductsResponse{
		Message:  "Products fetched successfully",
		Products: ProductsEntityToJSON(products),
	}, http.StatusOK)
}

func (h *ProductHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.WriteError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	top, err := h.svc.TopProducts(ctx, limit)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, TopProductsResponse{
		Message:     "Top products fetched successfully",
		TopProducts: top,
	}, http.StatusOK)
}
