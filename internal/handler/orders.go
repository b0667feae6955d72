package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/internal/middleware"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/Dienay/rangos-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actorID string, input service.CreateOrderInput) (entities.Order, error)
	GetOrder(ctx context.Context, actorID, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context, actorID string) ([]entities.Order, error)
	DeleteOrder(ctx context.Context, actorID, orderID string) error
	Transition(ctx context.Context, actorID, orderID string, next entities.OrderStatus) (entities.Order, error)
	AddLineItem(ctx context.Context, actorID, orderID, productID string, quantity int) (entities.Order, error)
	RemoveLineItem(ctx context.Context, actorID, orderID, productID string) (entities.Order, error)
}

type OrderHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	auth     func(http.Handler) http.Handler
	svc      OrderService
}

func NewOrderHandler(logger *slog.Logger, auth func(http.Handler) http.Handler, svc OrderService) *OrderHandler {
	return &OrderHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		validate: validator.New(),
		auth:     auth,
		svc:      svc,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.Route("/entities/{entity_id}/orders", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{order_id}", h.GetOrder)
		r.Delete("/{order_id}", h.DeleteOrder)
		r.Patch("/{order_id}/status", h.UpdateStatus)
		r.Post("/{order_id}/items", h.AddItem)
		r.Delete("/{order_id}/items/{product_id}", h.RemoveItem)
	})
}

// entityID returns the path entity id after checking it matches the
// authenticated token subject.
func (h *OrderHandler) entityID(w http.ResponseWriter, r *http.Request) (string, bool) {
	entityID := chi.URLParam(r, "entity_id")
	subject, ok := middleware.Subject(r.Context())
	if !ok || subject != entityID {
		utils.WriteError(w, "token does not match entity", http.StatusForbidden)
		return "", false
	}
	return entityID, true
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	input := service.CreateOrderInput{
		EstablishmentID: req.EstablishmentID,
		PaymentMethod:   req.PaymentMethod,
		Shipping:        req.Shipping,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.NewOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.svc.CreateOrder(ctx, entityID, input)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrderResponse{
		Message: "Order created successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusCreated)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(ctx, entityID)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrdersResponse{
		Message: "Orders fetched successfully",
		Orders:  OrdersEntityToJSON(orders),
	}, http.StatusOK)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(ctx, entityID, chi.URLParam(r, "order_id"))
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrderResponse{
		Message: "Order fetched successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusOK)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(ctx, entityID, chi.URLParam(r, "order_id")); err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: "Order deleted successfully"}, http.StatusOK)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.Transition(ctx, entityID, chi.URLParam(r, "order_id"), entities.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrderResponse{
		Message: "Order updated successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusOK)
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.AddLineItem(ctx, entityID, chi.URLParam(r, "order_id"), req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrderResponse{
		Message: "Product added successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusOK)
}

func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.RemoveLineItem(ctx, entityID, chi.URLParam(r, "order_id"), chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, OrderResponse{
		Message: "Product removed successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusOK)
}
