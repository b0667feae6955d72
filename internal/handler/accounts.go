package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/Dienay/rangos-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AccountService interface {
	RegisterCustomer(ctx context.Context, input service.RegisterCustomerInput) (entities.Customer, error)
	RegisterEstablishment(ctx context.Context, input service.RegisterEstablishmentInput) (entities.Establishment, error)
	LoginCustomer(ctx context.Context, email, password string) (string, error)
	LoginEstablishment(ctx context.Context, email, password string) (string, error)
}

type AccountHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      AccountService
}

func NewAccountHandler(logger *slog.Logger, svc AccountService) *AccountHandler {
	return &AccountHandler{
		logger:   logger.With(slog.String("handler", "accounts")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *AccountHandler) Init(r chi.Router) {
	r.Post("/signup", h.SignupCustomer)
	r.Post("/login", h.LoginCustomer)
	r.Post("/establishments/signup", h.SignupEstablishment)
	r.Post("/establishments/login", h.LoginEstablishment)
}

func (h *AccountHandler) SignupCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupCustomerRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	customer, err := h.svc.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  AddressJSONToEntity(req.Address),
	})
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, EntityResponse{
		Message: "Customer registered successfully",
		ID:      customer.ID,
	}, http.StatusCreated)
}

func (h *AccountHandler) LoginCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	token, err := h.svc.LoginCustomer(ctx, req.Email, req.Password)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, TokenResponse{Message: "Login successful", Token: token}, http.StatusOK)
}

func (h *AccountHandler) SignupEstablishment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupEstablishmentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	establishment, err := h.svc.RegisterEstablishment(ctx, service.RegisterEstablishmentInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		DeliveryTime: req.DeliveryTime,
	})
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, EntityResponse{
		Message: "Establishment registered successfully",
		ID:      establishment.ID,
	}, http.StatusCreated)
}

func (h *AccountHandler) LoginEstablishment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	token, err := h.svc.LoginEstablishment(ctx, req.Email, req.Password)
	if err != nil {
		writeDomainError(ctx, h.logger, w, err)
		return
	}

	utils.WriteJSON(w, TokenResponse{Message: "Login successful", Token: token}, http.StatusOK)
}
