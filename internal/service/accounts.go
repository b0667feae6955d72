package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/pkg/auth"

	"github.com/google/uuid"
)

type AccountRepo interface {
	CreateCustomer(ctx context.Context, c entities.Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (entities.Customer, error)
	CreateEstablishment(ctx context.Context, e entities.Establishment) error
	GetEstablishmentByEmail(ctx context.Context, email string) (entities.Establishment, error)
}

type TokenIssuer interface {
	Issue(entityID string) (string, error)
}

type accountService struct {
	logger *slog.Logger
	repo   AccountRepo
	tokens TokenIssuer
}

func NewAccountService(logger *slog.Logger, repo AccountRepo, tokens TokenIssuer) *accountService {
	return &accountService{
		logger: logger.With(slog.String("service", "account")),
		repo:   repo,
		tokens: tokens,
	}
}

type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
	Address  entities.Address
}

func (s *accountService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (entities.Customer, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return entities.Customer{}, err
	}

	customer := entities.Customer{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return entities.Customer{}, err
	}

	s.logger.InfoContext(ctx, "customer registered", slog.String("customer_id", customer.ID))
	return customer, nil
}

type RegisterEstablishmentInput struct {
	Name         string
	Email        string
	Password     string
	DeliveryTime string
}

func (s *accountService) RegisterEstablishment(ctx context.Context, input RegisterEstablishmentInput) (entities.Establishment, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return entities.Establishment{}, err
	}

	establishment := entities.Establishment{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		DeliveryTime: input.DeliveryTime,
	}

	if err := s.repo.CreateEstablishment(ctx, establishment); err != nil {
		return entities.Establishment{}, err
	}

	s.logger.InfoContext(ctx, "establishment registered", slog.String("establishment_id", establishment.ID))
	return establishment, nil
}

// LoginCustomer exchanges valid credentials for a signed token whose
// subject is the customer id.
func (s *accountService) LoginCustomer(ctx context.Context, email, password string) (string, error) {
	customer, err := s.repo.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrEntityNotFound) {
			return "", entities.ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.CheckPassword(password, customer.PasswordHash); err != nil {
		return "", entities.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(customer.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func (s *accountService) LoginEstablishment(ctx context.Context, email, password string) (string, error) {
	establishment, err := s.repo.GetEstablishmentByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrEntityNotFound) {
			return "", entities.ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.CheckPassword(password, establishment.PasswordHash); err != nil {
		return "", entities.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(establishment.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
