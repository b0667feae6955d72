package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/Dienay/rangos-api/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) CreateCustomer(ctx context.Context, c entities.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockAccountRepo) GetCustomerByEmail(ctx context.Context, email string) (entities.Customer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.Customer), args.Error(1)
}

func (m *mockAccountRepo) CreateEstablishment(ctx context.Context, e entities.Establishment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockAccountRepo) GetEstablishmentByEmail(ctx context.Context, email string) (entities.Establishment, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.Establishment), args.Error(1)
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(entityID string) (string, error) {
	return "token-for-" + entityID, nil
}

type accountService interface {
	RegisterCustomer(ctx context.Context, input service.RegisterCustomerInput) (entities.Customer, error)
	RegisterEstablishment(ctx context.Context, input service.RegisterEstablishmentInput) (entities.Establishment, error)
	LoginCustomer(ctx context.Context, email, password string) (string, error)
	LoginEstablishment(ctx context.Context, email, password string) (string, error)
}

func newAccountService(repo *mockAccountRepo) accountService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAccountService(logger, repo, stubTokenIssuer{})
}

func TestAccountService_RegisterCustomer(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("CreateCustomer", mock.Anything, mock.Anything).Return(nil)

		svc := newAccountService(repo)
		customer, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerInput{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, customer.ID)
		assert.NotEqual(t, "secret123", customer.PasswordHash)
		assert.NoError(t, auth.CheckPassword("secret123", customer.PasswordHash))
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("CreateCustomer", mock.Anything, mock.Anything).Return(entities.ErrEmailTaken)

		svc := newAccountService(repo)
		_, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerInput{
			Email:    "ana@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})
}

func TestAccountService_LoginCustomer(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	stored := entities.Customer{ID: "cust-1", Email: "ana@example.com", PasswordHash: hash}

	testCases := []struct {
		name      string
		email     string
		password  string
		repoErr   error
		wantToken string
		wantErr   error
	}{
		{
			name:      "OK",
			email:     "ana@example.com",
			password:  "secret123",
			wantToken: "token-for-cust-1",
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "nope",
			wantErr:  entities.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "secret123",
			repoErr:  entities.ErrEntityNotFound,
			wantErr:  entities.ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockAccountRepo)
			if tc.repoErr != nil {
				repo.On("GetCustomerByEmail", mock.Anything, tc.email).
					Return(entities.Customer{}, tc.repoErr)
			} else {
				repo.On("GetCustomerByEmail", mock.Anything, tc.email).Return(stored, nil)
			}

			svc := newAccountService(repo)
			token, err := svc.LoginCustomer(context.Background(), tc.email, tc.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}

func TestAccountService_LoginEstablishment(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	repo := new(mockAccountRepo)
	repo.On("GetEstablishmentByEmail", mock.Anything, "cantina@example.com").
		Return(entities.Establishment{ID: "est-1", PasswordHash: hash}, nil)

	svc := newAccountService(repo)

	token, err := svc.LoginEstablishment(context.Background(), "cantina@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-est-1", token)

	_, err = svc.LoginEstablishment(context.Background(), "cantina@example.com", "wrong")
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}
