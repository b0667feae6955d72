package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/internal/handler"
	"github.com/Dienay/rangos-api/internal/middleware"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProduct(ctx context.Context, actorID string, input service.CreateProductInput) (entities.Product, error) {
	args := m.Called(ctx, actorID, input)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductService) TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]entities.TopProduct), args.Error(1)
}

func newProductRouter(svc *mockProductService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewProductHandler(logger, middleware.Auth(stubVerifier{}), svc)

	r := chi.NewRouter()
	h.Init(r)
	return r
}

func TestProductHandler_TopProducts(t *testing.T) {
	ranked := []entities.TopProduct{
		{ProductID: "p1", Name: "Burger", TotalSales: 42},
	}

	testCases := []struct {
		name         string
		path         string
		mockBehavior func(svc *mockProductService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "default limit",
			path: "/products/top",
			mockBehavior: func(svc *mockProductService) {
				svc.On("TopProducts", mock.Anything, 0).Return(ranked, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total_sales":42`,
		},
		{
			name: "explicit limit",
			path: "/products/top?limit=5",
			mockBehavior: func(svc *mockProductService) {
				svc.On("TopProducts", mock.Anything, 5).Return(ranked, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "limit must be positive",
			path:         "/products/top?limit=-1",
			mockBehavior: func(svc *mockProductService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     "limit must be a positive integer",
		},
		{
			name:         "limit must be a number",
			path:         "/products/top?limit=ten",
			mockBehavior: func(svc *mockProductService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name: "empty ranking",
			path: "/products/top",
			mockBehavior: func(svc *mockProductService) {
				svc.On("TopProducts", mock.Anything, 0).Return([]entities.TopProduct{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"top_products":[]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockProductService)
			tc.mockBehavior(svc)

			r := newProductRouter(svc)
			res, body := doRequest(t, r, http.MethodGet, tc.path, "", "")

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			if tc.wantBody != "" {
				assert.Contains(t, body, tc.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_CreateProduct(t *testing.T) {
	created := entities.Product{ID: "p1", EstablishmentID: "est-1", Name: "Burger", Price: 1200}

	testCases := []struct {
		name         string
		bearer       string
		body         string
		mockBehavior func(svc *mockProductService)
		wantStatus   int
	}{
		{
			name:   "success",
			bearer: "est-1",
			body:   `{"name":"Burger","price":1200}`,
			mockBehavior: func(svc *mockProductService) {
				svc.On("CreateProduct", mock.Anything, "est-1", mock.Anything).Return(created, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "unauthenticated",
			bearer:       "",
			body:         `{"name":"Burger","price":1200}`,
			mockBehavior: func(svc *mockProductService) {},
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "price is required",
			bearer:       "est-1",
			body:         `{"name":"Burger"}`,
			mockBehavior: func(svc *mockProductService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:   "customers cannot create products",
			bearer: "cust-1",
			body:   `{"name":"Burger","price":1200}`,
			mockBehavior: func(svc *mockProductService) {
				svc.On("CreateProduct", mock.Anything, "cust-1", mock.Anything).
					Return(entities.Product{}, entities.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockProductService)
			tc.mockBehavior(svc)

			r := newProductRouter(svc)
			res, _ := doRequest(t, r, http.MethodPost, "/products", tc.bearer, tc.body)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_ListProducts(t *testing.T) {
	svc := new(mockProductService)
	svc.On("ListProducts", mock.Anything).Return([]entities.Product{
		{ID: "p1", Name: "Burger"},
		{ID: "p2", Name: "Fries"},
	}, nil)

	r := newProductRouter(svc)
	res, body := doRequest(t, r, http.MethodGet, "/products", "", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"product_id":"p1"`)
	assert.Contains(t, body, `"product_id":"p2"`)
}
