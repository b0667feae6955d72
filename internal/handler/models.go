package handler

import (
	"time"

	"github.com/Dienay/rangos-api/internal/entities"
)

type Address struct {
	Street string `json:"street,omitempty"`
	Number string `json:"number,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	ZIP    string `json:"zip,omitempty"`
}

type Payment struct {
	Method      string `json:"method"`
	Status      string `json:"status"`
	Transaction string `json:"transaction,omitempty"`
}

type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

type Order struct {
	ID              string     `json:"order_id"`
	OrderNumber     string     `json:"order_number"`
	CustomerID      string     `json:"customer_id"`
	EstablishmentID string     `json:"establishment_id"`
	Status          string     `json:"status"`
	Items           []LineItem `json:"items"`
	Shipping        int64      `json:"shipping"`
	Subtotal        int64      `json:"subtotal"`
	TotalPrice      int64      `json:"total_price"`
	DeliveryAddress Address    `json:"delivery_address"`
	Payment         Payment    `json:"payment"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Product struct {
	ID              string    `json:"product_id"`
	EstablishmentID string    `json:"establishment_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	CoverPhoto      string    `json:"cover_photo,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type NewItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	EstablishmentID string           `json:"establishment_id" validate:"required"`
	Items           []NewItemRequest `json:"items" validate:"dive"`
	PaymentMethod   string           `json:"payment_method" validate:"required"`
	Shipping        *int64           `json:"shipping,omitempty" validate:"omitempty,gte=0"`
	Notes           string           `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Ordered Paid Preparing Sent Delivered Canceled"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	CoverPhoto  string `json:"cover_photo,omitempty"`
}

type SignupCustomerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Address  Address `json:"address"`
}

type SignupEstablishmentRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	DeliveryTime string `json:"delivery_time,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OrderResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type OrdersResponse struct {
	Message string  `json:"message"`
	Orders  []Order `json:"orders"`
}

type ProductResponse struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type ProductsResponse struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

type TopProductsResponse struct {
	Message     string                `json:"message"`
	TopProducts []entities.TopProduct `json:"top_products"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type EntityResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		Street: a.Street,
		Number: a.Number,
		City:   a.City,
		State:  a.State,
		ZIP:    a.ZIP,
	}
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		Street: a.Street,
		Number: a.Number,
		City:   a.City,
		State:  a.State,
		ZIP:    a.ZIP,
	}
}

func LineItemEntityToJSON(i entities.LineItem) LineItem {
	return LineItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		Subtotal:  i.Subtotal(),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItemEntityToJSON(it))
	}

	return Order{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		EstablishmentID: o.EstablishmentID,
		Status:          string(o.Status),
		Items:           items,
		Shipping:        o.Shipping,
		Subtotal:        o.Subtotal,
		TotalPrice:      o.TotalPrice,
		DeliveryAddress: AddressEntityToJSON(o.DeliveryAddress),
		Payment: Payment{
			Method:      o.Payment.Method,
			Status:      o.Payment.Status,
			Transaction: o.Payment.Transaction,
		},
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:              p.ID,
		EstablishmentID: p.EstablishmentID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		CoverPhoto:      p.CoverPhoto,
		CreatedAt:       p.CreatedAt,
	}
}

func ProductsEntityToJSON(products []entities.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		result = append(result, ProductEntityToJSON(p))
	}
	return result
}
