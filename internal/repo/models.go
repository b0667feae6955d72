package repo

import (
	"database/sql"
	"time"

	"github.com/Dienay/rangos-api/internal/entities"
)

type Order struct {
	OrderID         string         `db:"order_id"`
	OrderNumber     string         `db:"order_number"`
	CustomerID      string         `db:"customer_id"`
	EstablishmentID string         `db:"establishment_id"`
	Status          string         `db:"status"`
	Shipping        int64          `db:"shipping"`
	Subtotal        int64          `db:"subtotal"`
	TotalPrice      int64          `db:"total_price"`
	AddrStreet      sql.NullString `db:"addr_street"`
	AddrNumber      sql.NullString `db:"addr_number"`
	AddrCity        sql.NullString `db:"addr_city"`
	AddrState       sql.NullString `db:"addr_state"`
	AddrZip         sql.NullString `db:"addr_zip"`
	PaymentMethod   string         `db:"payment_method"`
	PaymentStatus   string         `db:"payment_status"`
	PaymentTx       sql.NullString `db:"payment_transaction"`
	Notes           sql.NullString `db:"notes"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type OrderItem struct {
	OrderID   string `db:"order_id"`
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Quantity  int    `db:"quantity"`
	UnitPrice int64  `db:"unit_price"`
	Position  int    `db:"position"`
}

type Customer struct {
	CustomerID   string         `db:"customer_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	AddrStreet   sql.NullString `db:"addr_street"`
	AddrNumber   sql.NullString `db:"addr_number"`
	AddrCity     sql.NullString `db:"addr_city"`
	AddrState    sql.NullString `db:"addr_state"`
	AddrZip      sql.NullString `db:"addr_zip"`
	CreatedAt    time.Time      `db:"created_at"`
}

type Establishment struct {
	EstablishmentID string         `db:"establishment_id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	PasswordHash    string         `db:"password_hash"`
	DeliveryTime    sql.NullString `db:"delivery_time"`
	CreatedAt       time.Time      `db:"created_at"`
}

type Product struct {
	ProductID       string         `db:"product_id"`
	EstablishmentID string         `db:"establishment_id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	Price           int64          `db:"price"`
	CoverPhoto      sql.NullString `db:"cover_photo"`
	CreatedAt       time.Time      `db:"created_at"`
}

func ItemToEntity(i OrderItem) entities.LineItem {
	return entities.LineItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:              o.OrderID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		EstablishmentID: o.EstablishmentID,
		Status:          entities.OrderStatus(o.Status),
		Shipping:        o.Shipping,
		Subtotal:        o.Subtotal,
		TotalPrice:      o.TotalPrice,
		DeliveryAddress: entities.Address{
			Street: nullStringToString(o.AddrStreet),
			Number: nullStringToString(o.AddrNumber),
			City:   nullStringToString(o.AddrCity),
			State:  nullStringToString(o.AddrState),
			ZIP:    nullStringToString(o.AddrZip),
		},
		Payment: entities.Payment{
			Method:      o.PaymentMethod,
			Status:      o.PaymentStatus,
			Transaction: nullStringToString(o.PaymentTx),
		},
		Notes:     nullStringToString(o.Notes),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	if len(items) > 0 {
		order.Items = make([]entities.LineItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}

func CustomerToEntity(c Customer) entities.Customer {
	return entities.Customer{
		ID:           c.CustomerID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Address: entities.Address{
			Street: nullStringToString(c.AddrStreet),
			Number: nullStringToString(c.AddrNumber),
			City:   nullStringToString(c.AddrCity),
			State:  nullStringToString(c.AddrState),
			ZIP:    nullStringToString(c.AddrZip),
		},
		CreatedAt: c.CreatedAt,
	}
}

func EstablishmentToEntity(e Establishment) entities.Establishment {
	return entities.Establishment{
		ID:           e.EstablishmentID,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		DeliveryTime: nullStringToString(e.DeliveryTime),
		CreatedAt:    e.CreatedAt,
	}
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:              p.ProductID,
		EstablishmentID: p.EstablishmentID,
		Name:            p.Name,
		Description:     nullStringToString(p.Description),
		Price:           p.Price,
		CoverPhoto:      nullStringToString(p.CoverPhoto),
		CreatedAt:       p.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
