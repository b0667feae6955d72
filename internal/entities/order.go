package entities

import "time"

// LineItem is one product entry inside an order. Name and UnitPrice are
// snapshots taken when the item was added; live product edits never leak
// into placed orders.
type LineItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice int64 // cents
}

func (i LineItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

type Payment struct {
	Method      string
	Status      string
	Transaction string
}

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

type Order struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	EstablishmentID string
	Status          OrderStatus
	Items           []LineItem
	Shipping        int64 // cents
	Subtotal        int64 // cents
	TotalPrice      int64 // cents
	DeliveryAddress Address
	Payment         Payment
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Recalculate restores the totals invariants:
// Subtotal == Σ quantity×unitPrice and TotalPrice == Subtotal + Shipping.
func (o *Order) Recalculate() {
	var sum int64
	for _, it := range o.Items {
		sum += it.Subtotal()
	}
	o.Subtotal = sum
	o.TotalPrice = sum + o.Shipping
}

// AddItem appends a line item and recomputes totals. Callers are
// responsible for checking that the order is still editable.
func (o *Order) AddItem(item LineItem) {
	o.Items = append(o.Items, item)
	o.Recalculate()
}

// RemoveItem removes the first line item matching productID and recomputes
// totals. Returns ErrLineItemNotFound if no item matches.
func (o *Order) RemoveItem(productID string) error {
	for i, it := range o.Items {
		if it.ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.Recalculate()
			return nil
		}
	}
	return ErrLineItemNotFound
}
