package entities

import "fmt"

// OrderStatus is the closed set of order lifecycle states.
//
//	Ordered ──> Paid ──> Preparing ──> Sent ──> Delivered
//	   │          │          │
//	   └──────────┴──────────┴──> Canceled
//
// Ordered is the cart-equivalent state: line items stay editable until the
// order leaves it. Delivered and Canceled are terminal.
type OrderStatus string

const (
	StatusOrdered   OrderStatus = "Ordered"
	StatusPaid      OrderStatus = "Paid"
	StatusPreparing OrderStatus = "Preparing"
	StatusSent      OrderStatus = "Sent"
	StatusDelivered OrderStatus = "Delivered"
	StatusCanceled  OrderStatus = "Canceled"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusOrdered:   {StatusPaid, StatusCanceled},
	StatusPaid:      {StatusPreparing, StatusCanceled},
	StatusPreparing: {StatusSent, StatusCanceled},
	StatusSent:      {StatusDelivered},
	StatusDelivered: {},
	StatusCanceled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is in the allowed-next set for s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Editable reports whether line items may still be mutated.
func (s OrderStatus) Editable() bool {
	return s == StatusOrdered
}

// InvalidTransitionError names both ends of a rejected status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
