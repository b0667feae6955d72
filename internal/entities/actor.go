package entities

import "time"

type ActorKind int

const (
	ActorCustomer ActorKind = iota + 1
	ActorEstablishment
)

func (k ActorKind) String() string {
	switch k {
	case ActorCustomer:
		return "customer"
	case ActorEstablishment:
		return "establishment"
	default:
		return "unknown"
	}
}

// Actor is the resolved identity behind an entity id. A given id names
// exactly one of the two kinds; operations branch on Kind instead of
// probing collections themselves.
type Actor struct {
	Kind ActorKind
	ID   string
}

type Customer struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      Address
	CreatedAt    time.Time
}

type Establishment struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	DeliveryTime string
	CreatedAt    time.Time
}

// Address is copied onto orders at creation time so later edits to the
// customer's stored address do not touch placed orders.
type Address struct {
	Street string
	Number string
	City   string
	State  string
	ZIP    string
}
