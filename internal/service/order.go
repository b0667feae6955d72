package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/pkg/trm"

	"github.com/google/uuid"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	ListByEstablishment(ctx context.Context, establishmentID string) ([]entities.Order, error)

	// UpdateStatus is a conditional write: it applies next only while the
	// row still holds cur, and reports whether a row matched.
	UpdateStatus(ctx context.Context, orderID string, cur, next entities.OrderStatus) (bool, error)
	// ReplaceItems rewrites line items and totals while the order is still
	// editable, reporting whether it was.
	ReplaceItems(ctx context.Context, o entities.Order) (bool, error)
	DeleteCartOrder(ctx context.Context, orderID string) (bool, error)
}

type ProductGetter interface {
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
}

type CustomerGetter interface {
	GetCustomerByID(ctx context.Context, id string) (entities.Customer, error)
}

// defaultShipping is the flat delivery fee, in cents, applied when the
// request does not set one.
const defaultShipping int64 = 500

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	resolver  Resolver
	customers CustomerGetter
	products  ProductGetter
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	resolver Resolver,
	customers CustomerGetter,
	products ProductGetter,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		resolver:  resolver,
		customers: customers,
		products:  products,
	}
}

type NewOrderItem struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	EstablishmentID string
	Items           []NewOrderItem
	PaymentMethod   string
	Shipping        *int64 // cents, nil applies the default fee
	Notes           string
}

// CreateOrder opens a new order for a resolved customer. The order starts
// in the editable Ordered state, with the customer's stored address and the
// product prices copied onto it.
func (s *orderService) CreateOrder(ctx context.Context, actorID string, input CreateOrderInput) (entities.Order, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Kind != entities.ActorCustomer {
		return entities.Order{}, fmt.Errorf("%w: only customers can create orders", entities.ErrForbidden)
	}

	customer, err := s.customers.GetCustomerByID(ctx, actor.ID)
	if err != nil {
		return entities.Order{}, err
	}

	establishment, err := s.resolver.Resolve(ctx, input.EstablishmentID)
	if err != nil {
		return entities.Order{}, err
	}
	if establishment.Kind != entities.ActorEstablishment {
		return entities.Order{}, fmt.Errorf("%w: order target is not an establishment", entities.ErrEntityNotFound)
	}

	shipping := defaultShipping
	if input.Shipping != nil {
		shipping = *input.Shipping
	}

	order := entities.Order{
		ID:              uuid.NewString(),
		OrderNumber:     newOrderNumber(),
		CustomerID:      customer.ID,
		EstablishmentID: input.EstablishmentID,
		Status:          entities.StatusOrdered,
		Shipping:        shipping,
		DeliveryAddress: customer.Address,
		Payment: entities.Payment{
			Method:      input.PaymentMethod,
			Status:      entities.PaymentPending,
			Transaction: uuid.NewString(),
		},
		Notes: input.Notes,
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return entities.Order{}, entities.ErrInvalidQuantity
		}
		lineItem, err := s.snapshotItem(ctx, order.EstablishmentID, item.ProductID, item.Quantity)
		if err != nil {
			return entities.Order{}, err
		}
		order.Items = append(order.Items, lineItem)
	}
	order.Recalculate()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.CreateOrder(ctx, order)
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("customer_id", order.CustomerID),
		slog.String("establishment_id", order.EstablishmentID),
	)
	return order, nil
}

// GetOrder loads one order for the requesting actor. Customers see only
// their own orders; establishments see only theirs and never while the
// order sits in the cart-equivalent state.
func (s *orderService) GetOrder(ctx context.Context, actorID, orderID string) (entities.Order, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if err := relateActor(actor, order); err != nil {
		return entities.Order{}, err
	}
	if actor.Kind == entities.ActorEstablishment && order.Status.Editable() {
		return entities.Order{}, fmt.Errorf("%w: order is still in the customer's cart", entities.ErrForbidden)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actorID string) ([]entities.Order, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	switch actor.Kind {
	case entities.ActorCustomer:
		return s.repo.ListByCustomer(ctx, actor.ID)
	case entities.ActorEstablishment:
		return s.repo.ListByEstablishment(ctx, actor.ID)
	default:
		return nil, entities.ErrEntityNotFound
	}
}

// DeleteOrder hard-deletes an order, allowed only to the owning customer
// and only while the order is still editable.
func (s *orderService) DeleteOrder(ctx context.Context, actorID, orderID string) error {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Kind != entities.ActorCustomer {
		return fmt.Errorf("%w: only customers can delete orders", entities.ErrForbidden)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerID != actor.ID {
		return entities.ErrForbidden
	}
	if !order.Status.Editable() {
		return entities.ErrOrderNotEditable
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		deleted, err := s.repo.DeleteCartOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !deleted {
			return entities.ErrOrderNotEditable
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "order deleted", slog.String("order_id", orderID))
	return nil
}

// Transition moves the order along the lifecycle graph. The transition
// table is checked first, then the actor-kind gate, and the write itself is
// conditional on the status still being the one that was read.
func (s *orderService) Transition(ctx context.Context, actorID, orderID string, next entities.OrderStatus) (entities.Order, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		transitionsRejected.WithLabelValues("invalid_transition").Inc()
		return entities.Order{}, entities.InvalidTransitionError{From: order.Status, To: next}
	}

	if err := authorizeTransition(actor, order, next); err != nil {
		transitionsRejected.WithLabelValues("forbidden").Inc()
		return entities.Order{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, order.ID, order.Status, next)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to apply transition: %w", err)
	}
	if !updated {
		transitionsRejected.WithLabelValues("conflict").Inc()
		return entities.Order{}, entities.ErrStatusConflict
	}

	transitionsApplied.WithLabelValues(string(order.Status), string(next)).Inc()
	s.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", order.ID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(next)),
		slog.String("actor_kind", actor.Kind.String()),
	)

	order.Status = next
	if next == entities.StatusPaid {
		order.Payment.Status = entities.PaymentPaid
	}
	return order, nil
}

// AddLineItem appends a product to an editable order, snapshotting the
// current price, and recomputes the totals.
func (s *orderService) AddLineItem(ctx context.Context, actorID, orderID, productID string, quantity int) (entities.Order, error) {
	if quantity <= 0 {
		return entities.Order{}, entities.ErrInvalidQuantity
	}

	order, err := s.editableOrder(ctx, actorID, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	lineItem, err := s.snapshotItem(ctx, order.EstablishmentID, productID, quantity)
	if err != nil {
		return entities.Order{}, err
	}
	order.AddItem(lineItem)

	if err := s.persistItems(ctx, order); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// RemoveLineItem drops the first line item matching productID and
// recomputes the totals.
func (s *orderService) RemoveLineItem(ctx context.Context, actorID, orderID, productID string) (entities.Order, error) {
	order, err := s.editableOrder(ctx, actorID, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if err := order.RemoveItem(productID); err != nil {
		return entities.Order{}, err
	}

	if err := s.persistItems(ctx, order); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// editableOrder loads the order and checks the cart mutation preconditions:
// the actor is the owning customer and the status has not advanced.
func (s *orderService) editableOrder(ctx context.Context, actorID, orderID string) (entities.Order, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Kind != entities.ActorCustomer {
		return entities.Order{}, fmt.Errorf("%w: only customers can edit the cart", entities.ErrForbidden)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.CustomerID != actor.ID {
		return entities.Order{}, entities.ErrForbidden
	}
	if !order.Status.Editable() {
		return entities.Order{}, entities.ErrOrderNotEditable
	}
	return order, nil
}

func (s *orderService) persistItems(ctx context.Context, order entities.Order) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		editable, err := s.repo.ReplaceItems(ctx, order)
		if err != nil {
			return err
		}
		if !editable {
			return entities.ErrOrderNotEditable
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "order items updated",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Int64("total_price", order.TotalPrice),
	)
	return nil
}

func (s *orderService) snapshotItem(ctx context.Context, establishmentID, productID string, quantity int) (entities.LineItem, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return entities.LineItem{}, err
	}
	if product.EstablishmentID != establishmentID {
		return entities.LineItem{}, fmt.Errorf("%w: product belongs to another establishment", entities.ErrProductNotFound)
	}
	return entities.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}, nil
}

// relateActor checks that the actor is one of the two parties on the order.
func relateActor(actor entities.Actor, order entities.Order) error {
	switch actor.Kind {
	case entities.ActorCustomer:
		if order.CustomerID != actor.ID {
			return entities.ErrForbidden
		}
	case entities.ActorEstablishment:
		if order.EstablishmentID != actor.ID {
			return entities.ErrForbidden
		}
	default:
		return entities.ErrEntityNotFound
	}
	return nil
}

// authorizeTransition is the actor-kind gate layered on top of the
// transition table. Paying and confirming delivery belong to the customer,
// the operational steps to the establishment. Either side may cancel where
// the table allows it, except that an establishment can never touch an
// order still in the customer's cart.
func authorizeTransition(actor entities.Actor, order entities.Order, next entities.OrderStatus) error {
	if err := relateActor(actor, order); err != nil {
		return err
	}

	switch next {
	case entities.StatusPaid, entities.StatusDelivered:
		if actor.Kind != entities.ActorCustomer {
			return fmt.Errorf("%w: %s is a customer transition", entities.ErrForbidden, next)
		}
	case entities.StatusPreparing, entities.StatusSent:
		if actor.Kind != entities.ActorEstablishment {
			return fmt.Errorf("%w: %s is an establishment transition", entities.ErrForbidden, next)
		}
	case entities.StatusCanceled:
		if actor.Kind == entities.ActorEstablishment && order.Status.Editable() {
			return fmt.Errorf("%w: only the customer can cancel an order in the cart", entities.ErrForbidden)
		}
	default:
		return entities.InvalidTransitionError{From: order.Status, To: next}
	}
	return nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("R-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
