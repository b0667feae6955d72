package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dienay/rangos-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var orderColumns = []string{
	"order_id", "order_number", "customer_id", "establishment_id", "status",
	"shipping", "subtotal", "total_price",
	"addr_street", "addr_number", "addr_city", "addr_state", "addr_zip",
	"payment_method", "payment_status", "payment_transaction", "notes",
	"created_at", "updated_at",
}

type orderRepo struct {
	runner
	qb sq.StatementBuilderType
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{
		runner: runner{db: db},
		qb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *orderRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(
			"order_id", "order_number", "customer_id", "establishment_id", "status",
			"shipping", "subtotal", "total_price",
			"addr_street", "addr_number", "addr_city", "addr_state", "addr_zip",
			"payment_method", "payment_status", "payment_transaction", "notes",
		).
		Values(
			o.ID, o.OrderNumber, o.CustomerID, o.EstablishmentID, string(o.Status),
			o.Shipping, o.Subtotal, o.TotalPrice,
			nullString(o.DeliveryAddress.Street), nullString(o.DeliveryAddress.Number),
			nullString(o.DeliveryAddress.City), nullString(o.DeliveryAddress.State),
			nullString(o.DeliveryAddress.ZIP),
			o.Payment.Method, o.Payment.Status, nullString(o.Payment.Transaction),
			nullString(o.Notes),
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *orderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	itemsMap, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, itemsMap[orderID]), nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	return r.list(ctx, sq.Eq{"customer_id": customerID})
}

// ListByEstablishment returns the establishment's orders, hiding anything
// still in the cart-equivalent state.
func (r *orderRepo) ListByEstablishment(ctx context.Context, establishmentID string) ([]entities.Order, error) {
	return r.list(ctx, sq.And{
		sq.Eq{"establishment_id": establishmentID},
		sq.NotEq{"status": string(entities.StatusOrdered)},
	})
}

func (r *orderRepo) list(ctx context.Context, where sq.Sqlizer) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(where).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}

	itemsMap, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.OrderID]))
	}
	return result, nil
}

// UpdateStatus performs the conditional transition write: the status moves
// to next only if the row still holds cur. Returns false when no row
// matched, meaning a concurrent writer got there first. Moving to Paid also
// flips the payment label in the same statement.
func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, cur, next entities.OrderStatus) (bool, error) {
	update := r.qb.Update("orders").
		Set("status", string(next)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"order_id": orderID, "status": string(cur)})

	if next == entities.StatusPaid {
		update = update.Set("payment_status", entities.PaymentPaid)
	}

	query, args := update.MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

// ReplaceItems rewrites the order's line items and totals. The totals
// update is guarded on the editable status so a cart locked by a concurrent
// transition is left untouched; callers should run this inside a
// transaction. Returns false when the order was not editable anymore.
func (r *orderRepo) ReplaceItems(ctx context.Context, o entities.Order) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("subtotal", o.Subtotal).
		Set("total_price", o.TotalPrice).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"order_id": o.ID, "status": string(entities.StatusOrdered)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order totals: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	query, args = r.qb.Delete("order_items").
		Where(sq.Eq{"order_id": o.ID}).
		MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("failed to delete order items: %w", err)
	}

	if err := r.insertItems(ctx, o.ID, o.Items); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteCartOrder removes the order only while it is still in the
// cart-equivalent state. Returns false if the status had already advanced.
func (r *orderRepo) DeleteCartOrder(ctx context.Context, orderID string) (bool, error) {
	query, args := r.qb.Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("failed to delete order items: %w", err)
	}

	query, args = r.qb.Delete("orders").
		Where(sq.Eq{"order_id": orderID, "status": string(entities.StatusOrdered)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

// TopProducts aggregates quantity sold per product across all orders and
// joins product display fields, ranked descending.
func (r *orderRepo) TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error) {
	query, args := r.qb.Select(
		"oi.product_id",
		"p.name",
		"p.price",
		"p.cover_photo",
		"SUM(oi.quantity) AS total_sales",
	).
		From("order_items oi").
		Join("products p ON p.product_id = oi.product_id").
		GroupBy("oi.product_id", "p.name", "p.price", "p.cover_photo").
		OrderBy("total_sales DESC").
		Limit(uint64(limit)).
		MustSql()

	var rows []struct {
		ProductID  string         `db:"product_id"`
		Name       string         `db:"name"`
		Price      int64          `db:"price"`
		CoverPhoto sql.NullString `db:"cover_photo"`
		TotalSales int64          `db:"total_sales"`
	}
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select top products: %w", err)
	}

	result := make([]entities.TopProduct, 0, len(rows))
	for _, row := range rows {
		result = append(result, entities.TopProduct{
			ProductID:  row.ProductID,
			Name:       row.Name,
			Price:      row.Price,
			CoverPhoto: nullStringToString(row.CoverPhoto),
			TotalSales: row.TotalSales,
		})
	}
	return result, nil
}

func (r *orderRepo) insertItems(ctx context.Context, orderID string, items []entities.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "name", "quantity", "unit_price", "position")

	for i, it := range items {
		q = q.Values(orderID, it.ProductID, it.Name, it.Quantity, it.UnitPrice, i)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	return nil
}

func (r *orderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	query, args := r.qb.Select("order_id", "product_id", "name", "quantity", "unit_price", "position").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "position").
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	itemsMap := make(map[string][]OrderItem, len(orderIDs))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}
	return itemsMap, nil
}
