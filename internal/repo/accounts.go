package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dienay/rangos-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// accountRepo stores customers and establishments. Entity resolution probes
// both tables with the same id.
type accountRepo struct {
	runner
	qb sq.StatementBuilderType
}

func NewAccountRepo(db *sqlx.DB) *accountRepo {
	return &accountRepo{
		runner: runner{db: db},
		qb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *accountRepo) CreateCustomer(ctx context.Context, c entities.Customer) error {
	query, args := r.qb.Insert("customers").
		Columns("customer_id", "name", "email", "password_hash",
			"addr_street", "addr_number", "addr_city", "addr_state", "addr_zip").
		Values(c.ID, c.Name, c.Email, c.PasswordHash,
			nullString(c.Address.Street), nullString(c.Address.Number),
			nullString(c.Address.City), nullString(c.Address.State),
			nullString(c.Address.ZIP)).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *accountRepo) GetCustomerByID(ctx context.Context, id string) (entities.Customer, error) {
	query, args := r.qb.Select("customer_id", "name", "email", "password_hash",
		"addr_street", "addr_number", "addr_city", "addr_state", "addr_zip", "created_at").
		From("customers").
		Where(sq.Eq{"customer_id": id}).
		MustSql()

	var c Customer
	err := r.getContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Customer{}, entities.ErrEntityNotFound
	}
	if err != nil {
		return entities.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return CustomerToEntity(c), nil
}

func (r *accountRepo) GetCustomerByEmail(ctx context.Context, email string) (entities.Customer, error) {
	query, args := r.qb.Select("customer_id", "name", "email", "password_hash",
		"addr_street", "addr_number", "addr_city", "addr_state", "addr_zip", "created_at").
		From("customers").
		Where(sq.Eq{"email": email}).
		MustSql()

	var c Customer
	err := r.getContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Customer{}, entities.ErrEntityNotFound
	}
	if err != nil {
		return entities.Customer{}, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return CustomerToEntity(c), nil
}

func (r *accountRepo) CreateEstablishment(ctx context.Context, e entities.Establishment) error {
	query, args := r.qb.Insert("establishments").
		Columns("establishment_id", "name", "email", "password_hash", "delivery_time").
		Values(e.ID, e.Name, e.Email, e.PasswordHash, nullString(e.DeliveryTime)).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert establishment: %w", err)
	}
	return nil
}

func (r *accountRepo) GetEstablishmentByID(ctx context.Context, id string) (entities.Establishment, error) {
	query, args := r.qb.Select("establishment_id", "name", "email", "password_hash", "delivery_time", "created_at").
		From("establishments").
		Where(sq.Eq{"establishment_id": id}).
		MustSql()

	var e Establishment
	err := r.getContext(ctx, &e, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Establishment{}, entities.ErrEntityNotFound
	}
	if err != nil {
		return entities.Establishment{}, fmt.Errorf("failed to get establishment: %w", err)
	}
	return EstablishmentToEntity(e), nil
}

func (r *accountRepo) GetEstablishmentByEmail(ctx context.Context, email string) (entities.Establishment, error) {
	query, args := r.qb.Select("establishment_id", "name", "email", "password_hash", "delivery_time", "created_at").
		From("establishments").
		Where(sq.Eq{"email": email}).
		MustSql()

	var e Establishment
	err := r.getContext(ctx, &e, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Establishment{}, entities.ErrEntityNotFound
	}
	if err != nil {
		return entities.Establishment{}, fmt.Errorf("failed to get establishment by email: %w", err)
	}
	return EstablishmentToEntity(e), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
