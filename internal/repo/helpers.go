package repo

import (
	"context"
	"database/sql"

	"github.com/Dienay/rangos-api/pkg/trm"

	"github.com/jmoiron/sqlx"
)

// runner routes queries through the transaction carried by ctx when one is
// present, otherwise straight to the pool. Every repository embeds it.
type runner struct {
	db *sqlx.DB
}

func (r runner) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r runner) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r runner) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
