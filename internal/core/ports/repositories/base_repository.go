package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines how repositories expose database transactions to
// services that need multi-statement atomicity (unit+listing, statement+lines).
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
