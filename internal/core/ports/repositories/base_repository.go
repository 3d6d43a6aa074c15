package repositories

import (
	"context"
)

// TxFunc runs against repositories bound to a single database transaction.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager hands out transaction-scoped repositories. WithinTx commits
// when fn returns nil and rolls back on error or panic.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
