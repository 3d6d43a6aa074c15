package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so every
// repository runs unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner is a DBTX that can open transactions, typically *pgxpool.Pool.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db DBTX
}

// Begin starts a new database transaction
func (m *pgxTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (m *pgxTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (m *pgxTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

type pgxTxManager struct {
	db TxBeginner
}

func newPgxTxManager(db TxBeginner) *pgxTxManager {
	return &pgxTxManager{db: db}
}

var _ portsrepo.TransactionManager = (*pgxTxManager)(nil)

// WithinTx runs fn against repositories bound to one transaction. The
// transaction commits when fn returns nil and is rolled back otherwise.
func (m *pgxTxManager) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := m.Rollback(ctx, tx); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return
		}
		err = m.Commit(ctx, tx)
	}()

	return fn(ctx, txRepositories(tx))
}

// txRepositories binds every repository to tx. Its TransactionManager joins the
// running transaction instead of opening a new one.
func txRepositories(tx pgx.Tx) portsrepo.RepositoryProvider {
	joined := &joinedTx{}
	repos := newRepositories(tx, joined)
	joined.repos = repos
	return repos
}

type joinedTx struct {
	repos portsrepo.RepositoryProvider
}

func (j *joinedTx) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return fn(ctx, j.repos)
}

// mapUniqueViolation translates a unique-constraint failure on the users table
// into the matching duplicate sentinel. Other errors are returned unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return fmt.Errorf("%w (%s)", apperrors.ErrDuplicateEmail, pgErr.ConstraintName)
	case "users_username_key":
		return fmt.Errorf("%w (%s)", apperrors.ErrDuplicateUsername, pgErr.ConstraintName)
	default:
		return fmt.Errorf("%w (%s)", apperrors.ErrDuplicate, pgErr.ConstraintName)
	}
}
