package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// maxTxAttempts bounds how many times a serializable transaction is retried
// after a conflict before giving up.
const maxTxAttempts = 10

// ErrTxMaxRetries is returned when a transaction still conflicts after
// maxTxAttempts attempts.
var ErrTxMaxRetries = errors.New("transaction retries exhausted")

type txKey struct{}

type beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxManager runs units of work inside serializable transactions, retrying
// the whole unit on serialization conflicts. Any other error is surfaced
// immediately after rollback.
type TxManager struct {
	db  beginner
	log zerolog.Logger
}

// NewTxManager creates a transaction manager over pool.
func NewTxManager(pool *pgxpool.Pool, log zerolog.Logger) *TxManager {
	return &TxManager{db: pool, log: log}
}

// Serializable begins a serializable transaction, injects it into the
// context passed to fn, and commits when fn returns nil. The store reports
// conflicting concurrent transactions as serialization failures; those roll
// back and retry from the top, re-running all of fn's reads against current
// state. After maxTxAttempts conflicts it returns ErrTxMaxRetries.
func (tm *TxManager) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := tm.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsSerializationFailure(err) {
			return err
		}
		tm.log.Debug().Int("attempt", attempt).Msg("serialization conflict, retrying transaction")
	}
	return ErrTxMaxRetries
}

func (tm *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tm.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// IsSerializationFailure reports whether err is the store's conflict signal
// for serializable isolation: serialization_failure or deadlock_detected.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func txFrom(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}
