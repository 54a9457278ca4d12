package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"billiard/config"
	"billiard/infras/otel"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName    = "postgres"
	otelLockKeyAttr  = "postgres.lock.key"
	advisoryLockStmt = "SELECT pg_advisory_xact_lock(hashtext($1))"
)

// TxFunc runs inside a transaction. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Transactor runs units of work on the write pool.
type Transactor interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
	// Lock takes a transaction scoped advisory lock, released on commit or rollback.
	Lock(ctx context.Context, tx *sqlx.Tx, key string) error
}

type transactor struct {
	db   *Connection
	cfg  *config.Config
	otel otel.Otel
}

func NewTransactor(db *Connection, cfg *config.Config, otl otel.Otel) Transactor {
	return &transactor{
		db:   db,
		cfg:  cfg,
		otel: otl,
	}
}

func (t *transactor) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".WithTransaction")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")

			return errors.Join(err, rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *transactor) Lock(ctx context.Context, tx *sqlx.Tx, key string) (err error) {
	if !t.cfg.DB.Postgres.AdvisoryLock {
		return nil
	}

	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelLockKeyAttr, key)

	if _, err = tx.ExecContext(ctx, advisoryLockStmt, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to acquire advisory lock")

		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}

	return nil
}
