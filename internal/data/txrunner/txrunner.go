// Package txrunner is the shared transaction boundary for multi-row writes.
package txrunner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 25 * time.Millisecond
)

// TxRunner runs fn inside a transaction. When dbc already carries a transaction fn
// joins it and no retry happens; the outer caller owns the boundary.
type TxRunner interface {
	InTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db       *gorm.DB
	attempts int
	backoff  time.Duration
}

// NewGormTxRunner returns a runner that retries serialization failures, deadlocks and
// busy databases up to three times.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db, attempts: defaultAttempts, backoff: defaultBackoff}
}

func (r *gormTxRunner) InTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if dbc.Tx != nil {
		return fn(dbc)
	}
	if r == nil || r.db == nil {
		return errors.New("txrunner: nil db")
	}
	ctx := dbc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(dbctx.Context{Ctx: ctx, Tx: tx})
		})
		if err == nil || !IsRetryable(err) || attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (after %d attempts: %v)", ctx.Err(), attempt, err)
		case <-time.After(time.Duration(attempt) * r.backoff):
		}
	}
	return err
}

// IsRetryable reports transient failures worth another attempt.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "40001", "40P01", "55P03":
			return true // serialization/deadlock/lock_not_available
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization")
}
