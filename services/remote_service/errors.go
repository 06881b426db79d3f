package remote_service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/types"
)

// classify wraps a gorm/pgx error into a FetchError. Postgres SQLSTATE
// classes decide between permanent and transient failures.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var fe *types.FetchError
	if errors.As(err, &fe) {
		return err
	}

	return types.NewFetchError(op, kindOf(err), err)
}

func kindOf(err error) types.FetchErrorKind {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.FetchNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return types.FetchUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return types.FetchRejected
		case strings.HasPrefix(pgErr.Code, "22"), strings.HasPrefix(pgErr.Code, "42"):
			return types.FetchInvalid
		default:
			return types.FetchUnavailable
		}
	}

	// Connection resets, refused dials and pool exhaustion.
	return types.FetchUnavailable
}
