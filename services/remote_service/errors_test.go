package remote_service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/types"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		kind types.FetchErrorKind
	}{
		{gorm.ErrRecordNotFound, types.FetchNotFound},
		{fmt.Errorf("query: %w", gorm.ErrRecordNotFound), types.FetchNotFound},
		{context.DeadlineExceeded, types.FetchUnavailable},
		{&pgconn.PgError{Code: "23505"}, types.FetchRejected},
		{&pgconn.PgError{Code: "22P02"}, types.FetchInvalid},
		{&pgconn.PgError{Code: "42P01"}, types.FetchInvalid},
		{&pgconn.PgError{Code: "08006"}, types.FetchUnavailable},
		{&pgconn.PgError{Code: "57P01"}, types.FetchUnavailable},
		{errors.New("dial tcp: connection refused"), types.FetchUnavailable},
	}

	for _, c := range cases {
		var fe *types.FetchError
		err := classify("op", c.err)

		if assert.ErrorAs(t, err, &fe) {
			assert.Equal(t, c.kind, fe.Kind, c.err.Error())
			assert.Equal(t, "op", fe.Op)
		}
	}

	assert.Nil(t, classify("op", nil))

	already := types.NewFetchError("inner", types.FetchRejected, errors.New("x"))
	assert.Same(t, already, classify("outer", already))
}
