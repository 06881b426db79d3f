package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorClassification(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load assets: %w", NewFetchError("assets", FetchUnavailable, cause))

	assert.True(t, IsTemporary(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "assets: unavailable: connection refused")

	assert.True(t, IsNotFound(NewFetchError("order", FetchNotFound, nil)))
	assert.True(t, IsInvalid(NewFetchError("cancel", FetchRejected, nil)))
	assert.False(t, IsTemporary(errors.New("plain")))
}

func TestOrderTypePriceRequirements(t *testing.T) {
	assert.False(t, NeedsPrice(TypeMarket))
	assert.True(t, NeedsPrice(TypeLimit))
	assert.True(t, NeedsPrice(TypeStopLimit))
	assert.False(t, NeedsStopPrice(TypeLimit))
	assert.True(t, NeedsStopPrice(TypeStopLoss))
	assert.True(t, NeedsStopPrice(TypeTakeProfit))
	assert.True(t, ValidAssetClass(""))
	assert.False(t, ValidAssetClass("bond"))
}
