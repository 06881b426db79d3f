package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHoldingUnrealizedPnL(t *testing.T) {
	h := &Holding{
		Quantity:     decimal.RequireFromString("0.5"),
		AverageCost:  decimal.NewFromInt(42000),
		CurrentPrice: decimal.NewFromInt(43000),
	}

	assert.True(t, h.UnrealizedPnL().Equal(decimal.NewFromInt(500)))
	assert.True(t, h.MarketValue().Equal(decimal.NewFromInt(21500)))
	assert.True(t, h.CostBasis().Equal(decimal.NewFromInt(21000)))

	p := &Portfolio{CashBalance: decimal.NewFromInt(1000)}
	assert.True(t, p.TotalValue([]*Holding{h}).Equal(decimal.NewFromInt(22500)))
}
