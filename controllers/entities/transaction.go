package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/types"
)

type TransactionEntity struct {
	ID        string                `json:"id"`
	Symbol    string                `json:"symbol"`
	Type      types.TransactionType `json:"type"`
	Amount    decimal.Decimal       `json:"amount"`
	Price     decimal.Decimal       `json:"price"`
	Total     decimal.Decimal       `json:"total"`
	Fee       decimal.Decimal       `json:"fee"`
	Status    string                `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}
