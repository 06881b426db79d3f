package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/types"
)

type OrderEntity struct {
	ID               uuid.UUID           `json:"id"`
	UserID           string              `json:"user_id"`
	AssetID          string              `json:"asset_id"`
	Symbol           string              `json:"symbol"`
	OrderType        types.OrderType     `json:"order_type"`
	Side             types.OrderSide     `json:"side"`
	Amount           decimal.Decimal     `json:"amount"`
	Price            decimal.NullDecimal `json:"price"`
	StopPrice        decimal.NullDecimal `json:"stop_price"`
	TimeInForce      types.TimeInForce   `json:"time_in_force"`
	Status           types.OrderStatus   `json:"status"`
	FilledAmount     decimal.Decimal     `json:"filled_amount"`
	RemainingAmount  decimal.Decimal     `json:"remaining_amount"`
	AverageFillPrice decimal.NullDecimal `json:"average_fill_price"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type OrderEstimateEntity struct {
	Symbol      string          `json:"symbol"`
	Amount      decimal.Decimal `json:"amount"`
	MarketPrice decimal.Decimal `json:"market_price"`
	Total       decimal.Decimal `json:"total"`
}
