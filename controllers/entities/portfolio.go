package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioEntity struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CashBalance      decimal.Decimal `json:"cash_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	TotalValue       decimal.Decimal `json:"total_value"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type HoldingEntity struct {
	AssetID       string          `json:"asset_id"`
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	MarketValue   decimal.Decimal `json:"market_value"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
}
