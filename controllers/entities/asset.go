package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/types"
)

type AssetEntity struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	Name       string           `json:"name"`
	AssetClass types.AssetClass `json:"asset_class"`
	Price      decimal.Decimal  `json:"price"`
	Change24h  decimal.Decimal  `json:"change_24h"`
	Volume24h  decimal.Decimal  `json:"volume_24h"`
	MarketCap  decimal.Decimal  `json:"market_cap"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
