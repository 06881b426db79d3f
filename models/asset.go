package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/types"
)

type Asset struct {
	ID              string           `json:"id" gorm:"primaryKey"`
	Symbol          string           `json:"symbol" gorm:"uniqueIndex"`
	Name            string           `json:"name"`
	AssetClass      types.AssetClass `json:"asset_class" gorm:"index"`
	Price           decimal.Decimal  `json:"price"`
	Change24h       decimal.Decimal  `json:"change_24h"`
	Volume24h       decimal.Decimal  `json:"volume_24h"`
	MarketCap       decimal.Decimal  `json:"market_cap"`
	PricePrecision  int32            `json:"price_precision" gorm:"default:2"`
	AmountPrecision int32            `json:"amount_precision" gorm:"default:8"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (a *Asset) RoundPrice(val decimal.Decimal) decimal.Decimal {
	return val.Round(a.PricePrecision)
}

func (a *Asset) RoundAmount(val decimal.Decimal) decimal.Decimal {
	return val.Round(a.AmountPrecision)
}

// ApplyPrice sets a new price and rolls the 24h change forward from the
// implied price a day ago.
func (a *Asset) ApplyPrice(price decimal.Decimal, now time.Time) {
	hundred := decimal.NewFromInt(100)
	denominator := hundred.Add(a.Change24h)

	if a.Price.IsPositive() && denominator.IsPositive() {
		base := a.Price.Mul(hundred).Div(denominator)
		a.Change24h = price.Sub(base).Div(base).Mul(hundred).Round(2)
	}

	a.Price = price
	a.UpdatedAt = now
}

// Clone returns a copy safe to hand out of a shared store.
func (a *Asset) Clone() *Asset {
	c := *a
	return &c
}

func (a *Asset) ToJSON() entities.AssetEntity {
	return entities.AssetEntity{
		ID:         a.ID,
		Symbol:     a.Symbol,
		Name:       a.Name,
		AssetClass: a.AssetClass,
		Price:      a.Price,
		Change24h:  a.Change24h,
		Volume24h:  a.Volume24h,
		MarketCap:  a.MarketCap,
		UpdatedAt:  a.UpdatedAt,
	}
}
