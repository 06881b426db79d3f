package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
)

type Portfolio struct {
	ID               string          `json:"id" gorm:"primaryKey"`
	UserID           string          `json:"user_id" gorm:"index"`
	Name             string          `json:"name"`
	CashBalance      decimal.Decimal `json:"cash_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (p *Portfolio) Clone() *Portfolio {
	c := *p
	return &c
}

// TotalValue is cash plus the market value of the given holdings.
func (p *Portfolio) TotalValue(holdings []*Holding) decimal.Decimal {
	total := p.CashBalance
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}

	return total
}

func (p *Portfolio) ToJSON(holdings []*Holding) entities.PortfolioEntity {
	return entities.PortfolioEntity{
		ID:               p.ID,
		Name:             p.Name,
		CashBalance:      p.CashBalance,
		AvailableBalance: p.AvailableBalance,
		TotalValue:       p.TotalValue(holdings),
		UpdatedAt:        p.UpdatedAt,
	}
}

type Holding struct {
	ID          uint64          `json:"id" gorm:"primaryKey"`
	PortfolioID string          `json:"portfolio_id" gorm:"index"`
	AssetID     string          `json:"asset_id"`
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	// CurrentPrice is joined from the asset at read time.
	CurrentPrice decimal.Decimal `json:"current_price" gorm:"-"`
}

func (h *Holding) MarketValue() decimal.Decimal {
	return h.CurrentPrice.Mul(h.Quantity)
}

func (h *Holding) CostBasis() decimal.Decimal {
	return h.AverageCost.Mul(h.Quantity)
}

func (h *Holding) UnrealizedPnL() decimal.Decimal {
	return h.CurrentPrice.Sub(h.AverageCost).Mul(h.Quantity)
}

func (h *Holding) Clone() *Holding {
	c := *h
	return &c
}

func (h *Holding) ToJSON() entities.HoldingEntity {
	return entities.HoldingEntity{
		AssetID:       h.AssetID,
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		AverageCost:   h.AverageCost,
		CurrentPrice:  h.CurrentPrice,
		MarketValue:   h.MarketValue(),
		UnrealizedPnL: h.UnrealizedPnL(),
	}
}
