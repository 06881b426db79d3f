package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/types"
)

var ErrLimitPerUserExceeded = errors.New("token_sale.limit_per_user_exceeded")

type TokenSale struct {
	ID              int64             `json:"id" gorm:"primaryKey"`
	Symbol          string            `json:"symbol" gorm:"uniqueIndex"`
	Name            string            `json:"name"`
	QuoteCurrency   string            `json:"quote_currency"`
	Price           decimal.Decimal   `json:"price"`
	TotalSupply     decimal.Decimal   `json:"total_supply"`
	SaleSupply      decimal.Decimal   `json:"sale_supply"`
	SoldQuantity    decimal.Decimal   `json:"sold_quantity"`
	MinContribution decimal.Decimal   `json:"min_contribution"`
	LimitPerUser    decimal.Decimal   `json:"limit_per_user"`
	State           types.SaleState   `json:"state"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	Allocations     []TokenAllocation `json:"allocations" gorm:"foreignKey:TokenSaleID"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type TokenAllocation struct {
	ID          uint64          `json:"id" gorm:"primaryKey"`
	TokenSaleID int64           `json:"token_sale_id" gorm:"index"`
	Category    string          `json:"category"`
	Percent     decimal.Decimal `json:"percent"`
	Position    int             `json:"position"`
}

func (s *TokenSale) IsEnabled() bool {
	return s.State == types.SaleStateEnabled
}

func (s *TokenSale) IsStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}

func (s *TokenSale) IsEnded(now time.Time) bool {
	return now.After(s.EndTime)
}

func (s *TokenSale) IsActive(now time.Time) bool {
	return s.IsEnabled() && s.IsStarted(now) && !s.IsEnded(now)
}

func (s *TokenSale) Remaining() decimal.Decimal {
	return s.SaleSupply.Sub(s.SoldQuantity)
}

func (s *TokenSale) IsCompleted() bool {
	return !s.Remaining().IsPositive()
}

// ExceedsUserLimit reports whether contribution on top of spent goes over
// LimitPerUser. A zero limit means unlimited.
func (s *TokenSale) ExceedsUserLimit(spent, contribution decimal.Decimal) bool {
	return s.LimitPerUser.IsPositive() && spent.Add(contribution).GreaterThan(s.LimitPerUser)
}

func (s *TokenSale) Clone() *TokenSale {
	c := *s
	c.Allocations = append([]TokenAllocation(nil), s.Allocations...)
	return &c
}

func (s *TokenSale) ToJSON(now time.Time) entities.TokenSaleEntity {
	return entities.TokenSaleEntity{
		ID:              s.ID,
		Symbol:          s.Symbol,
		Name:            s.Name,
		QuoteCurrency:   s.QuoteCurrency,
		Price:           s.Price,
		TotalSupply:     s.TotalSupply,
		SaleSupply:      s.SaleSupply,
		SoldQuantity:    s.SoldQuantity,
		MinContribution: s.MinContribution,
		LimitPerUser:    s.LimitPerUser,
		StartTime:       s.StartTime.Unix(),
		EndTime:         s.EndTime.Unix(),
		Active:          s.IsActive(now),
		Ended:           s.IsEnded(now),
		Completed:       s.IsCompleted(),
	}
}
