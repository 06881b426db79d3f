package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/types"
)

type Transaction struct {
	ID        string                `json:"id" gorm:"primaryKey"`
	UserID    string                `json:"user_id" gorm:"index"`
	AssetID   string                `json:"asset_id"`
	Symbol    string                `json:"symbol"`
	Type      types.TransactionType `json:"type"`
	Amount    decimal.Decimal       `json:"amount"`
	Price     decimal.Decimal       `json:"price"`
	Fee       decimal.Decimal       `json:"fee"`
	Status    string                `json:"status"`
	CreatedAt time.Time             `json:"created_at" gorm:"index"`
}

func (t *Transaction) Total() decimal.Decimal {
	return t.Amount.Mul(t.Price)
}

func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}

func (t *Transaction) ToJSON() entities.TransactionEntity {
	return entities.TransactionEntity{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Type:      t.Type,
		Amount:    t.Amount,
		Price:     t.Price,
		Total:     t.Total(),
		Fee:       t.Fee,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}
