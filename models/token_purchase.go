package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/types"
)

type TokenPurchase struct {
	ID            uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	TokenSaleID   int64               `json:"token_sale_id" gorm:"index"`
	UserID        string              `json:"user_id" gorm:"index"`
	WalletAddress string              `json:"wallet_address"`
	Contribution  decimal.Decimal     `json:"contribution"`
	Tokens        decimal.Decimal     `json:"tokens"`
	TxHash        string              `json:"tx_hash"`
	State         types.PurchaseState `json:"state"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (p *TokenPurchase) Clone() *TokenPurchase {
	c := *p
	return &c
}

func (p *TokenPurchase) ToJSON() entities.TokenPurchaseEntity {
	return entities.TokenPurchaseEntity{
		ID:            p.ID,
		TokenSaleID:   p.TokenSaleID,
		WalletAddress: p.WalletAddress,
		Contribution:  p.Contribution,
		Tokens:        p.Tokens,
		TxHash:        p.TxHash,
		State:         p.State,
		CreatedAt:     p.CreatedAt,
	}
}
