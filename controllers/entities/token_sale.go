package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/types"
)

type TokenSaleEntity struct {
	ID              int64           `json:"id"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	QuoteCurrency   string          `json:"quote_currency"`
	Price           decimal.Decimal `json:"price"`
	TotalSupply     decimal.Decimal `json:"total_supply"`
	SaleSupply      decimal.Decimal `json:"sale_supply"`
	SoldQuantity    decimal.Decimal `json:"sold_quantity"`
	MinContribution decimal.Decimal `json:"min_contribution"`
	LimitPerUser    decimal.Decimal `json:"limit_per_user"`
	StartTime       int64           `json:"start_time"`
	EndTime         int64           `json:"end_time"`
	Active          bool            `json:"active"`
	Ended           bool            `json:"ended"`
	Completed       bool            `json:"completed"`
}

type TokenPurchaseEntity struct {
	ID            uuid.UUID           `json:"id"`
	TokenSaleID   int64               `json:"token_sale_id"`
	WalletAddress string              `json:"wallet_address"`
	Contribution  decimal.Decimal     `json:"contribution"`
	Tokens        decimal.Decimal     `json:"tokens"`
	TxHash        string              `json:"tx_hash"`
	State         types.PurchaseState `json:"state"`
	CreatedAt     time.Time           `json:"created_at"`
}

type WalletEntity struct {
	Address     string    `json:"address"`
	Network     string    `json:"network"`
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
}

type CountdownEntity struct {
	Phase   string `json:"phase"`
	Days    int64  `json:"days"`
	Hours   int64  `json:"hours"`
	Minutes int64  `json:"minutes"`
	Seconds int64  `json:"seconds"`
	Target  int64  `json:"target,omitempty"`
}

type AllocationEntity struct {
	Category string          `json:"category"`
	Percent  decimal.Decimal `json:"percent"`
	Tokens   decimal.Decimal `json:"tokens"`
}
