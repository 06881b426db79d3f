package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/types"
)

var (
	ErrOrderNotCancellable = errors.New("market.order.not_cancellable")
	ErrFilledExceedsAmount = errors.New("market.order.filled_exceeds_amount")
	ErrUnexpectedAvgPrice  = errors.New("market.order.unexpected_average_fill_price")
	ErrNonPositiveAmount   = errors.New("market.order.non_positive_amount")
)

// OrderDraft is what the order-entry form submits.
type OrderDraft struct {
	Symbol      string
	Side        types.OrderSide
	OrderType   types.OrderType
	Amount      decimal.Decimal
	Price       decimal.NullDecimal
	StopPrice   decimal.NullDecimal
	TimeInForce types.TimeInForce
}

type Order struct {
	ID               uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string              `json:"user_id" gorm:"index"`
	AssetID          string              `json:"asset_id"`
	Symbol           string              `json:"symbol"`
	OrderType        types.OrderType     `json:"order_type"`
	Side             types.OrderSide     `json:"side"`
	Amount           decimal.Decimal     `json:"amount"`
	Price            decimal.NullDecimal `json:"price"`
	StopPrice        decimal.NullDecimal `json:"stop_price"`
	TimeInForce      types.TimeInForce   `json:"time_in_force" gorm:"default:GTC"`
	Status           types.OrderStatus   `json:"status" gorm:"index"`
	FilledAmount     decimal.Decimal     `json:"filled_amount"`
	AverageFillPrice decimal.NullDecimal `json:"average_fill_price"`
	CreatedAt        time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// NewOrder builds a pending order from a draft. Defaults: market, GTC.
func NewOrder(user *Profile, asset *Asset, draft OrderDraft, now time.Time) *Order {
	if len(draft.OrderType) == 0 {
		draft.OrderType = types.TypeMarket
	}
	if len(draft.TimeInForce) == 0 {
		draft.TimeInForce = types.TimeInForceGTC
	}

	return &Order{
		ID:           uuid.New(),
		UserID:       user.ID,
		AssetID:      asset.ID,
		Symbol:       asset.Symbol,
		OrderType:    draft.OrderType,
		Side:         draft.Side,
		Amount:       draft.Amount,
		Price:        draft.Price,
		StopPrice:    draft.StopPrice,
		TimeInForce:  draft.TimeInForce,
		Status:       types.StatusPending,
		FilledAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the record invariants. It is not applied on placement.
func (o *Order) Validate() error {
	if !o.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if o.FilledAmount.GreaterThan(o.Amount) {
		return ErrFilledExceedsAmount
	}
	if !o.FilledAmount.IsPositive() && o.AverageFillPrice.Valid {
		return ErrUnexpectedAvgPrice
	}

	return nil
}

func (o *Order) IsPending() bool {
	return o.Status == types.StatusPending
}

// Cancel moves a pending order to cancelled. Any other state is final here.
func (o *Order) Cancel(now time.Time) error {
	if !o.IsPending() {
		return ErrOrderNotCancellable
	}

	o.Status = types.StatusCancelled
	o.UpdatedAt = now

	return nil
}

func (o *Order) RemainingAmount() decimal.Decimal {
	return o.Amount.Sub(o.FilledAmount)
}

func (o *Order) Clone() *Order {
	c := *o
	return &c
}

func (o *Order) ToJSON() entities.OrderEntity {
	return entities.OrderEntity{
		ID:               o.ID,
		UserID:           o.UserID,
		AssetID:          o.AssetID,
		Symbol:           o.Symbol,
		OrderType:        o.OrderType,
		Side:             o.Side,
		Amount:           o.Amount,
		Price:            o.Price,
		StopPrice:        o.StopPrice,
		TimeInForce:      o.TimeInForce,
		Status:           o.Status,
		FilledAmount:     o.FilledAmount,
		RemainingAmount:  o.RemainingAmount(),
		AverageFillPrice: o.AverageFillPrice,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
