package helpers

import (
	"context"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/order_entry_service"
	"github.com/zsmartex/tradedesk/types"
)

type CreateOrderParams struct {
	Symbol      string              `json:"symbol" form:"symbol" validate:"required"`
	Side        types.OrderSide     `json:"side" form:"side" validate:"required|VaildateSide"`
	OrderType   types.OrderType     `json:"order_type" form:"order_type" validate:"VaildateOrderType"`
	Amount      decimal.Decimal     `json:"amount" form:"amount"`
	Price       decimal.NullDecimal `json:"price" form:"price"`
	StopPrice   decimal.NullDecimal `json:"stop_price" form:"stop_price"`
	TimeInForce types.TimeInForce   `json:"time_in_force" form:"time_in_force" validate:"VaildateTimeInForce"`
}

func (p CreateOrderParams) Messages() map[string]string {
	invalid_message := "market.order.invalid_{field}"

	return validate.MS{
		"required":            invalid_message,
		"VaildateSide":        invalid_message,
		"VaildateOrderType":   invalid_message,
		"VaildateTimeInForce": invalid_message,
	}
}

func (p CreateOrderParams) VaildateSide(val types.OrderSide) bool {
	return ValidateSide(val)
}

func (p CreateOrderParams) VaildateOrderType(val types.OrderType) bool {
	return ValidateOrderType(val)
}

func (p CreateOrderParams) VaildateTimeInForce(val types.TimeInForce) bool {
	return ValidateTimeInForce(val)
}

// Form fills an order-entry form the way a user would type it in.
func (p CreateOrderParams) Form(placer order_entry_service.Placer, user *models.Profile) (*order_entry_service.Form, error) {
	form := order_entry_service.NewForm(placer, user)
	form.SelectAsset(p.Symbol)

	if err := form.SetSide(p.Side); err != nil {
		return nil, err
	}
	if len(p.OrderType) > 0 {
		if err := form.SetOrderType(p.OrderType); err != nil {
			return nil, err
		}
	}
	if len(p.TimeInForce) > 0 {
		if err := form.SetTimeInForce(p.TimeInForce); err != nil {
			return nil, err
		}
	}

	form.SetAmount(p.Amount.String())
	if p.Price.Valid {
		form.SetPrice(p.Price.Decimal.String())
	}
	if p.StopPrice.Valid {
		form.SetStopPrice(p.StopPrice.Decimal.String())
	}

	return form, nil
}

func (p CreateOrderParams) CreateOrder(ctx context.Context, placer order_entry_service.Placer, user *models.Profile) (*models.Order, error) {
	form, err := p.Form(placer, user)
	if err != nil {
		return nil, err
	}

	return form.Submit(ctx)
}

// Estimate quotes amount × price for the order at the asset's current price,
// rounded to the asset's precisions.
func (p CreateOrderParams) Estimate(placer order_entry_service.Placer, user *models.Profile, asset *models.Asset) (entities.OrderEstimateEntity, error) {
	form, err := p.Form(placer, user)
	if err != nil {
		return entities.OrderEstimateEntity{}, err
	}

	return entities.OrderEstimateEntity{
		Symbol:      asset.Symbol,
		Amount:      asset.RoundAmount(p.Amount),
		MarketPrice: asset.Price,
		Total:       asset.RoundPrice(form.Total(asset.Price)),
	}, nil
}
