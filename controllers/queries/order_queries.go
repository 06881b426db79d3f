package queries

import (
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/types"
)

type OrderFilters struct {
	Symbol string            `query:"symbol"`
	Status types.OrderStatus `query:"status"`
	Side   types.OrderSide   `query:"side" validate:"ValidateSide"`
}

func (t OrderFilters) ValidateSide(val types.OrderSide) bool {
	return helpers.ValidateSide(val)
}

func (t OrderFilters) Messages() map[string]string {
	return helpers.VaildateMessage("market.order", "ValidateSide")
}
