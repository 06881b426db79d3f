package helpers

import (
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/services/market_service"
	"github.com/zsmartex/tradedesk/types"
)

func ValidateOrderBy(val types.OrderBy) bool {
	return val == types.OrderByAsc || val == types.OrderByDesc
}

func ValidateSide(val types.OrderSide) bool {
	return val == types.SideBuy || val == types.SideSell
}

func ValidateOrderType(val types.OrderType) bool {
	return lo.Contains(types.OrderTypes, val)
}

func ValidateTimeInForce(val types.TimeInForce) bool {
	return lo.Contains(types.TimeInForces, val)
}

func ValidateAssetClass(val types.AssetClass) bool {
	return types.ValidAssetClass(val)
}

func ValidateSortField(val market_service.SortField) bool {
	return lo.Contains(market_service.SortFields, val)
}
