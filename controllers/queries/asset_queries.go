package queries

import (
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/services/market_service"
	"github.com/zsmartex/tradedesk/types"
)

type AssetFilters struct {
	Class   types.AssetClass         `query:"class" validate:"ValidateClass"`
	Search  string                   `query:"search"`
	SortBy  market_service.SortField `query:"sort_by" validate:"ValidateSortBy"`
	OrderBy types.OrderBy            `query:"order_by" validate:"ValidateOrderBy"`
}

func (t AssetFilters) ValidateClass(val types.AssetClass) bool {
	return helpers.ValidateAssetClass(val)
}

func (t AssetFilters) ValidateSortBy(val market_service.SortField) bool {
	return helpers.ValidateSortField(val)
}

func (t AssetFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}

func (t AssetFilters) Messages() map[string]string {
	return helpers.VaildateMessage("public.asset", "ValidateClass", "ValidateSortBy", "ValidateOrderBy")
}
