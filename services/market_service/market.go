package market_service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type SortField = string

var (
	SortBySymbol    SortField = "symbol"
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByChange    SortField = "change"
	SortByVolume    SortField = "volume"
	SortByMarketCap SortField = "market_cap"
)

var SortFields = []SortField{SortBySymbol, SortByName, SortByPrice, SortByChange, SortByVolume, SortByMarketCap}

// Filter keeps assets of the given class whose symbol or name contains search,
// case-insensitively. An empty class or "all" keeps every class.
func Filter(assets []*models.Asset, class types.AssetClass, search string) []*models.Asset {
	search = strings.ToLower(strings.TrimSpace(search))

	return lo.Filter(assets, func(a *models.Asset, _ int) bool {
		if len(class) > 0 && class != types.AssetClassAll && a.AssetClass != class {
			return false
		}
		if len(search) == 0 {
			return true
		}

		return strings.Contains(strings.ToLower(a.Symbol), search) ||
			strings.Contains(strings.ToLower(a.Name), search)
	})
}

func compareDecimal(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

func comparator(field SortField) (func(a, b *models.Asset) int, error) {
	switch field {
	case SortBySymbol:
		return func(a, b *models.Asset) int { return strings.Compare(a.Symbol, b.Symbol) }, nil
	case SortByName:
		return func(a, b *models.Asset) int { return strings.Compare(a.Name, b.Name) }, nil
	case SortByPrice:
		return func(a, b *models.Asset) int { return compareDecimal(a.Price, b.Price) }, nil
	case SortByChange:
		return func(a, b *models.Asset) int { return compareDecimal(a.Change24h, b.Change24h) }, nil
	case SortByVolume:
		return func(a, b *models.Asset) int { return compareDecimal(a.Volume24h, b.Volume24h) }, nil
	case SortByMarketCap:
		return func(a, b *models.Asset) int { return compareDecimal(a.MarketCap, b.MarketCap) }, nil
	}

	return nil, fmt.Errorf("unknown sort field %q", field)
}

// Sort returns a stably sorted copy of assets.
func Sort(assets []*models.Asset, field SortField, orderBy types.OrderBy) ([]*models.Asset, error) {
	cmp, err := comparator(field)
	if err != nil {
		return nil, err
	}

	desc := orderBy == types.OrderByDesc
	sorted := append([]*models.Asset(nil), assets...)

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return cmp(sorted[i], sorted[j]) > 0
		}
		return cmp(sorted[i], sorted[j]) < 0
	})

	return sorted, nil
}
