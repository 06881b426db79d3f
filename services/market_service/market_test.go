package market_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/mock_service"
	"github.com/zsmartex/tradedesk/types"
)

func symbols(assets []*models.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Symbol)
	}
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

func TestFilter(t *testing.T) {
	assets := mock_service.SeedAssets(time.Now())

	assert.Len(t, Filter(assets, "", ""), 5)
	assert.Len(t, Filter(assets, types.AssetClassAll, ""), 5)
	assert.Equal(t, []string{"AAPL", "TSLA"}, symbols(Filter(assets, types.AssetClassStock, "")))
	assert.Equal(t, []string{"ETH"}, symbols(Filter(assets, "", "eum")))
	assert.Equal(t, []string{"TSLA"}, symbols(Filter(assets, types.AssetClassStock, "tsl")))
	assert.Empty(t, Filter(assets, types.AssetClassCrypto, "apple"))
}

func TestSortIsReversible(t *testing.T) {
	assets := mock_service.SeedAssets(time.Now())

	for _, field := range SortFields {
		asc, err := Sort(assets, field, types.OrderByAsc)
		require.NoError(t, err)
		desc, err := Sort(assets, field, types.OrderByDesc)
		require.NoError(t, err)

		assert.Equal(t, reversed(symbols(asc)), symbols(desc), field)
	}
}

func TestSortByPrice(t *testing.T) {
	assets := mock_service.SeedAssets(time.Now())

	sorted, err := Sort(assets, SortByPrice, types.OrderByAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"USDT", "AAPL", "TSLA", "ETH", "BTC"}, symbols(sorted))

	assert.Equal(t, []string{"BTC", "ETH", "USDT", "AAPL", "TSLA"}, symbols(assets))
}

func TestSortIsStable(t *testing.T) {
	assets := mock_service.SeedAssets(time.Now())
	for _, a := range assets {
		a.Change24h = a.Change24h.Truncate(0).Abs()
	}

	sorted, err := Sort(assets, SortByChange, types.OrderByAsc)
	require.NoError(t, err)
	// USDT and AAPL tie at 0 and keep their input order.
	assert.Equal(t, []string{"USDT", "AAPL", "ETH", "BTC", "TSLA"}, symbols(sorted))
}

func TestSortUnknownField(t *testing.T) {
	_, err := Sort(nil, "popularity", types.OrderByAsc)
	assert.Error(t, err)
}
