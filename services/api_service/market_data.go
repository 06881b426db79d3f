package api_service

import (
	"context"
	"fmt"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type MarketDataAPI struct {
	api *API
}

// Assets lists every asset, or only those of class. "" and "all" mean every class.
func (m *MarketDataAPI) Assets(ctx context.Context, user *models.Profile, class types.AssetClass) ([]*models.Asset, error) {
	if !types.ValidAssetClass(class) {
		return nil, types.NewFetchError("market_data.assets", types.FetchInvalid, fmt.Errorf("unknown asset class %q", class))
	}
	if class == types.AssetClassAll {
		class = ""
	}

	return m.api.backend(user).Assets(ctx, class)
}

func (m *MarketDataAPI) Asset(ctx context.Context, user *models.Profile, symbol string) (*models.Asset, error) {
	return m.api.backend(user).Asset(ctx, symbol)
}
