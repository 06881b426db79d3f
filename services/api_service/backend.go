package api_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

// Backend is implemented by the in-memory mock backend and the remote datastore.
// Failures are reported as *types.FetchError.
type Backend interface {
	Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error)
	Asset(ctx context.Context, symbol string) (*models.Asset, error)
	// UpdatePrices sets the price of each asset id in prices.
	UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error

	InsertOrder(ctx context.Context, order *models.Order) error
	// Orders returns the user's orders newest first; limit <= 0 means unbounded.
	Orders(ctx context.Context, userID string, limit int) ([]*models.Order, error)
	Order(ctx context.Context, userID string, id uuid.UUID) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error

	Portfolios(ctx context.Context, userID string) ([]*models.Portfolio, error)
	Holdings(ctx context.Context, userID, portfolioID string) ([]*models.Holding, error)

	Transactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error)

	Watchlists(ctx context.Context, userID string) ([]*models.Watchlist, error)
	CreateWatchlist(ctx context.Context, watchlist *models.Watchlist) error
	AddWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error)
	RemoveWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error)

	TokenSale(ctx context.Context) (*models.TokenSale, error)
	// InsertTokenPurchase stores the purchase and adds its tokens to the sale's sold quantity.
	InsertTokenPurchase(ctx context.Context, purchase *models.TokenPurchase) error
	TokenPurchases(ctx context.Context, userID string) ([]*models.TokenPurchase, error)
}

// EventPublisher delivers private per-user events, e.g. "private.<uid>.order",
// and public market events, e.g. "public.<symbol>.ticker".
type EventPublisher interface {
	EnqueueEvent(kind string, id string, event string, payload []byte) error
}

type nopPublisher struct{}

func (nopPublisher) EnqueueEvent(kind string, id string, event string, payload []byte) error {
	return nil
}
