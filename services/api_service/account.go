package api_service

import (
	"context"

	"github.com/zsmartex/tradedesk/models"
)

type PortfolioAPI struct {
	api *API
}

func (p *PortfolioAPI) Portfolios(ctx context.Context, user *models.Profile) ([]*models.Portfolio, error) {
	if err := requireUser("portfolio.portfolios", user); err != nil {
		return nil, err
	}

	return p.api.backend(user).Portfolios(ctx, user.ID)
}

// Holdings returns the portfolio's positions with current prices joined in.
func (p *PortfolioAPI) Holdings(ctx context.Context, user *models.Profile, portfolioID string) ([]*models.Holding, error) {
	if err := requireUser("portfolio.holdings", user); err != nil {
		return nil, err
	}

	return p.api.backend(user).Holdings(ctx, user.ID, portfolioID)
}

type TransactionAPI struct {
	api *API
}

// Transactions returns the user's transactions newest first.
func (t *TransactionAPI) Transactions(ctx context.Context, user *models.Profile) ([]*models.Transaction, error) {
	if err := requireUser("transaction.transactions", user); err != nil {
		return nil, err
	}

	return t.api.backend(user).Transactions(ctx, user.ID, t.api.opts.TransactionsLimit)
}

type WatchlistAPI struct {
	api *API
}

func (w *WatchlistAPI) Watchlists(ctx context.Context, user *models.Profile) ([]*models.Watchlist, error) {
	if err := requireUser("watchlist.watchlists", user); err != nil {
		return nil, err
	}

	return w.api.backend(user).Watchlists(ctx, user.ID)
}

func (w *WatchlistAPI) Create(ctx context.Context, user *models.Profile, name string) (*models.Watchlist, error) {
	if err := requireUser("watchlist.create", user); err != nil {
		return nil, err
	}

	now := w.api.now()
	watchlist := &models.Watchlist{
		UserID:    user.ID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := w.api.backend(user).CreateWatchlist(ctx, watchlist); err != nil {
		return nil, err
	}

	return watchlist, nil
}

func (w *WatchlistAPI) AddAsset(ctx context.Context, user *models.Profile, watchlistID, assetID string) (*models.Watchlist, error) {
	if err := requireUser("watchlist.add_asset", user); err != nil {
		return nil, err
	}

	return w.api.backend(user).AddWatchlistAsset(ctx, user.ID, watchlistID, assetID)
}

func (w *WatchlistAPI) RemoveAsset(ctx context.Context, user *models.Profile, watchlistID, assetID string) (*models.Watchlist, error) {
	if err := requireUser("watchlist.remove_asset", user); err != nil {
		return nil, err
	}

	return w.api.backend(user).RemoveWatchlistAsset(ctx, user.ID, watchlistID, assetID)
}
