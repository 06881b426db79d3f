// Package remote_service is the backend over the managed PostgreSQL datastore.
package remote_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/services/kv_service"
	"github.com/zsmartex/tradedesk/types"
)

var _ api_service.Backend = (*Backend)(nil)

var (
	ErrSaleSoldOut   = errors.New("token_sale.sold_out")
	ErrAssetNotFound = errors.New("market.asset.not_found")
)

const assetSnapshotKey = "assets:snapshot"

type Backend struct {
	db       *gorm.DB
	cache    kv_service.Store
	cacheTTL time.Duration
	now      func() time.Time
}

type Option func(b *Backend)

// WithAssetCache serves Assets from a snapshot kept in store for ttl.
func WithAssetCache(store kv_service.Store, ttl time.Duration) Option {
	return func(b *Backend) {
		b.cache = store
		b.cacheTTL = ttl
	}
}

func New(db *gorm.DB, opts ...Option) *Backend {
	b := &Backend{
		db:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Backend) tx(ctx context.Context) *gorm.DB {
	return b.db.WithContext(ctx)
}

func (b *Backend) Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error) {
	assets, err := b.assetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if len(class) == 0 || class == types.AssetClassAll {
		return assets, nil
	}

	return lo.Filter(assets, func(a *models.Asset, _ int) bool {
		return a.AssetClass == class
	}), nil
}

func (b *Backend) assetSnapshot(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset

	if b.cache != nil {
		err := b.cache.Get(ctx, assetSnapshotKey, &assets)
		if err == nil {
			return assets, nil
		}
		if !errors.Is(err, kv_service.ErrNotFound) {
			config.Logger.WithError(err).Warn("asset snapshot cache read failed")
		}
	}

	return b.RefreshAssetSnapshot(ctx)
}

// RefreshAssetSnapshot reads every asset from the database and, when a cache
// is configured, replaces the cached snapshot.
func (b *Backend) RefreshAssetSnapshot(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	if err := b.tx(ctx).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, classify("assets", err)
	}

	if b.cache != nil {
		if err := b.cache.Set(ctx, assetSnapshotKey, assets, b.cacheTTL); err != nil {
			config.Logger.WithError(err).Warn("asset snapshot cache write failed")
		}
	}

	return assets, nil
}

func (b *Backend) Asset(ctx context.Context, symbol string) (*models.Asset, error) {
	var asset models.Asset
	if err := b.tx(ctx).Where("symbol = ?", symbol).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: %s", ErrAssetNotFound, symbol)
			return nil, types.NewFetchError("asset", types.FetchNotFound, err)
		}
		return nil, classify("asset", err)
	}

	return &asset, nil
}

func (b *Backend) UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error {
	now := b.now()

	err := b.tx(ctx).Transaction(func(tx *gorm.DB) error {
		for id, price := range prices {
			var asset models.Asset
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&asset).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			asset.ApplyPrice(price, now)

			if err := tx.Model(&asset).Select("Price", "Change24h", "UpdatedAt").Updates(&asset).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return classify("update_prices", err)
	}

	if b.cache != nil {
		if err := b.cache.Delete(ctx, assetSnapshotKey); err != nil {
			config.Logger.WithError(err).Warn("asset snapshot cache invalidation failed")
		}
	}

	return nil
}

func (b *Backend) InsertOrder(ctx context.Context, order *models.Order) error {
	return classify("insert_order", b.tx(ctx).Create(order).Error)
}

func (b *Backend) Orders(ctx context.Context, userID string, limit int) ([]*models.Order, error) {
	q := b.tx(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var orders []*models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, classify("orders", err)
	}

	return orders, nil
}

func (b *Backend) Order(ctx context.Context, userID string, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := b.tx(ctx).Where("user_id = ? AND id = ?", userID, id).First(&order).Error; err != nil {
		return nil, classify("order", err)
	}

	return &order, nil
}

func (b *Backend) UpdateOrder(ctx context.Context, order *models.Order) error {
	result := b.tx(ctx).
		Model(&models.Order{}).
		Where("id = ? AND user_id = ?", order.ID, order.UserID).
		Updates(map[string]interface{}{
			"status":             order.Status,
			"filled_amount":      order.FilledAmount,
			"average_fill_price": order.AverageFillPrice,
			"updated_at":         order.UpdatedAt,
		})
	if result.Error != nil {
		return classify("update_order", result.Error)
	}
	if result.RowsAffected == 0 {
		return classify("update_order", gorm.ErrRecordNotFound)
	}

	return nil
}

func (b *Backend) Portfolios(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	if err := b.tx(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&portfolios).Error; err != nil {
		return nil, classify("portfolios", err)
	}

	return portfolios, nil
}

func (b *Backend) Holdings(ctx context.Context, userID, portfolioID string) ([]*models.Holding, error) {
	var portfolio models.Portfolio
	if err := b.tx(ctx).Where("id = ? AND user_id = ?", portfolioID, userID).First(&portfolio).Error; err != nil {
		return nil, classify("holdings", err)
	}

	var holdings []*models.Holding
	if err := b.tx(ctx).Where("portfolio_id = ?", portfolioID).Order("id ASC").Find(&holdings).Error; err != nil {
		return nil, classify("holdings", err)
	}
	if len(holdings) == 0 {
		return holdings, nil
	}

	var assets []*models.Asset
	assetIDs := lo.Uniq(lo.Map(holdings, func(h *models.Holding, _ int) string { return h.AssetID }))
	if err := b.tx(ctx).Where("id IN ?", assetIDs).Find(&assets).Error; err != nil {
		return nil, classify("holdings", err)
	}

	prices := lo.SliceToMap(assets, func(a *models.Asset) (string, decimal.Decimal) {
		return a.ID, a.Price
	})
	for _, h := range holdings {
		h.CurrentPrice = prices[h.AssetID]
	}

	return holdings, nil
}

func (b *Backend) Transactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	q := b.tx(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var txs []*models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, classify("transactions", err)
	}

	return txs, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (b *Backend) Watchlists(ctx context.Context, userID string) ([]*models.Watchlist, error) {
	var watchlists []*models.Watchlist
	if err := b.tx(ctx).Preload("Items", orderedItems).Where("user_id = ?", userID).Order("created_at ASC").Find(&watchlists).Error; err != nil {
		return nil, classify("watchlists", err)
	}

	return watchlists, nil
}

func (b *Backend) CreateWatchlist(ctx context.Context, watchlist *models.Watchlist) error {
	return classify("create_watchlist", b.tx(ctx).Create(watchlist).Error)
}

func (b *Backend) watchlist(tx *gorm.DB, userID, watchlistID string) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	if err := tx.Preload("Items", orderedItems).Where("id = ? AND user_id = ?", watchlistID, userID).First(&watchlist).Error; err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// AddWatchlistAsset appends assetID to the list. Adding an asset twice is a no-op.
func (b *Backend) AddWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error) {
	var result *models.Watchlist

	err := b.tx(ctx).Transaction(func(tx *gorm.DB) error {
		watchlist, err := b.watchlist(tx, userID, watchlistID)
		if err != nil {
			return err
		}

		if watchlist.Contains(assetID) {
			result = watchlist
			return nil
		}

		var asset models.Asset
		if err := tx.Where("id = ?", assetID).First(&asset).Error; err != nil {
			return err
		}

		now := b.now()
		item := models.WatchlistItem{
			WatchlistID: watchlist.ID,
			AssetID:     assetID,
			Position:    len(watchlist.Items),
			CreatedAt:   now,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(watchlist).Update("updated_at", now).Error; err != nil {
			return err
		}

		watchlist.Items = append(watchlist.Items, item)
		result = watchlist

		return nil
	})
	if err != nil {
		return nil, classify("add_watchlist_asset", err)
	}

	return result, nil
}

func (b *Backend) RemoveWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error) {
	var result *models.Watchlist

	err := b.tx(ctx).Transaction(func(tx *gorm.DB) error {
		watchlist, err := b.watchlist(tx, userID, watchlistID)
		if err != nil {
			return err
		}
		if !watchlist.Contains(assetID) {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("watchlist_id = ? AND asset_id = ?", watchlist.ID, assetID).Delete(&models.WatchlistItem{}).Error; err != nil {
			return err
		}

		items := lo.Reject(watchlist.Items, func(item models.WatchlistItem, _ int) bool { return item.AssetID == assetID })
		for i := range items {
			if items[i].Position == i {
				continue
			}
			items[i].Position = i
			if err := tx.Model(&items[i]).Update("position", i).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(watchlist).Update("updated_at", b.now()).Error; err != nil {
			return err
		}

		watchlist.Items = items
		result = watchlist

		return nil
	})
	if err != nil {
		return nil, classify("remove_watchlist_asset", err)
	}

	return result, nil
}

// TokenSale returns the most recently started sale with its allocations.
func (b *Backend) TokenSale(ctx context.Context) (*models.TokenSale, error) {
	var sale models.TokenSale
	err := b.tx(ctx).
		Preload("Allocations", orderedItems).
		Order("start_time DESC").
		First(&sale).Error
	if err != nil {
		return nil, classify("token_sale", err)
	}

	return &sale, nil
}

func (b *Backend) InsertTokenPurchase(ctx context.Context, purchase *models.TokenPurchase) error {
	err := b.tx(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.TokenSale
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("start_time DESC").First(&sale).Error; err != nil {
			return err
		}

		if purchase.Tokens.GreaterThan(sale.Remaining()) {
			return types.NewFetchError("token_purchase", types.FetchRejected, ErrSaleSoldOut)
		}

		// The sale row lock serialises purchases, so the sum cannot move under us.
		spent := decimal.Zero
		err := tx.Model(&models.TokenPurchase{}).
			Select("COALESCE(SUM(contribution), 0)").
			Where("token_sale_id = ? AND user_id = ?", sale.ID, purchase.UserID).
			Row().Scan(&spent)
		if err != nil {
			return err
		}
		if sale.ExceedsUserLimit(spent, purchase.Contribution) {
			return types.NewFetchError("token_purchase", types.FetchRejected, models.ErrLimitPerUserExceeded)
		}

		if purchase.ID == uuid.Nil {
			purchase.ID = uuid.New()
		}
		purchase.TokenSaleID = sale.ID

		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		return tx.Model(&sale).Updates(map[string]interface{}{
			"sold_quantity": sale.SoldQuantity.Add(purchase.Tokens),
			"updated_at":    b.now(),
		}).Error
	})

	return classify("token_purchase", err)
}

func (b *Backend) TokenPurchases(ctx context.Context, userID string) ([]*models.TokenPurchase, error) {
	var purchases []*models.TokenPurchase
	if err := b.tx(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, classify("token_purchases", err)
	}

	return purchases, nil
}
