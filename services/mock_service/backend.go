// Package mock_service is the in-memory backend used in demo mode. Every user
// gets a private copy of the static data set on first access.
package mock_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/types"
)

var _ api_service.Backend = (*Backend)(nil)

var (
	ErrAssetNotFound     = errors.New("market.asset.not_found")
	ErrOrderNotFound     = errors.New("market.order.not_found")
	ErrPortfolioNotFound = errors.New("account.portfolio.not_found")
	ErrWatchlistNotFound = errors.New("account.watchlist.not_found")
	ErrSaleSoldOut       = errors.New("token_sale.sold_out")
)

// orderComparator orders by insertion sequence, so the tree's last node is the newest order.
func orderComparator(a, b interface{}) int {
	this := a.(uint64)
	that := b.(uint64)

	switch {
	case this < that:
		return -1
	case this > that:
		return 1
	default:
		return 0
	}
}

type account struct {
	orders       *redblacktree.Tree
	orderSeq     map[uuid.UUID]uint64
	portfolios   []*models.Portfolio
	holdings     map[string][]*models.Holding
	transactions []*models.Transaction
	watchlists   []*models.Watchlist
	purchases    []*models.TokenPurchase
	touchedAt    time.Time
}

type Backend struct {
	mu       sync.RWMutex
	now      func() time.Time
	seededAt time.Time
	assets   []*models.Asset
	sale     *models.TokenSale
	accounts map[string]*account
	seq      uint64
	itemSeq  uint64
}

func New() *Backend {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Backend {
	seededAt := now()

	return &Backend{
		now:      now,
		seededAt: seededAt,
		assets:   SeedAssets(seededAt),
		sale:     SeedTokenSale(seededAt),
		accounts: make(map[string]*account),
		itemSeq:  1000,
	}
}

func notFound(op string, err error) error {
	return types.NewFetchError(op, types.FetchNotFound, err)
}

// accountFor must be called with the write lock held.
func (b *Backend) accountFor(userID string) *account {
	if acc, ok := b.accounts[userID]; ok {
		acc.touchedAt = b.now()
		return acc
	}

	portfolios, holdings := SeedPortfolios(userID, b.seededAt)
	acc := &account{
		orders:       redblacktree.NewWith(orderComparator),
		orderSeq:     make(map[uuid.UUID]uint64),
		portfolios:   portfolios,
		holdings:     make(map[string][]*models.Holding),
		transactions: SeedTransactions(userID, b.seededAt),
		watchlists:   SeedWatchlists(userID, b.seededAt),
		touchedAt:    b.now(),
	}

	for _, h := range holdings {
		acc.holdings[h.PortfolioID] = append(acc.holdings[h.PortfolioID], h)
	}

	for _, o := range SeedOrders(userID, b.seededAt) {
		b.seq++
		acc.orders.Put(b.seq, o)
		acc.orderSeq[o.ID] = b.seq
	}

	b.accounts[userID] = acc

	return acc
}

// Forget drops the user's sandbox. The next access reseeds it.
func (b *Backend) Forget(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.accounts, userID)
}

// Sweep drops every sandbox untouched for longer than idle and returns how
// many were removed.
func (b *Backend) Sweep(idle time.Duration) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-idle)
	removed := 0
	for userID, acc := range b.accounts {
		if acc.touchedAt.Before(cutoff) {
			delete(b.accounts, userID)
			removed++
		}
	}

	return removed
}

// Sandboxes returns the number of live sandboxes.
func (b *Backend) Sandboxes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.accounts)
}

func (b *Backend) findAsset(symbol string) *models.Asset {
	for _, a := range b.assets {
		if a.Symbol == symbol {
			return a
		}
	}

	return nil
}

func (b *Backend) findAssetByID(id string) *models.Asset {
	for _, a := range b.assets {
		if a.ID == id {
			return a
		}
	}

	return nil
}

func (b *Backend) Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	assets := lo.Filter(b.assets, func(a *models.Asset, _ int) bool {
		return len(class) == 0 || class == types.AssetClassAll || a.AssetClass == class
	})

	return lo.Map(assets, func(a *models.Asset, _ int) *models.Asset {
		return a.Clone()
	}), nil
}

func (b *Backend) Asset(ctx context.Context, symbol string) (*models.Asset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	asset := b.findAsset(symbol)
	if asset == nil {
		return nil, notFound("asset", fmt.Errorf("%w: %s", ErrAssetNotFound, symbol))
	}

	return asset.Clone(), nil
}

func (b *Backend) UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for id, price := range prices {
		if asset := b.findAssetByID(id); asset != nil {
			asset.ApplyPrice(price, now)
		}
	}

	return nil
}

func (b *Backend) InsertOrder(ctx context.Context, order *models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.accountFor(order.UserID)

	b.seq++
	acc.orders.Put(b.seq, order.Clone())
	acc.orderSeq[order.ID] = b.seq

	return nil
}

func (b *Backend) Orders(ctx context.Context, userID string, limit int) ([]*models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.accountFor(userID)
	orders := make([]*models.Order, 0, acc.orders.Size())

	it := acc.orders.Iterator()
	for it.End(); it.Prev(); {
		if limit > 0 && len(orders) >= limit {
			break
		}
		orders = append(orders, it.Value().(*models.Order).Clone())
	}

	return orders, nil
}

func (b *Backend) Order(ctx context.Context, userID string, id uuid.UUID) (*models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.accountFor(userID)
	seq, ok := acc.orderSeq[id]
	if !ok {
		return nil, notFound("order", ErrOrderNotFound)
	}

	value, _ := acc.orders.Get(seq)

	return value.(*models.Order).Clone(), nil
}

func (b *Backend) UpdateOrder(ctx context.Context, order *models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.accountFor(order.UserID)
	seq, ok := acc.orderSeq[order.ID]
	if !ok {
		return notFound("order", ErrOrderNotFound)
	}

	acc.orders.Put(seq, order.Clone())

	return nil
}

func (b *Backend) Portfolios(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return lo.Map(b.accountFor(userID).portfolios, func(p *models.Portfolio, _ int) *models.Portfolio {
		return p.Clone()
	}), nil
}

func (b *Backend) Holdings(ctx context.Context, userID, portfolioID string) ([]*models.Holding, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.accountFor(userID)
	if _, ok := lo.Find(acc.portfolios, func(p *models.Portfolio) bool { return p.ID == portfolioID }); !ok {
		return nil, notFound("holdings", ErrPortfolioNotFound)
	}

	holdings := make([]*models.Holding, 0, len(acc.holdings[portfolioID]))
	for _, h := range acc.holdings[portfolioID] {
		c := h.Clone()
		if asset := b.findAssetByID(h.AssetID); asset != nil {
			c.CurrentPrice = asset.Price
		}
		holdings = append(holdings, c)
	}

	return holdings, nil
}

func (b *Backend) Transactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	txs := b.accountFor(userID).transactions
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	return lo.Map(txs, func(t *models.Transaction, _ int) *models.Transaction {
		return t.Clone()
	}), nil
}

func (b *Backend) Watchlists(ctx context.Context, userID string) ([]*models.Watchlist, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return lo.Map(b.accountFor(userID).watchlists, func(w *models.Watchlist, _ int) *models.Watchlist {
		return w.Clone()
	}), nil
}

func (b *Backend) CreateWatchlist(ctx context.Context, watchlist *models.Watchlist) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(watchlist.ID) == 0 {
		watchlist.ID = uuid.NewString()
	}

	acc := b.accountFor(watchlist.UserID)
	acc.watchlists = append(acc.watchlists, watchlist.Clone())

	return nil
}

func (b *Backend) watchlist(acc *account, watchlistID string) *models.Watchlist {
	w, _ := lo.Find(acc.watchlists, func(w *models.Watchlist) bool { return w.ID == watchlistID })
	return w
}

// AddWatchlistAsset appends assetID to the list. Adding an asset twice is a no-op.
func (b *Backend) AddWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := b.watchlist(b.accountFor(userID), watchlistID)
	if w == nil {
		return nil, notFound("watchlist", ErrWatchlistNotFound)
	}
	if b.findAssetByID(assetID) == nil {
		return nil, notFound("watchlist", ErrAssetNotFound)
	}

	if !w.Contains(assetID) {
		b.itemSeq++
		now := b.now()
		w.Items = append(w.Items, models.WatchlistItem{
			ID:          b.itemSeq,
			WatchlistID: w.ID,
			AssetID:     assetID,
			Position:    len(w.Items),
			CreatedAt:   now,
		})
		w.UpdatedAt = now
	}

	return w.Clone(), nil
}

func (b *Backend) RemoveWatchlistAsset(ctx context.Context, userID, watchlistID, assetID string) (*models.Watchlist, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := b.watchlist(b.accountFor(userID), watchlistID)
	if w == nil {
		return nil, notFound("watchlist", ErrWatchlistNotFound)
	}
	if !w.Contains(assetID) {
		return nil, notFound("watchlist", ErrAssetNotFound)
	}

	items := lo.Reject(w.Items, func(item models.WatchlistItem, _ int) bool { return item.AssetID == assetID })
	for i := range items {
		items[i].Position = i
	}
	w.Items = items
	w.UpdatedAt = b.now()

	return w.Clone(), nil
}

func (b *Backend) TokenSale(ctx context.Context) (*models.TokenSale, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sale.Clone(), nil
}

func (b *Backend) InsertTokenPurchase(ctx context.Context, purchase *models.TokenPurchase) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if purchase.Tokens.GreaterThan(b.sale.Remaining()) {
		return types.NewFetchError("token_purchase", types.FetchRejected, ErrSaleSoldOut)
	}

	acc := b.accountFor(purchase.UserID)

	spent := decimal.Zero
	for _, p := range acc.purchases {
		spent = spent.Add(p.Contribution)
	}
	if b.sale.ExceedsUserLimit(spent, purchase.Contribution) {
		return types.NewFetchError("token_purchase", types.FetchRejected, models.ErrLimitPerUserExceeded)
	}

	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	now := b.now()
	purchase.TokenSaleID = b.sale.ID
	purchase.CreatedAt = now
	purchase.UpdatedAt = now

	b.sale.SoldQuantity = b.sale.SoldQuantity.Add(purchase.Tokens)
	b.sale.UpdatedAt = now

	acc.purchases = append([]*models.TokenPurchase{purchase.Clone()}, acc.purchases...)

	return nil
}

// TokenPurchases returns the user's purchases newest first.
func (b *Backend) TokenPurchases(ctx context.Context, userID string) ([]*models.TokenPurchase, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return lo.Map(b.accountFor(userID).purchases, func(p *models.TokenPurchase, _ int) *models.TokenPurchase {
		return p.Clone()
	}), nil
}
