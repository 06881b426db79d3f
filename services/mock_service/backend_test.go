package mock_service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type BackendTestSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	backend *Backend
}

func (s *BackendTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s.backend = NewWithClock(func() time.Time { return s.now })
}

func (s *BackendTestSuite) TestAssetsSeeded() {
	assets, err := s.backend.Assets(s.ctx, "")
	s.Require().NoError(err)

	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.Symbol)
	}
	s.Equal([]string{"BTC", "ETH", "USDT", "AAPL", "TSLA"}, symbols)
	s.Equal("1", assets[0].ID)
	s.True(assets[0].Price.Equal(decimal.RequireFromString("43250.00")))
}

func (s *BackendTestSuite) TestAssetsByClass() {
	stocks, err := s.backend.Assets(s.ctx, types.AssetClassStock)
	s.Require().NoError(err)
	s.Len(stocks, 2)
	for _, a := range stocks {
		s.Equal(types.AssetClassStock, a.AssetClass)
	}

	etfs, err := s.backend.Assets(s.ctx, types.AssetClassETF)
	s.Require().NoError(err)
	s.Empty(etfs)
}

func (s *BackendTestSuite) TestAssetNotFound() {
	_, err := s.backend.Asset(s.ctx, "DOGE")
	s.True(types.IsNotFound(err))
	s.ErrorIs(err, ErrAssetNotFound)
}

func (s *BackendTestSuite) TestAssetsAreCopies() {
	asset, err := s.backend.Asset(s.ctx, "BTC")
	s.Require().NoError(err)
	asset.Price = decimal.Zero

	again, _ := s.backend.Asset(s.ctx, "BTC")
	s.False(again.Price.IsZero())
}

func (s *BackendTestSuite) TestSeedOrdersSatisfyInvariants() {
	orders, err := s.backend.Orders(s.ctx, DemoUserID, 0)
	s.Require().NoError(err)
	s.NotEmpty(orders)

	for _, o := range orders {
		s.NoError(o.Validate(), o.ID.String())
	}
}

func (s *BackendTestSuite) TestOrdersNewestFirst() {
	asset, _ := s.backend.Asset(s.ctx, "ETH")
	user := &models.Profile{ID: "u1"}

	first := models.NewOrder(user, asset, models.OrderDraft{Symbol: "ETH", Side: types.SideBuy, Amount: decimal.NewFromInt(1)}, s.now)
	second := models.NewOrder(user, asset, models.OrderDraft{Symbol: "ETH", Side: types.SideSell, Amount: decimal.NewFromInt(2)}, s.now)
	s.Require().NoError(s.backend.InsertOrder(s.ctx, first))
	s.Require().NoError(s.backend.InsertOrder(s.ctx, second))

	orders, err := s.backend.Orders(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Len(orders, len(SeedOrders("u1", s.now))+2)
	s.Equal(second.ID, orders[0].ID)
	s.Equal(first.ID, orders[1].ID)

	for i := 1; i < len(orders); i++ {
		s.False(orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}

	limited, err := s.backend.Orders(s.ctx, "u1", 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *BackendTestSuite) TestUsersAreIsolated() {
	asset, _ := s.backend.Asset(s.ctx, "BTC")
	order := models.NewOrder(&models.Profile{ID: "a"}, asset, models.OrderDraft{Amount: decimal.NewFromInt(1)}, s.now)
	s.Require().NoError(s.backend.InsertOrder(s.ctx, order))

	_, err := s.backend.Order(s.ctx, "b", order.ID)
	s.True(types.IsNotFound(err))

	got, err := s.backend.Order(s.ctx, "a", order.ID)
	s.Require().NoError(err)
	s.Equal(order.ID, got.ID)
}

func (s *BackendTestSuite) TestUpdateOrder() {
	asset, _ := s.backend.Asset(s.ctx, "BTC")
	order := models.NewOrder(&models.Profile{ID: "a"}, asset, models.OrderDraft{Amount: decimal.NewFromInt(1)}, s.now)
	s.Require().NoError(s.backend.InsertOrder(s.ctx, order))

	s.Require().NoError(order.Cancel(s.now))
	s.Require().NoError(s.backend.UpdateOrder(s.ctx, order))

	got, _ := s.backend.Order(s.ctx, "a", order.ID)
	s.Equal(types.StatusCancelled, got.Status)

	missing := order.Clone()
	missing.ID = uuid.New()
	s.True(types.IsNotFound(s.backend.UpdateOrder(s.ctx, missing)))
}

func (s *BackendTestSuite) TestUpdatePrices() {
	s.now = s.now.Add(time.Minute)
	s.Require().NoError(s.backend.UpdatePrices(s.ctx, map[string]decimal.Decimal{"1": decimal.NewFromInt(44000)}))

	btc, _ := s.backend.Asset(s.ctx, "BTC")
	s.True(btc.Price.Equal(decimal.NewFromInt(44000)))
	s.Equal(s.now, btc.UpdatedAt)

	holdings, err := s.backend.Holdings(s.ctx, DemoUserID, DemoUserID+":main")
	s.Require().NoError(err)
	s.True(holdings[0].CurrentPrice.Equal(decimal.NewFromInt(44000)))
}

func (s *BackendTestSuite) TestPortfolio() {
	portfolios, err := s.backend.Portfolios(s.ctx, DemoUserID)
	s.Require().NoError(err)
	s.Require().Len(portfolios, 1)
	s.True(portfolios[0].CashBalance.Equal(decimal.NewFromInt(10000)))
	s.True(portfolios[0].AvailableBalance.Equal(decimal.NewFromInt(8500)))

	holdings, err := s.backend.Holdings(s.ctx, DemoUserID, portfolios[0].ID)
	s.Require().NoError(err)
	s.Len(holdings, 3)

	_, err = s.backend.Holdings(s.ctx, DemoUserID, "other")
	s.True(types.IsNotFound(err))
}

func (s *BackendTestSuite) TestTransactionsNewestFirst() {
	txs, err := s.backend.Transactions(s.ctx, DemoUserID, 0)
	s.Require().NoError(err)
	for i := 1; i < len(txs); i++ {
		s.True(txs[i].CreatedAt.Before(txs[i-1].CreatedAt))
	}

	limited, _ := s.backend.Transactions(s.ctx, DemoUserID, 2)
	s.Len(limited, 2)
}

func (s *BackendTestSuite) TestWatchlists() {
	lists, err := s.backend.Watchlists(s.ctx, DemoUserID)
	s.Require().NoError(err)
	s.Require().Len(lists, 1)
	s.Equal("Favorites", lists[0].Name)
	s.Equal([]string{"1", "2", "5"}, lists[0].AssetIDs())

	w, err := s.backend.AddWatchlistAsset(s.ctx, DemoUserID, lists[0].ID, "4")
	s.Require().NoError(err)
	s.Equal([]string{"1", "2", "5", "4"}, w.AssetIDs())

	w, err = s.backend.AddWatchlistAsset(s.ctx, DemoUserID, lists[0].ID, "4")
	s.Require().NoError(err)
	s.Len(w.Items, 4)

	w, err = s.backend.RemoveWatchlistAsset(s.ctx, DemoUserID, lists[0].ID, "2")
	s.Require().NoError(err)
	s.Equal([]string{"1", "5", "4"}, w.AssetIDs())
	s.Equal(2, w.Items[2].Position)

	_, err = s.backend.AddWatchlistAsset(s.ctx, DemoUserID, lists[0].ID, "99")
	s.True(types.IsNotFound(err))

	created := &models.Watchlist{UserID: DemoUserID, Name: "Stocks"}
	s.Require().NoError(s.backend.CreateWatchlist(s.ctx, created))
	s.NotEmpty(created.ID)

	lists, _ = s.backend.Watchlists(s.ctx, DemoUserID)
	s.Len(lists, 2)
}

func (s *BackendTestSuite) TestTokenPurchase() {
	sale, err := s.backend.TokenSale(s.ctx)
	s.Require().NoError(err)
	sold := sale.SoldQuantity

	purchase := &models.TokenPurchase{UserID: DemoUserID, Contribution: decimal.NewFromInt(100), Tokens: decimal.NewFromInt(2000)}
	s.Require().NoError(s.backend.InsertTokenPurchase(s.ctx, purchase))
	s.NotEqual(uuid.Nil, purchase.ID)

	sale, _ = s.backend.TokenSale(s.ctx)
	s.True(sale.SoldQuantity.Equal(sold.Add(decimal.NewFromInt(2000))))

	purchases, err := s.backend.TokenPurchases(s.ctx, DemoUserID)
	s.Require().NoError(err)
	s.Len(purchases, 1)

	tooMany := &models.TokenPurchase{UserID: DemoUserID, Tokens: sale.Remaining().Add(decimal.NewFromInt(1))}
	err = s.backend.InsertTokenPurchase(s.ctx, tooMany)
	s.True(types.IsInvalid(err))
	s.ErrorIs(err, ErrSaleSoldOut)
}

func (s *BackendTestSuite) TestTokenPurchaseLimitPerUser() {
	first := &models.TokenPurchase{UserID: DemoUserID, Contribution: decimal.NewFromInt(6000), Tokens: decimal.NewFromInt(120000)}
	s.Require().NoError(s.backend.InsertTokenPurchase(s.ctx, first))

	second := &models.TokenPurchase{UserID: DemoUserID, Contribution: decimal.NewFromInt(6000), Tokens: decimal.NewFromInt(120000)}
	err := s.backend.InsertTokenPurchase(s.ctx, second)
	s.True(types.IsInvalid(err))
	s.ErrorIs(err, models.ErrLimitPerUserExceeded)

	other := &models.TokenPurchase{UserID: "U2", Contribution: decimal.NewFromInt(6000), Tokens: decimal.NewFromInt(120000)}
	s.NoError(s.backend.InsertTokenPurchase(s.ctx, other))

	purchases, _ := s.backend.TokenPurchases(s.ctx, DemoUserID)
	s.Len(purchases, 1)
}

func (s *BackendTestSuite) TestSweepDropsIdleSandboxes() {
	_, err := s.backend.Portfolios(s.ctx, "idle")
	s.Require().NoError(err)

	s.now = s.now.Add(30 * time.Minute)
	_, err = s.backend.Portfolios(s.ctx, "active")
	s.Require().NoError(err)
	s.Equal(2, s.backend.Sandboxes())

	s.now = s.now.Add(45 * time.Minute)
	s.Equal(1, s.backend.Sweep(time.Hour))
	s.Equal(1, s.backend.Sandboxes())

	s.backend.Forget("active")
	s.Zero(s.backend.Sandboxes())
}

func TestBackendTestSuite(t *testing.T) {
	suite.Run(t, new(BackendTestSuite))
}

func TestSeedTokenomicsSumTo100(t *testing.T) {
	sale := SeedTokenSale(time.Now())

	total := decimal.Zero
	for _, a := range sale.Allocations {
		total = total.Add(a.Percent)
	}

	assert.True(t, total.Equal(decimal.NewFromInt(100)))
	require.Len(t, sale.Allocations, 6)
	assert.Equal(t, "Public Sale", sale.Allocations[0].Category)
}
