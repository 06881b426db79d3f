package api_service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/services/mock_service"
	"github.com/zsmartex/tradedesk/services/price_service"
	"github.com/zsmartex/tradedesk/types"
)

// remoteStub stands in for the datastore; methods it does not override panic.
type remoteStub struct {
	api_service.Backend
	err        error
	orderLimit int
}

func (r *remoteStub) Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error) {
	return nil, r.err
}

func (r *remoteStub) Orders(ctx context.Context, userID string, limit int) ([]*models.Order, error) {
	r.orderLimit = limit
	return nil, nil
}

type event struct {
	kind, id, name string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (p *recordingPublisher) EnqueueEvent(kind string, id string, name string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event{kind, id, name})
	return nil
}

type APITestSuite struct {
	suite.Suite
	ctx    context.Context
	remote *remoteStub
	events *recordingPublisher
	api    *api_service.API
	user   *models.Profile
}

func (s *APITestSuite) SetupTest() {
	s.ctx = context.Background()
	s.remote = &remoteStub{err: types.NewFetchError("assets", types.FetchUnavailable, errors.New("connection refused"))}
	s.events = &recordingPublisher{}
	s.api = api_service.New(s.remote, mock_service.New(), api_service.Options{Events: s.events})
	s.user = &models.Profile{ID: "U1", Email: "u1@example.com", Role: models.RoleMember}
}

func (s *APITestSuite) TestDemoModeReturnsMockAssets() {
	s.api.SetDemoMode(true)

	assets, err := s.api.MarketData.Assets(s.ctx, nil, "")
	s.Require().NoError(err)

	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.Symbol)
	}
	s.ElementsMatch([]string{"BTC", "ETH", "USDT", "AAPL", "TSLA"}, symbols)
}

func (s *APITestSuite) TestRemoteFailureIsReported() {
	_, err := s.api.MarketData.Assets(s.ctx, s.user, "")
	s.True(types.IsTemporary(err))
}

func (s *APITestSuite) TestDemoUserUsesMock() {
	demo := &models.Profile{ID: "demo-1", Role: models.RoleDemo, Demo: true}

	assets, err := s.api.MarketData.Assets(s.ctx, demo, types.AssetClassCrypto)
	s.Require().NoError(err)
	s.Len(assets, 3)
}

func (s *APITestSuite) TestUnknownAssetClass() {
	_, err := s.api.MarketData.Assets(s.ctx, nil, "bonds")
	s.True(types.IsInvalid(err))
}

func (s *APITestSuite) TestFallbackOnTransientError() {
	assets, degraded, err := api_service.WithFallback(
		func() ([]*models.Asset, error) { return s.api.MarketData.Assets(s.ctx, s.user, "") },
		func() ([]*models.Asset, error) { return s.api.Fallback().MarketData.Assets(s.ctx, s.user, "") },
	)
	s.Require().NoError(err)
	s.True(degraded)
	s.Len(assets, 5)
	s.False(s.api.DemoMode())
}

func (s *APITestSuite) TestNoFallbackOnPermanentError() {
	s.remote.err = types.NewFetchError("assets", types.FetchNotFound, errors.New("missing"))

	called := false
	_, degraded, err := api_service.WithFallback(
		func() ([]*models.Asset, error) { return s.api.MarketData.Assets(s.ctx, s.user, "") },
		func() ([]*models.Asset, error) { called = true; return nil, nil },
	)
	s.True(types.IsNotFound(err))
	s.False(degraded)
	s.False(called)
}

func (s *APITestSuite) TestPlaceOrderCreatesPendingRecord() {
	s.api.SetDemoMode(true)

	order, err := s.api.Trading.PlaceOrder(s.ctx, s.user, models.OrderDraft{
		Symbol: "BTC",
		Side:   types.SideBuy,
		Amount: decimal.RequireFromString("0.25"),
	})
	s.Require().NoError(err)
	s.Equal(types.StatusPending, order.Status)
	s.True(order.FilledAmount.IsZero())
	s.Equal(types.TimeInForceGTC, order.TimeInForce)
	s.Equal(types.TypeMarket, order.OrderType)
	s.Equal("1", order.AssetID)
	s.NoError(order.Validate())

	orders, err := s.api.Trading.Orders(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(order.ID, orders[0].ID)

	s.Require().Len(s.events.events, 1)
	s.Equal(event{"private", "U1", "order"}, s.events.events[0])
}

func (s *APITestSuite) TestPlaceOrderUnknownSymbol() {
	s.api.SetDemoMode(true)

	_, err := s.api.Trading.PlaceOrder(s.ctx, s.user, models.OrderDraft{Symbol: "NOPE", Amount: decimal.NewFromInt(1)})
	s.True(types.IsNotFound(err))
}

func (s *APITestSuite) TestPlaceOrderRequiresUser() {
	_, err := s.api.Trading.PlaceOrder(s.ctx, nil, models.OrderDraft{Symbol: "BTC"})
	s.ErrorIs(err, api_service.ErrNoUser)
}

func (s *APITestSuite) TestMockOrdersUnbounded() {
	s.api.SetDemoMode(true)

	before, err := s.api.Trading.Orders(s.ctx, s.user)
	s.Require().NoError(err)

	for i := 0; i < 25; i++ {
		_, err := s.api.Trading.PlaceOrder(s.ctx, s.user, models.OrderDraft{Symbol: "ETH", Side: types.SideSell, Amount: decimal.NewFromInt(1)})
		s.Require().NoError(err)
	}

	orders, err := s.api.Trading.Orders(s.ctx, s.user)
	s.Require().NoError(err)
	s.Len(orders, len(before)+25)
}

func (s *APITestSuite) TestRemoteOrdersCapped() {
	_, err := s.api.Trading.Orders(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(api_service.DefaultOrdersLimit, s.remote.orderLimit)
}

func (s *APITestSuite) TestCancelOrder() {
	s.api.SetDemoMode(true)

	order, err := s.api.Trading.PlaceOrder(s.ctx, s.user, models.OrderDraft{Symbol: "AAPL", Side: types.SideBuy, Amount: decimal.NewFromInt(3)})
	s.Require().NoError(err)

	cancelled, err := s.api.Trading.CancelOrder(s.ctx, s.user, order.ID)
	s.Require().NoError(err)
	s.Equal(types.StatusCancelled, cancelled.Status)

	_, err = s.api.Trading.CancelOrder(s.ctx, s.user, order.ID)
	s.True(types.IsInvalid(err))
	s.ErrorIs(err, models.ErrOrderNotCancellable)

	stored, err := s.api.Trading.Order(s.ctx, s.user, order.ID)
	s.Require().NoError(err)
	s.Equal(types.StatusCancelled, stored.Status)
}

func (s *APITestSuite) TestPortfolioAndWatchlist() {
	s.api.SetDemoMode(true)

	portfolios, err := s.api.Portfolio.Portfolios(s.ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(portfolios, 1)

	holdings, err := s.api.Portfolio.Holdings(s.ctx, s.user, portfolios[0].ID)
	s.Require().NoError(err)
	s.Len(holdings, 3)

	created, err := s.api.Watchlist.Create(s.ctx, s.user, "Tech")
	s.Require().NoError(err)

	updated, err := s.api.Watchlist.AddAsset(s.ctx, s.user, created.ID, "4")
	s.Require().NoError(err)
	s.Equal([]string{"4"}, updated.AssetIDs())

	updated, err = s.api.Watchlist.RemoveAsset(s.ctx, s.user, created.ID, "4")
	s.Require().NoError(err)
	s.Empty(updated.AssetIDs())
}

func (s *APITestSuite) TestRecordPurchase() {
	s.api.SetDemoMode(true)

	purchase := &models.TokenPurchase{Contribution: decimal.NewFromInt(50), Tokens: decimal.NewFromInt(1000)}
	s.Require().NoError(s.api.TokenSale.RecordPurchase(s.ctx, s.user, purchase))
	s.Equal("U1", purchase.UserID)

	purchases, err := s.api.TokenSale.Purchases(s.ctx, s.user)
	s.Require().NoError(err)
	s.Len(purchases, 1)
	s.Equal(event{"private", "U1", "token_purchase"}, s.events.events[0])
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestWithFallbackPrimarySuccess(t *testing.T) {
	v, degraded, err := api_service.WithFallback(
		func() (int, error) { return 1, nil },
		func() (int, error) { return 2, nil },
	)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 1, v)
}

func TestWithFallbackBothFail(t *testing.T) {
	primary := types.NewFetchError("x", types.FetchUnavailable, errors.New("timeout"))

	_, degraded, err := api_service.WithFallback(
		func() (int, error) { return 0, primary },
		func() (int, error) { return 0, errors.New("also broken") },
	)
	assert.ErrorIs(t, err, primary)
	assert.False(t, degraded)
}

func TestNilRemoteUsesMock(t *testing.T) {
	api := api_service.New(nil, mock_service.New(), api_service.Options{})

	assets, err := api.MarketData.Assets(context.Background(), nil, types.AssetClassAll)
	require.NoError(t, err)
	assert.Len(t, assets, 5)
}

func TestBroadcastPricesPublishesTickers(t *testing.T) {
	events := &recordingPublisher{}
	mock := mock_service.New()
	api := api_service.New(nil, mock, api_service.Options{Events: events})
	prices := price_service.New(mock)

	stop := api.BroadcastPrices(prices)

	updates, err := prices.Tick(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, updates)

	require.Len(t, events.events, len(updates))
	symbols := make(map[string]bool)
	for _, e := range events.events {
		assert.Equal(t, "public", e.kind)
		assert.Equal(t, "ticker", e.name)
		symbols[e.id] = true
	}
	for _, u := range updates {
		assert.True(t, symbols[u.Symbol])
	}

	stop()
	_, err = prices.Tick(context.Background())
	require.NoError(t, err)
	assert.Len(t, events.events, len(updates))
}
