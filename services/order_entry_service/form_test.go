package order_entry_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type fakePlacer struct {
	drafts  []models.OrderDraft
	err     error
	release chan struct{}
	entered chan struct{}
}

func (p *fakePlacer) PlaceOrder(ctx context.Context, user *models.Profile, draft models.OrderDraft) (*models.Order, error) {
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}

	p.drafts = append(p.drafts, draft)
	if p.err != nil {
		return nil, p.err
	}

	asset := &models.Asset{ID: "1", Symbol: draft.Symbol}
	return models.NewOrder(user, asset, draft, time.Now()), nil
}

var user = &models.Profile{ID: "U1"}

func TestDefaults(t *testing.T) {
	state := NewForm(&fakePlacer{}, user).State()

	assert.Equal(t, types.SideBuy, state.Side)
	assert.Equal(t, types.TypeMarket, state.OrderType)
	assert.Equal(t, types.TimeInForceGTC, state.TimeInForce)
}

func TestSubmitMarketOrder(t *testing.T) {
	placer := &fakePlacer{}
	form := NewForm(placer, user)
	form.SelectAsset("btc")
	form.SetAmount("0.5")
	form.SetPrice("40000")

	order, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, order.Status)

	require.Len(t, placer.drafts, 1)
	draft := placer.drafts[0]
	assert.Equal(t, "BTC", draft.Symbol)
	assert.True(t, draft.Amount.Equal(decimal.RequireFromString("0.5")))
	assert.False(t, draft.Price.Valid)
	assert.False(t, draft.StopPrice.Valid)

	state := form.State()
	assert.Empty(t, state.Amount)
	assert.Empty(t, state.Price)
	assert.Equal(t, "BTC", state.Symbol)
}

func TestSubmitStopLimitOrder(t *testing.T) {
	placer := &fakePlacer{}
	form := NewForm(placer, user)
	form.SelectAsset("ETH")
	require.NoError(t, form.SetSide(types.SideSell))
	require.NoError(t, form.SetOrderType(types.TypeStopLimit))
	require.NoError(t, form.SetTimeInForce(types.TimeInForceFOK))
	form.SetAmount("2")
	form.SetPrice("2500")
	form.SetStopPrice("2550")

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	draft := placer.drafts[0]
	assert.Equal(t, types.SideSell, draft.Side)
	assert.True(t, draft.Price.Valid)
	assert.True(t, draft.StopPrice.Decimal.Equal(decimal.NewFromInt(2550)))
	assert.Equal(t, types.TimeInForceFOK, draft.TimeInForce)
}

func TestSubmitStopLossCarriesOnlyStopPrice(t *testing.T) {
	placer := &fakePlacer{}
	form := NewForm(placer, user)
	form.SelectAsset("TSLA")
	require.NoError(t, form.SetOrderType(types.TypeStopLoss))
	form.SetAmount("1")
	form.SetPrice("200")
	form.SetStopPrice("230")

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, placer.drafts[0].Price.Valid)
	assert.True(t, placer.drafts[0].StopPrice.Valid)
}

func TestSubmitValidation(t *testing.T) {
	form := NewForm(&fakePlacer{}, user)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoAsset)

	form.SelectAsset("BTC")
	for _, amount := range []string{"", "abc", "0", "-1"} {
		form.SetAmount(amount)
		_, err = form.Submit(context.Background())
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}

	require.NoError(t, form.SetOrderType(types.TypeLimit))
	form.SetAmount("1")
	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Equal(t, "1", form.State().Amount)

	assert.ErrorIs(t, form.SetSide("hold"), ErrInvalidSide)
	assert.ErrorIs(t, form.SetOrderType("iceberg"), ErrInvalidType)
	assert.ErrorIs(t, form.SetTimeInForce("DAY"), ErrInvalidTimeForce)
}

func TestSubmitClearsInputsOnFailure(t *testing.T) {
	form := NewForm(&fakePlacer{err: errors.New("backend down")}, user)
	form.SelectAsset("BTC")
	form.SetAmount("1")

	_, err := form.Submit(context.Background())
	assert.Error(t, err)
	assert.Empty(t, form.State().Amount)
}

func TestSecondSubmitWhileInFlight(t *testing.T) {
	placer := &fakePlacer{release: make(chan struct{}), entered: make(chan struct{}, 1)}
	form := NewForm(placer, user)
	form.SelectAsset("BTC")
	form.SetAmount("1")

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	<-placer.entered
	assert.True(t, form.State().Submitting)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(placer.release)
	require.NoError(t, <-done)
	assert.False(t, form.State().Submitting)
	assert.Len(t, placer.drafts, 1)
}

func TestTotal(t *testing.T) {
	form := NewForm(&fakePlacer{}, user)
	form.SetAmount("2")

	assert.True(t, form.Total(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(200)))

	require.NoError(t, form.SetOrderType(types.TypeLimit))
	form.SetPrice("90")
	assert.True(t, form.Total(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(180)))

	form.SetPrice("")
	assert.True(t, form.Total(decimal.NewFromInt(100)).IsZero())
}
