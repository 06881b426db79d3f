package price_service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type fakeSource struct {
	mu     sync.Mutex
	assets []*models.Asset
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		assets: []*models.Asset{
			{ID: "1", Symbol: "BTC", Price: decimal.RequireFromString("43250.00"), Change24h: decimal.RequireFromString("2.45"), PricePrecision: 2},
			{ID: "2", Symbol: "ETH", Price: decimal.RequireFromString("2580.50"), Change24h: decimal.RequireFromString("1.85"), PricePrecision: 2},
			{ID: "3", Symbol: "USDT", Price: decimal.RequireFromString("1.00"), Change24h: decimal.RequireFromString("0.01"), PricePrecision: 4},
		},
	}
}

func (f *fakeSource) Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Asset, 0, len(f.assets))
	for _, a := range f.assets {
		out = append(out, a.Clone())
	}

	return out, nil
}

func (f *fakeSource) UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.assets {
		if p, ok := prices[a.ID]; ok {
			a.ApplyPrice(p, time.Now())
		}
	}

	return nil
}

func (f *fakeSource) price(id string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.assets {
		if a.ID == id {
			return a.Price
		}
	}

	return decimal.Zero
}

type failingRecorder struct{ calls int }

func (r *failingRecorder) Record(ctx context.Context, updates Updates) error {
	r.calls++
	return errors.New("influx down")
}

func TestTickStaysWithinJitter(t *testing.T) {
	source := newFakeSource()
	before, _ := source.Assets(context.Background(), "")
	svc := New(source, WithRand(rand.New(rand.NewSource(42))))

	var received Updates
	svc.Subscribe(func(updates Updates) { received = updates })

	updates, err := svc.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updates, received)
	require.Len(t, updates, len(before))

	lower := decimal.RequireFromString("0.99")
	upper := decimal.RequireFromString("1.01")
	for _, asset := range before {
		u, ok := updates[asset.ID]
		require.True(t, ok, asset.ID)

		assert.True(t, u.PreviousPrice.Equal(asset.Price))
		assert.True(t, u.Price.GreaterThanOrEqual(asset.RoundPrice(asset.Price.Mul(lower))), u.Price.String())
		assert.True(t, u.Price.LessThanOrEqual(asset.RoundPrice(asset.Price.Mul(upper))), u.Price.String())
		assert.True(t, source.price(asset.ID).Equal(u.Price))
		assert.LessOrEqual(t, -u.Price.Exponent(), asset.PricePrecision, u.Price.String())
	}
}

func TestZeroJitterKeepsPrices(t *testing.T) {
	source := newFakeSource()
	svc := New(source, WithJitter(0))

	updates, err := svc.Tick(context.Background())
	require.NoError(t, err)

	for _, u := range updates {
		assert.True(t, u.Price.Equal(u.PreviousPrice))
	}
}

func TestUnsubscribe(t *testing.T) {
	svc := New(newFakeSource())

	calls := 0
	unsubscribe := svc.Subscribe(func(Updates) { calls++ })

	_, err := svc.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe()

	_, err = svc.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestUnsubscribeDuringBroadcast(t *testing.T) {
	svc := New(newFakeSource())

	var unsubscribe func()
	calls := 0
	unsubscribe = svc.Subscribe(func(Updates) {
		calls++
		unsubscribe()
	})
	svc.Subscribe(func(Updates) {})

	svc.Publish(Updates{"1": {AssetID: "1"}})
	svc.Publish(Updates{"1": {AssetID: "1"}})

	assert.Equal(t, 1, calls)
}

func TestRecorderFailureDoesNotFailTick(t *testing.T) {
	recorder := &failingRecorder{}
	svc := New(newFakeSource(), WithRecorder(recorder))

	_, err := svc.Tick(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, recorder.calls)
}

func TestStartStop(t *testing.T) {
	svc := New(newFakeSource(), WithInterval(10*time.Millisecond))

	ticks := make(chan Updates, 16)
	svc.Subscribe(func(updates Updates) {
		select {
		case ticks <- updates:
		default:
		}
	})

	svc.Start(context.Background())
	svc.Start(context.Background())

	select {
	case updates := <-ticks:
		assert.Len(t, updates, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick received")
	}

	svc.Stop()
	svc.Stop()
}

func TestInfluxPoints(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	recorder := NewInfluxRecorder(nil, "tradedesk")

	bp, err := recorder.Points(Updates{
		"1": {AssetID: "1", Symbol: "BTC", Price: decimal.NewFromInt(43000), At: at},
		"2": {AssetID: "2", Symbol: "ETH", Price: decimal.NewFromInt(2500), At: at},
	})
	require.NoError(t, err)
	require.Len(t, bp.Points(), 2)
	assert.Equal(t, "tradedesk", bp.Database())

	for _, p := range bp.Points() {
		assert.Equal(t, Measurement, p.Name())
		assert.True(t, at.Equal(p.Time()))
	}
}
