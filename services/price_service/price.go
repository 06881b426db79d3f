// Package price_service simulates market movement: on every tick each asset
// price moves by a random factor within the configured jitter and the new
// prices are broadcast to subscribers.
package price_service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultJitter   = 0.01
)

type Source interface {
	Assets(ctx context.Context, class types.AssetClass) ([]*models.Asset, error)
	UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error
}

type Recorder interface {
	Record(ctx context.Context, updates Updates) error
}

type Update struct {
	AssetID       string          `json:"asset_id"`
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	Change24h     decimal.Decimal `json:"change_24h"`
	At            time.Time       `json:"at"`
}

// Updates is keyed by asset id.
type Updates map[string]Update

type Callback func(updates Updates)

type Service struct {
	source   Source
	interval time.Duration
	jitter   float64
	recorder Recorder
	now      func() time.Time
	logger   *logrus.Entry

	tickMu sync.Mutex
	rnd    *rand.Rand

	mu          sync.Mutex
	subscribers map[uint64]Callback
	nextID      uint64
	cancel      context.CancelFunc
	done        chan struct{}
}

type Option func(s *Service)

func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithJitter sets the maximum relative move per tick, e.g. 0.01 for ±1%.
func WithJitter(jitter float64) Option {
	return func(s *Service) {
		if jitter >= 0 && jitter < 1 {
			s.jitter = jitter
		}
	}
}

func WithRand(rnd *rand.Rand) Option {
	return func(s *Service) {
		s.rnd = rnd
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(source Source, opts ...Option) *Service {
	s := &Service{
		source:      source,
		interval:    DefaultInterval,
		jitter:      DefaultJitter,
		now:         time.Now,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		subscribers: make(map[uint64]Callback),
		logger:      config.Logger.WithField("component", "price_update"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers cb for every broadcast. Calling the returned function
// removes it; calling it more than once is harmless.
func (s *Service) Subscribe(cb Callback) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subscribers, id)
	}
}

// Publish sends updates to every current subscriber.
func (s *Service) Publish(updates Updates) {
	if len(updates) == 0 {
		return
	}

	s.mu.Lock()
	callbacks := make([]Callback, 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(updates)
	}
}

// Tick moves every asset price once, stores and records the result and
// broadcasts it.
func (s *Service) Tick(ctx context.Context) (Updates, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	assets, err := s.source.Assets(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	updates := make(Updates, len(assets))
	prices := make(map[string]decimal.Decimal, len(assets))

	for _, asset := range assets {
		factor := decimal.NewFromFloat(1 + (s.rnd.Float64()*2-1)*s.jitter)
		price := asset.RoundPrice(asset.Price.Mul(factor))

		moved := asset.Clone()
		moved.ApplyPrice(price, now)

		prices[asset.ID] = price
		updates[asset.ID] = Update{
			AssetID:       asset.ID,
			Symbol:        asset.Symbol,
			Price:         price,
			PreviousPrice: asset.Price,
			Change24h:     moved.Change24h,
			At:            now,
		}
	}

	if err := s.source.UpdatePrices(ctx, prices); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, updates); err != nil {
			s.logger.WithError(err).Warn("failed to record price tick")
		}
	}

	s.Publish(updates)

	return updates, nil
}

// Start runs ticks on one goroutine until ctx is done or Stop is called.
// Ticks never overlap; a slow tick makes the ticker drop the ones it missed.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Tick(ctx); err != nil {
					s.logger.WithError(err).Error("price tick failed")
				}
			}
		}
	}()

	s.logger.WithField("interval", s.interval).Info("price updates started")
}

// Stop halts the tick loop and waits for a running tick to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}
