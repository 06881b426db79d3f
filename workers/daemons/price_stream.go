package daemons

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/price_service"
	"github.com/zsmartex/tradedesk/services/stream_service"
)

const reconnectDelay = 5 * time.Second

type PriceSink interface {
	Asset(ctx context.Context, symbol string) (*models.Asset, error)
	UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error
}

// PriceStream writes ticker prices from the data socket into the backend,
// records them when a recorder is set and republishes them to price
// subscribers.
type PriceStream struct {
	URL      string
	Symbols  []string
	Sink     PriceSink
	Prices   *price_service.Service
	Recorder price_service.Recorder

	logger *logrus.Entry
}

func NewPriceStream(url string, symbols []string, sink PriceSink, prices *price_service.Service) *PriceStream {
	return &PriceStream{
		URL:     url,
		Symbols: symbols,
		Sink:    sink,
		Prices:  prices,
		logger:  config.Logger.WithField("worker", "price_stream"),
	}
}

// Start keeps a connection open until ctx is done, reconnecting after failures.
func (w *PriceStream) Start(ctx context.Context) error {
	for {
		if err := w.session(ctx); err != nil {
			w.logger.WithError(err).Warn("price stream disconnected")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *PriceStream) session(ctx context.Context) error {
	client := stream_service.NewClient(w.URL, func(msg stream_service.Message) {
		w.Handle(ctx, msg)
	})

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	for _, symbol := range w.Symbols {
		if err := client.Subscribe(symbol); err != nil {
			return err
		}
	}

	return client.Run(ctx)
}

func (w *PriceStream) Handle(ctx context.Context, msg stream_service.Message) {
	switch m := msg.(type) {
	case stream_service.TickerMessage:
		if err := w.applyTicker(ctx, m); err != nil {
			w.logger.WithError(err).WithField("symbol", m.Symbol).Error("failed to apply ticker")
		}
	case stream_service.AckMessage:
		w.logger.WithField("symbol", m.Symbol).Debug(m.Action)
	case stream_service.ErrorMessage:
		w.logger.WithField("code", m.Code).Warn(m.Message)
	}
}

func (w *PriceStream) applyTicker(ctx context.Context, m stream_service.TickerMessage) error {
	if !m.Price.IsPositive() {
		return nil
	}

	asset, err := w.Sink.Asset(ctx, m.Symbol)
	if err != nil {
		return err
	}

	at := m.At
	if at.IsZero() {
		at = time.Now()
	}

	moved := asset.Clone()
	moved.ApplyPrice(m.Price, at)

	if err := w.Sink.UpdatePrices(ctx, map[string]decimal.Decimal{asset.ID: m.Price}); err != nil {
		return err
	}

	updates := price_service.Updates{
		asset.ID: {
			AssetID:       asset.ID,
			Symbol:        asset.Symbol,
			Price:         m.Price,
			PreviousPrice: asset.Price,
			Change24h:     moved.Change24h,
			At:            at,
		},
	}

	if w.Recorder != nil {
		if err := w.Recorder.Record(ctx, updates); err != nil {
			w.logger.WithError(err).Warn("failed to record ticker")
		}
	}

	if w.Prices != nil {
		w.Prices.Publish(updates)
	}

	return nil
}
