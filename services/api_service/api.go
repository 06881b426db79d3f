package api_service

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/price_service"
	"github.com/zsmartex/tradedesk/types"
)

const DefaultOrdersLimit = 20

var ErrNoUser = errors.New("authz.invalid_session")

type Options struct {
	DemoMode bool
	// OrdersLimit caps Trading.Orders on the remote backend. The mock backend is unbounded.
	OrdersLimit       int
	TransactionsLimit int
	Events            EventPublisher
	Now               func() time.Time
	Logger            *logrus.Entry
}

// API is the facade between handlers and the mock or remote backend.
type API struct {
	remote    Backend
	mock      Backend
	demo      *atomic.Bool
	forceMock bool
	opts      Options

	MarketData  *MarketDataAPI
	Trading     *TradingAPI
	Portfolio   *PortfolioAPI
	Transaction *TransactionAPI
	Watchlist   *WatchlistAPI
	TokenSale   *TokenSaleAPI
}

// New builds the facade. remote may be nil, in which case every call uses mock.
func New(remote, mock Backend, opts Options) *API {
	if opts.OrdersLimit <= 0 {
		opts.OrdersLimit = DefaultOrdersLimit
	}
	if opts.TransactionsLimit <= 0 {
		opts.TransactionsLimit = 100
	}
	if opts.Events == nil {
		opts.Events = nopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = config.Logger.WithField("component", "api")
	}

	a := &API{
		remote: remote,
		mock:   mock,
		demo:   new(atomic.Bool),
		opts:   opts,
	}
	a.demo.Store(opts.DemoMode)
	a.bind()

	return a
}

func (a *API) bind() {
	a.MarketData = &MarketDataAPI{api: a}
	a.Trading = &TradingAPI{api: a}
	a.Portfolio = &PortfolioAPI{api: a}
	a.Transaction = &TransactionAPI{api: a}
	a.Watchlist = &WatchlistAPI{api: a}
	a.TokenSale = &TokenSaleAPI{api: a}
}

// SetDemoMode toggles the mock backend for every caller.
func (a *API) SetDemoMode(on bool) {
	a.demo.Store(on)
	a.opts.Logger.WithField("demo_mode", on).Info("demo mode changed")
}

func (a *API) DemoMode() bool {
	return a.demo.Load()
}

// Fallback returns a view of the facade pinned to the mock backend.
func (a *API) Fallback() *API {
	f := &API{
		remote:    a.remote,
		mock:      a.mock,
		demo:      a.demo,
		forceMock: true,
		opts:      a.opts,
	}
	f.bind()

	return f
}

func (a *API) usesMock(user *models.Profile) bool {
	return a.forceMock || a.remote == nil || a.demo.Load() || user.IsDemo()
}

func (a *API) backend(user *models.Profile) Backend {
	if a.usesMock(user) {
		return a.mock
	}

	return a.remote
}

func (a *API) now() time.Time {
	return a.opts.Now()
}

func (a *API) publish(user *models.Profile, event string, payload interface{}) {
	a.enqueue("private", user.ID, event, payload)
}

func (a *API) enqueue(kind, id, event string, payload interface{}) {
	buf, err := json.Marshal(payload)
	if err != nil {
		a.opts.Logger.WithError(err).Errorf("failed to encode %s event", event)
		return
	}

	if err := a.opts.Events.EnqueueEvent(kind, id, event, buf); err != nil {
		a.opts.Logger.WithError(err).WithField("event", event).Warn("failed to publish event")
	}
}

// BroadcastPrices forwards every price update as a public ticker event,
// routed as "public.<symbol>.ticker". The returned func stops forwarding.
func (a *API) BroadcastPrices(prices *price_service.Service) (stop func()) {
	return prices.Subscribe(func(updates price_service.Updates) {
		for _, update := range updates {
			a.enqueue("public", update.Symbol, "ticker", update)
		}
	})
}

func requireUser(op string, user *models.Profile) error {
	if user == nil {
		return types.NewFetchError(op, types.FetchInvalid, ErrNoUser)
	}

	return nil
}
