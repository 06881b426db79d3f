// Package order_entry_service holds the state of the order-entry panel and
// turns it into an order draft on submit.
package order_entry_service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

var (
	ErrNoAsset          = errors.New("market.order.missing_symbol")
	ErrInvalidAmount    = errors.New("market.order.non_positive_amount")
	ErrInvalidPrice     = errors.New("market.order.non_positive_price")
	ErrInvalidStopPrice = errors.New("market.order.non_positive_stop_price")
	ErrInvalidSide      = errors.New("market.order.invalid_side")
	ErrInvalidType      = errors.New("market.order.invalid_order_type")
	ErrInvalidTimeForce = errors.New("market.order.invalid_time_in_force")
	ErrSubmitInFlight   = errors.New("market.order.submit_in_flight")
)

type Placer interface {
	PlaceOrder(ctx context.Context, user *models.Profile, draft models.OrderDraft) (*models.Order, error)
}

// Form is the order-entry panel state. Inputs are kept as typed text.
type Form struct {
	mu     sync.Mutex
	placer Placer
	user   *models.Profile

	symbol      string
	side        types.OrderSide
	orderType   types.OrderType
	amount      string
	price       string
	stopPrice   string
	timeInForce types.TimeInForce
	submitting  bool
}

func NewForm(placer Placer, user *models.Profile) *Form {
	return &Form{
		placer:      placer,
		user:        user,
		side:        types.SideBuy,
		orderType:   types.TypeMarket,
		timeInForce: types.TimeInForceGTC,
	}
}

// State is a snapshot of the form inputs.
type State struct {
	Symbol      string
	Side        types.OrderSide
	OrderType   types.OrderType
	Amount      string
	Price       string
	StopPrice   string
	TimeInForce types.TimeInForce
	Submitting  bool
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Symbol:      f.symbol,
		Side:        f.side,
		OrderType:   f.orderType,
		Amount:      f.amount,
		Price:       f.price,
		StopPrice:   f.stopPrice,
		TimeInForce: f.timeInForce,
		Submitting:  f.submitting,
	}
}

func (f *Form) SelectAsset(symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.symbol = strings.ToUpper(strings.TrimSpace(symbol))
}

func (f *Form) SetSide(side types.OrderSide) error {
	if side != types.SideBuy && side != types.SideSell {
		return ErrInvalidSide
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.side = side

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}

func (f *Form) SetOrderType(orderType types.OrderType) error {
	if !contains(types.OrderTypes, orderType) {
		return ErrInvalidType
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.orderType = orderType

	return nil
}

func (f *Form) SetTimeInForce(tif types.TimeInForce) error {
	if !contains(types.TimeInForces, tif) {
		return ErrInvalidTimeForce
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.timeInForce = tif

	return nil
}

func (f *Form) SetAmount(amount string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.amount = strings.TrimSpace(amount)
}

func (f *Form) SetPrice(price string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.price = strings.TrimSpace(price)
}

func (f *Form) SetStopPrice(stopPrice string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopPrice = strings.TrimSpace(stopPrice)
}

func parsePositive(input string, invalid error) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(input)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, invalid
	}

	return value, nil
}

// draft must be called with the lock held.
func (f *Form) draft() (models.OrderDraft, error) {
	if len(f.symbol) == 0 {
		return models.OrderDraft{}, ErrNoAsset
	}

	amount, err := parsePositive(f.amount, ErrInvalidAmount)
	if err != nil {
		return models.OrderDraft{}, err
	}

	draft := models.OrderDraft{
		Symbol:      f.symbol,
		Side:        f.side,
		OrderType:   f.orderType,
		Amount:      amount,
		TimeInForce: f.timeInForce,
	}

	if types.NeedsPrice(f.orderType) {
		price, err := parsePositive(f.price, ErrInvalidPrice)
		if err != nil {
			return models.OrderDraft{}, err
		}
		draft.Price = decimal.NewNullDecimal(price)
	}

	if types.NeedsStopPrice(f.orderType) {
		stop, err := parsePositive(f.stopPrice, ErrInvalidStopPrice)
		if err != nil {
			return models.OrderDraft{}, err
		}
		draft.StopPrice = decimal.NewNullDecimal(stop)
	}

	return draft, nil
}

// Submit sends the current inputs as an order. Amount, price and stop price
// are cleared once the placement resolves, whether it succeeded or not.
func (f *Form) Submit(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	draft, err := f.draft()
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}

	f.submitting = true
	f.mu.Unlock()

	order, err := f.placer.PlaceOrder(ctx, f.user, draft)

	f.mu.Lock()
	f.submitting = false
	f.amount = ""
	f.price = ""
	f.stopPrice = ""
	f.mu.Unlock()

	return order, err
}

// Total estimates amount × price, using marketPrice for orders without a
// limit price. It is zero while the inputs do not parse.
func (f *Form) Total(marketPrice decimal.Decimal) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()

	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return decimal.Zero
	}

	price := marketPrice
	if types.NeedsPrice(f.orderType) {
		price, err = decimal.NewFromString(f.price)
		if err != nil {
			return decimal.Zero
		}
	}

	return amount.Mul(price)
}
