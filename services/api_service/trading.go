package api_service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

type TradingAPI struct {
	api *API
}

// PlaceOrder stores a pending order built from draft. The draft is not
// checked against balances or market prices.
func (t *TradingAPI) PlaceOrder(ctx context.Context, user *models.Profile, draft models.OrderDraft) (*models.Order, error) {
	if err := requireUser("trading.place_order", user); err != nil {
		return nil, err
	}

	backend := t.api.backend(user)

	asset, err := backend.Asset(ctx, draft.Symbol)
	if err != nil {
		return nil, err
	}

	order := models.NewOrder(user, asset, draft, t.api.now())
	if err := backend.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	t.api.opts.Logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"symbol":   order.Symbol,
		"side":     order.Side,
		"type":     order.OrderType,
	}).Debug("order placed")
	t.api.publish(user, "order", order.ToJSON())

	return order, nil
}

// Orders returns the user's orders newest first.
func (t *TradingAPI) Orders(ctx context.Context, user *models.Profile) ([]*models.Order, error) {
	if err := requireUser("trading.orders", user); err != nil {
		return nil, err
	}

	limit := 0
	if !t.api.usesMock(user) {
		limit = t.api.opts.OrdersLimit
	}

	return t.api.backend(user).Orders(ctx, user.ID, limit)
}

func (t *TradingAPI) Order(ctx context.Context, user *models.Profile, id uuid.UUID) (*models.Order, error) {
	if err := requireUser("trading.order", user); err != nil {
		return nil, err
	}

	return t.api.backend(user).Order(ctx, user.ID, id)
}

// CancelOrder moves a pending order to cancelled.
func (t *TradingAPI) CancelOrder(ctx context.Context, user *models.Profile, id uuid.UUID) (*models.Order, error) {
	if err := requireUser("trading.cancel_order", user); err != nil {
		return nil, err
	}

	backend := t.api.backend(user)

	order, err := backend.Order(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(t.api.now()); err != nil {
		if errors.Is(err, models.ErrOrderNotCancellable) {
			return nil, types.NewFetchError("trading.cancel_order", types.FetchRejected, err)
		}
		return nil, err
	}

	if err := backend.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	t.api.publish(user, "order", order.ToJSON())

	return order, nil
}
