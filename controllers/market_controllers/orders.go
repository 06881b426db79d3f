package market_controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/controllers/queries"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/server"
)

var InvalidOrderID = "market.order.invalid_id"

type Handler struct {
	App *server.App
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	order, err := payload.CreateOrder(c.UserContext(), h.App.API.Trading, CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(order.ToJSON())
}

// EstimateOrder quotes the total of an order without placing it.
func (h *Handler) EstimateOrder(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	asset, err := h.App.API.MarketData.Asset(c.UserContext(), CurrentUser, strings.ToUpper(payload.Symbol))
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	estimate, err := payload.Estimate(h.App.API.Trading, CurrentUser, asset)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(estimate)
}

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	errors := new(helpers.Errors)
	params := new(queries.OrderFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidQuery},
		})
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	orders, err := h.App.API.Trading.Orders(c.UserContext(), CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	orders = lo.Filter(orders, func(o *models.Order, _ int) bool {
		if len(params.Symbol) > 0 && o.Symbol != params.Symbol {
			return false
		}
		if len(params.Status) > 0 && o.Status != params.Status {
			return false
		}
		if len(params.Side) > 0 && o.Side != params.Side {
			return false
		}
		return true
	})

	return c.Status(200).JSON(lo.Map(orders, func(o *models.Order, _ int) entities.OrderEntity {
		return o.ToJSON()
	}))
}

func orderID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))

	return id, err == nil
}

func (h *Handler) GetOrderByID(c *fiber.Ctx) error {
	id, ok := orderID(c)
	if !ok {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{InvalidOrderID},
		})
	}

	CurrentUser := auth.GetCurrentUser(c)

	order, err := h.App.API.Trading.Order(c.UserContext(), CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(order.ToJSON())
}

func (h *Handler) CancelOrderByID(c *fiber.Ctx) error {
	id, ok := orderID(c)
	if !ok {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{InvalidOrderID},
		})
	}

	CurrentUser := auth.GetCurrentUser(c)

	order, err := h.App.API.Trading.CancelOrder(c.UserContext(), CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(order.ToJSON())
}
