package token_sale_controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/server"
)

type Handler struct {
	App *server.App
}

type CreatePurchasePayload struct {
	Contribution decimal.Decimal `json:"contribution" form:"contribution"`
}

func (h *Handler) GetWallet(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	wallet, err := h.App.TokenSale.Wallet(c.UserContext(), CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(wallet.ToJSON())
}

func (h *Handler) ConnectWallet(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	wallet, err := h.App.TokenSale.ConnectWallet(c.UserContext(), CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(wallet.ToJSON())
}

func (h *Handler) DisconnectWallet(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if err := h.App.TokenSale.DisconnectWallet(c.UserContext(), CurrentUser); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.SendStatus(204)
}

func (h *Handler) CreatePurchase(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(CreatePurchasePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	purchase, err := h.App.TokenSale.BuyTokens(c.UserContext(), CurrentUser, payload.Contribution)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(purchase.ToJSON())
}

func (h *Handler) GetPurchases(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	purchases, err := h.App.API.TokenSale.Purchases(c.UserContext(), CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Map(purchases, func(p *models.TokenPurchase, _ int) entities.TokenPurchaseEntity {
		return p.ToJSON()
	}))
}
