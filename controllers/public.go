package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/controllers/queries"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/services/market_service"
	"github.com/zsmartex/tradedesk/services/token_sale_service"
	"github.com/zsmartex/tradedesk/types"
)

type TokenSaleResponse struct {
	entities.TokenSaleEntity
	Countdown entities.CountdownEntity `json:"countdown"`
}

func (h *Handler) GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now())
}

func (h *Handler) GetAssets(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	params := new(queries.AssetFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidQuery},
		})
	}

	helpers.Vaildate(params, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	assets, err := fetchWithFallback(h, c, func(api *api_service.API) ([]*models.Asset, error) {
		return api.MarketData.Assets(c.UserContext(), nil, types.AssetClassAll)
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	assets = market_service.Filter(assets, params.Class, params.Search)
	if len(params.SortBy) > 0 {
		if assets, err = market_service.Sort(assets, params.SortBy, params.OrderBy); err != nil {
			return helpers.ResponseError(c, err)
		}
	}

	return c.Status(200).JSON(lo.Map(assets, func(a *models.Asset, _ int) entities.AssetEntity {
		return a.ToJSON()
	}))
}

func (h *Handler) GetAsset(c *fiber.Ctx) error {
	symbol := c.Params("symbol")

	asset, err := fetchWithFallback(h, c, func(api *api_service.API) (*models.Asset, error) {
		return api.MarketData.Asset(c.UserContext(), nil, symbol)
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(asset.ToJSON())
}

func (h *Handler) GetTokenSale(c *fiber.Ctx) error {
	sale, err := h.App.API.TokenSale.Sale(c.UserContext(), nil)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	now := time.Now()

	return c.Status(200).JSON(TokenSaleResponse{
		TokenSaleEntity: sale.ToJSON(now),
		Countdown:       token_sale_service.CountdownFor(sale, now).ToJSON(),
	})
}

func (h *Handler) GetTokenomics(c *fiber.Ctx) error {
	sale, err := h.App.API.TokenSale.Sale(c.UserContext(), nil)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	allocations, err := token_sale_service.Tokenomics(sale)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Map(allocations, func(a token_sale_service.Allocation, _ int) entities.AllocationEntity {
		return a.ToJSON()
	}))
}
