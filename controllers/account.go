package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/api_service"
)

type CreateWatchlistParams struct {
	Name string `json:"name" form:"name" validate:"required|maxLen:64"`
}

func (p CreateWatchlistParams) Messages() map[string]string {
	return helpers.VaildateMessage("account.watchlist")
}

func (h *Handler) GetPortfolios(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)
	ctx := c.UserContext()

	portfolios, err := fetchWithFallback(h, c, func(api *api_service.API) ([]entities.PortfolioEntity, error) {
		portfolios, err := api.Portfolio.Portfolios(ctx, CurrentUser)
		if err != nil {
			return nil, err
		}

		out := make([]entities.PortfolioEntity, 0, len(portfolios))
		for _, p := range portfolios {
			holdings, err := api.Portfolio.Holdings(ctx, CurrentUser, p.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, p.ToJSON(holdings))
		}

		return out, nil
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(portfolios)
}

func (h *Handler) GetHoldings(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)
	portfolioID := c.Params("id")

	holdings, err := fetchWithFallback(h, c, func(api *api_service.API) ([]*models.Holding, error) {
		return api.Portfolio.Holdings(c.UserContext(), CurrentUser, portfolioID)
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Map(holdings, func(holding *models.Holding, _ int) entities.HoldingEntity {
		return holding.ToJSON()
	}))
}

func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	transactions, err := fetchWithFallback(h, c, func(api *api_service.API) ([]*models.Transaction, error) {
		return api.Transaction.Transactions(c.UserContext(), CurrentUser)
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Map(transactions, func(t *models.Transaction, _ int) entities.TransactionEntity {
		return t.ToJSON()
	}))
}

func (h *Handler) GetWatchlists(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	watchlists, err := h.App.API.Watchlist.Watchlists(c.UserContext(), CurrentUser)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Map(watchlists, func(w *models.Watchlist, _ int) entities.WatchlistEntity {
		return w.ToJSON()
	}))
}

func (h *Handler) CreateWatchlist(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	errs := new(helpers.Errors)
	payload := new(CreateWatchlistParams)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	helpers.Vaildate(payload, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	watchlist, err := h.App.API.Watchlist.Create(c.UserContext(), CurrentUser, payload.Name)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(watchlist.ToJSON())
}

func (h *Handler) AddWatchlistAsset(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	watchlist, err := h.App.API.Watchlist.AddAsset(c.UserContext(), CurrentUser, c.Params("id"), c.Params("asset_id"))
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(watchlist.ToJSON())
}

func (h *Handler) RemoveWatchlistAsset(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	watchlist, err := h.App.API.Watchlist.RemoveAsset(c.UserContext(), CurrentUser, c.Params("id"), c.Params("asset_id"))
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(watchlist.ToJSON())
}
