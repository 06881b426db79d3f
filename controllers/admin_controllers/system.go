package admin_controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/server"
)

type Handler struct {
	App *server.App
}

type DemoModePayload struct {
	DemoMode bool `json:"demo_mode" form:"demo_mode"`
}

func (h *Handler) GetDemoMode(c *fiber.Ctx) error {
	return c.Status(200).JSON(DemoModePayload{DemoMode: h.App.API.DemoMode()})
}

// SetDemoMode switches every caller between the mock and remote backends.
func (h *Handler) SetDemoMode(c *fiber.Ctx) error {
	payload := new(DemoModePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	if !payload.DemoMode && h.App.Remote == nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.demo_mode.no_remote_backend"},
		})
	}

	h.App.API.SetDemoMode(payload.DemoMode)

	return c.Status(200).JSON(DemoModePayload{DemoMode: h.App.API.DemoMode()})
}

// RefreshAssets reloads the cached remote asset snapshot.
func (h *Handler) RefreshAssets(c *fiber.Ctx) error {
	if h.App.Remote == nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.assets.no_remote_backend"},
		})
	}

	assets, err := h.App.Remote.RefreshAssetSnapshot(c.UserContext())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(fiber.Map{"assets": len(assets)})
}

// TickPrices runs one simulated price move outside the timer.
func (h *Handler) TickPrices(c *fiber.Ctx) error {
	updates, err := h.App.Prices.Tick(c.UserContext())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(lo.Values(updates))
}
