package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/server"
	"github.com/zsmartex/tradedesk/services/api_service"
)

const DataSourceHeader = "X-Data-Source"

type Handler struct {
	App *server.App
}

// fetchWithFallback runs a read against the facade and, when fallback is
// enabled, retries it on the mock backend after a transient failure. A
// degraded response is marked with the data source header.
func fetchWithFallback[T any](h *Handler, c *fiber.Ctx, fetch func(api *api_service.API) (T, error)) (T, error) {
	if !h.App.Config.App.Fallback {
		return fetch(h.App.API)
	}

	result, degraded, err := api_service.WithFallback(
		func() (T, error) { return fetch(h.App.API) },
		func() (T, error) { return fetch(h.App.API.Fallback()) },
	)
	if degraded {
		c.Set(DataSourceHeader, "fallback")
	}

	return result, err
}
