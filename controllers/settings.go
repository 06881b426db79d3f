package controllers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/services/settings_service"
)

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	settings, err := h.App.Settings.Load(c.UserContext(), CurrentUser.ID)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(settings)
}

// UpdateSettings and ImportSettings both accept a document of any supported
// version; older documents are migrated before they are stored.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	return h.storeSettings(c, 200)
}

func (h *Handler) ImportSettings(c *fiber.Ctx) error {
	return h.storeSettings(c, 201)
}

func (h *Handler) storeSettings(c *fiber.Ctx, status int) error {
	CurrentUser := auth.GetCurrentUser(c)

	settings, err := settings_service.Import(bytes.NewReader(c.Body()))
	if err != nil {
		var verr *settings_service.ValidationError
		if errors.As(err, &verr) || errors.Is(err, settings_service.ErrUnsupportedVersion) {
			return helpers.ResponseError(c, err)
		}

		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	if err := h.App.Settings.Save(c.UserContext(), CurrentUser.ID, settings); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(status).JSON(settings)
}

func (h *Handler) ExportSettings(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	settings, err := h.App.Settings.Load(c.UserContext(), CurrentUser.ID)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	var buf bytes.Buffer
	if err := settings_service.Export(settings, &buf); err != nil {
		return helpers.ResponseError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tradedesk-settings.json"`)

	return c.Status(200).Send(buf.Bytes())
}
