package identity_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/server"
)

type Handler struct {
	App *server.App
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.SignUpParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	helpers.Vaildate(payload, errors)
	payload.CheckPasswords(errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	session, err := h.App.Sessions.SignUp(c.UserContext(), payload.Email, payload.Password, payload.Username)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(session.ToJSON())
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.SignInParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{helpers.InvalidMessageBody},
		})
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	session, err := h.App.Sessions.SignIn(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(session.ToJSON())
}

// EnterDemo issues a session for a fresh demo user backed by mock data.
func (h *Handler) EnterDemo(c *fiber.Ctx) error {
	session, err := h.App.Sessions.EnterDemo(c.UserContext())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(session.ToJSON())
}

func (h *Handler) SignOut(c *fiber.Ctx) error {
	if err := h.App.Sessions.SignOut(c.UserContext(), auth.GetToken(c)); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.SendStatus(204)
}

func (h *Handler) GetMe(c *fiber.Ctx) error {
	return c.Status(200).JSON(auth.GetCurrentUser(c).ToJSON())
}
