package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/controllers/auth"
	"github.com/zsmartex/tradedesk/controllers/helpers"
	"github.com/zsmartex/tradedesk/services/session_service"
)

// Authenticate resolves the bearer token to a profile and stores it on the
// request for the handlers.
func Authenticate(sessions *session_service.Holder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.BearerToken(c)
		if len(token) == 0 {
			return c.Status(401).JSON(helpers.Errors{
				Errors: []string{helpers.AuthzInvalidSession},
			})
		}

		user, err := sessions.Authenticate(c.UserContext(), token)
		if err != nil {
			return helpers.ResponseError(c, err)
		}

		auth.SetCurrentUser(c, user, token)

		return c.Next()
	}
}
