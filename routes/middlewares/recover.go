package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/controllers/helpers"
)

// Recover turns a panicking handler into a 500 response.
func Recover(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.WithFields(logrus.Fields{
				"path":  c.Path(),
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("handler panicked")

			err = c.Status(500).JSON(helpers.Errors{
				Errors: []string{helpers.ServerInternalError},
			})
		}
	}()

	return c.Next()
}
