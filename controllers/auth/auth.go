package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/models"
)

const (
	currentUserKey = "CurrentUser"
	tokenKey       = "SessionToken"
)

// BearerToken returns the token of the Authorization header, if any.
func BearerToken(c *fiber.Ctx) string {
	token := c.Get("Authorization")

	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func SetCurrentUser(c *fiber.Ctx, user *models.Profile, token string) {
	c.Locals(currentUserKey, user)
	c.Locals(tokenKey, token)
}

func GetCurrentUser(c *fiber.Ctx) *models.Profile {
	user, _ := c.Locals(currentUserKey).(*models.Profile)

	return user
}

func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)

	return token
}
