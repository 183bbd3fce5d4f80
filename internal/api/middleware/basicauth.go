package middleware

import (
	"crypto/subtle"

	"coffee-chat-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

const basicAuthRealm = "Restricted"

// BasicAuth guards every request with the single configured credential pair.
func BasicAuth(cfg config.BasicAuthConfig) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: basicAuthRealm,
		Authorizer: func(user, pass string) bool {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
			return userOK && passOK
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+basicAuthRealm+`"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		},
	})
}
