package middleware

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AllowedHosts rejects requests whose Host header is not in the allow-list.
// A leading dot matches the domain and every subdomain; "*" matches anything.
func AllowedHosts(hosts []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !HostAllowed(c.Hostname(), hosts) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid host header"})
		}
		return c.Next()
	}
}

func HostAllowed(host string, allowed []string) bool {
	host = strings.ToLower(stripPort(host))
	if host == "" {
		return false
	}
	for _, pattern := range allowed {
		pattern = strings.ToLower(pattern)
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if host == pattern[1:] || strings.HasSuffix(host, pattern) {
				return true
			}
		case host == pattern:
			return true
		}
	}
	return false
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(host, "[]")
}
