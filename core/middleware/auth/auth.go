package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Header is the request header carrying the API key.
const Header = "X-API-Key"

// LocalsSubject is the fiber.Ctx locals key holding the subject of a verified token.
const LocalsSubject = "auth_subject"

// Config configures the authentication middleware.
type Config struct {
	// ApiKey is the expected key.
	ApiKey string
	// JWTSecret verifies HS256 bearer tokens.
	JWTSecret string
	// PublicPrefixes are path prefixes served without credentials.
	PublicPrefixes []string
}

// New returns a middleware accepting either the configured API key or a valid
// bearer token. With neither configured every request passes.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" && cfg.JWTSecret == "" {
			return c.Next()
		}
		for _, prefix := range cfg.PublicPrefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		if cfg.ApiKey != "" {
			key := c.Get(Header)
			if key == "" {
				key = c.Query("api_key")
			}
			if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) == 1 {
				return c.Next()
			}
		}

		if cfg.JWTSecret != "" {
			if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
				claims, err := ParseToken(cfg.JWTSecret, token)
				if err == nil {
					c.Locals(LocalsSubject, claims.Subject)
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing credentials",
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
