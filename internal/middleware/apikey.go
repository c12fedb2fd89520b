package middleware

// apikey.go — authentication for the external analytics API. External
// consumers (the Discord bot, reporting dashboards) authenticate with a
// pre-shared key rather than a user session, since there is no human behind
// those requests.

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/config"
)

// APIKey returns a middleware handler that requires a valid pre-shared key in
// the X-API-Key header (or, for clients that can't set headers, an api_key
// query parameter). Keys are configured via EXTERNAL_API_KEYS.
func APIKey(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "API key required",
				"message": "provide an API key in the X-API-Key header or api_key parameter",
			})
		}

		for _, valid := range cfg.ExternalAPIKeys {
			if key == valid {
				return c.Next()
			}
		}

		// Log only a prefix — enough to correlate a misconfigured client
		// without writing credentials into the logs.
		log.Warn().Str("key_prefix", keyPrefix(key)).Msg("invalid external API key attempted")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "invalid API key",
			"message": "the provided API key is not valid",
		})
	}
}

func keyPrefix(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8]
}
