package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/ecspl/league-api/internal/config"
)

func apiKeyApp(keys ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", APIKey(&config.Config{ExternalAPIKeys: keys}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAPIKey(t *testing.T) {
	app := apiKeyApp("valid-key-1", "valid-key-2")

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"no key", "", "", fiber.StatusUnauthorized},
		{"wrong key", "nope", "", fiber.StatusUnauthorized},
		{"valid header", "valid-key-1", "", fiber.StatusOK},
		{"second valid key", "valid-key-2", "", fiber.StatusOK},
		{"valid query param", "", "valid-key-1", fiber.StatusOK},
		{"wrong query param", "", "bogus", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/protected"
			if tt.query != "" {
				path += "?api_key=" + tt.query
			}
			req := httptest.NewRequest("GET", path, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAPIKeyNoKeysConfigured(t *testing.T) {
	// An empty key list locks the external API entirely.
	app := apiKeyApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-Key", "anything")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
