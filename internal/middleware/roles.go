package middleware

// roles.go — role-based access control. The platform has three roles: admin,
// coach, player. These gates sit on routes that mutate league state (filing
// substitute requests, for example) after Auth has established who is calling.

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose role
// matches one of the provided roles, responding 403 Forbidden otherwise:
//
//	api.Post("/substitute-requests", middleware.RequireRole("admin", "coach"), ...)
//
// It must run AFTER Auth, because Auth is what populates "userRole" in the
// request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role means Auth wasn't applied or failed silently. 403 rather
			// than 401: the caller may be authenticated but roleless.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}
		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
