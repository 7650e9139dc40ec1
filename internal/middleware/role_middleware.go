package middleware

import "github.com/gofiber/fiber/v2"

// Role gates a route on role membership. Runs after Auth, so a failure here
// is always 403, never 401: the caller is known, just not allowed.
func Role(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles := Roles(c)

		for _, allowed := range allowedRoles {
			for _, have := range userRoles {
				if have == allowed {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
	}
}
