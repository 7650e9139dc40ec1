package middleware

import (
	"strings"

	"oa-portal/internal/apperr"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "oa_session"

// Auth resolves the session token and stores the identity in the request
// context. The token comes from the session cookie; an Authorization Bearer
// header is accepted as a fallback for non-browser clients.
func Auth(auth *usecase.AuthUsecase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			header := c.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}

		user, err := auth.Resolve(token)
		if err != nil {
			if apperr.StatusCode(err) == fiber.StatusUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session check failed"})
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("roles", user.RoleNames())
		c.Locals("token", token)
		return c.Next()
	}
}

// UserID reads the authenticated user's id set by Auth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// Roles reads the authenticated user's role names set by Auth.
func Roles(c *fiber.Ctx) []string {
	roles, _ := c.Locals("roles").([]string)
	return roles
}
