package handler

import (
	"time"

	"oa-portal/internal/middleware"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth       *usecase.AuthUsecase
	sessionTTL time.Duration
}

func NewAuthHandler(auth *usecase.AuthUsecase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	user, token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"username": user.Username,
		"roles":    user.RoleNames(),
	})
}

// Me is the rehydration endpoint: the client calls it on startup to restore
// its authentication state. Runs behind Auth, so reaching here means the
// session resolved.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"username": c.Locals("username"),
		"roles":    middleware.Roles(c),
	})
}

// Logout invalidates the session server-side and tells the browser to drop
// the cookie. Not mounted behind Auth: logging out an expired or unknown
// token succeeds, which makes the call idempotent.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if err := h.auth.Logout(token); err != nil {
		return respondErr(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}
