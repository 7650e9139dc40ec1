package handler

import (
	"oa-portal/internal/middleware"
	"oa-portal/internal/repository"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ProfileHandler is the self-service surface: own profile, contact fields,
// password change. Role and manager edits belong to the admin handler.
type ProfileHandler struct {
	repo repository.UserRepository
}

func NewProfileHandler(repo repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.repo.FindByID(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(fiber.Map{"data": user})
}

type UpdateProfileRequest struct {
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	user, err := h.repo.FindByID(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	// Allow-list: only contact fields are self-editable.
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	if err := h.repo.Update(user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "oldPassword and newPassword are required"})
	}

	user, err := h.repo.FindByID(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "old password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return respondErr(c, err)
	}
	user.Password = string(hashed)

	if err := h.repo.Update(user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
