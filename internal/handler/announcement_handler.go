package handler

import (
	"oa-portal/internal/middleware"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementHandler(repo repository.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo}
}

func (h *AnnouncementHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	a := model.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatorID: middleware.UserID(c),
	}
	if err := h.repo.Create(&a); err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": a})
}
