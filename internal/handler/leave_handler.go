package handler

import (
	"strconv"

	"oa-portal/internal/middleware"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LeaveHandler struct {
	leave *usecase.LeaveUsecase
}

func NewLeaveHandler(leave *usecase.LeaveUsecase) *LeaveHandler {
	return &LeaveHandler{leave: leave}
}

type SubmitLeaveRequest struct {
	Type      string `json:"type" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	var req SubmitLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type, startDate, endDate and reason are required"})
	}

	created, err := h.leave.Submit(middleware.UserID(c), usecase.SubmitLeaveInput{
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
}

func (h *LeaveHandler) My(c *fiber.Ctx) error {
	list, err := h.leave.ListMine(middleware.UserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *LeaveHandler) ToApprove(c *fiber.Ctx) error {
	list, err := h.leave.ListToApprove(middleware.UserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

// AllPending backs the admin leave panel; role-gated in the routes.
func (h *LeaveHandler) AllPending(c *fiber.Ctx) error {
	list, err := h.leave.ListAllPending()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

type DecisionRequest struct {
	Comment string `json:"comment"`
}

func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, true)
}

func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *LeaveHandler) decide(c *fiber.Ctx, approve bool) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request id"})
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	decided, err := h.leave.Decide(middleware.UserID(c), middleware.Roles(c), uint(id), approve, req.Comment)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": decided})
}
