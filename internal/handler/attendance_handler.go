package handler

import (
	"oa-portal/internal/middleware"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendance *usecase.AttendanceUsecase
}

func NewAttendanceHandler(attendance *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	record, err := h.attendance.CheckIn(middleware.UserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "checked in",
		"status":  record.Status,
		"time":    record.CheckInTime,
	})
}

func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	record, err := h.attendance.CheckOut(middleware.UserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "checked out",
		"status":  record.Status,
		"time":    record.CheckOutTime,
	})
}

func (h *AttendanceHandler) My(c *fiber.Ctx) error {
	list, err := h.attendance.My(middleware.UserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}
