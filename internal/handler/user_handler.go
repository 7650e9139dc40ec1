package handler

import (
	"strconv"

	"oa-portal/internal/middleware"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// UserHandler is the admin staff management surface.
type UserHandler struct {
	directory *usecase.DirectoryUsecase
}

func NewUserHandler(directory *usecase.DirectoryUsecase) *UserHandler {
	return &UserHandler{directory: directory}
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.Query("search"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) GetDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	user, err := h.directory.GetUser(uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

type CreateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RealName   string `json:"realName" validate:"required"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hireDate"`
	Role       string `json:"role"`
	ManagerID  *uint  `json:"managerId"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username, password and realName are required"})
	}

	user, err := h.directory.CreateUser(usecase.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		RealName:   req.RealName,
		Gender:     req.Gender,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		HireDate:   req.HireDate,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": user})
}

type UpdateUserRequest struct {
	RealName     *string `json:"realName"`
	Gender       *string `json:"gender"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Department   *string `json:"department"`
	Position     *string `json:"position"`
	Status       *string `json:"status"`
	Role         *string `json:"role"`
	ManagerID    *uint   `json:"managerId"`
	ClearManager bool    `json:"clearManager"`
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	user, err := h.directory.UpdateUser(uint(id), usecase.UpdateUserInput{
		RealName:     req.RealName,
		Gender:       req.Gender,
		Phone:        req.Phone,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		Status:       req.Status,
		Role:         req.Role,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	if err := h.directory.DeleteUser(middleware.UserID(c), uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Managers returns the candidates that may be picked as someone's manager.
func (h *UserHandler) Managers(c *fiber.Ctx) error {
	users, err := h.directory.ManagerCandidates()
	if err != nil {
		return respondErr(c, err)
	}

	type option struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		RealName string `json:"real_name"`
	}
	options := make([]option, 0, len(users))
	for _, u := range users {
		options = append(options, option{ID: u.ID, Username: u.Username, RealName: u.RealName})
	}
	return c.JSON(fiber.Map{"data": options})
}
