package handler

import (
	"log"

	"oa-portal/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// respondErr translates a usecase error into its HTTP response. Taxonomy
// errors are reported verbatim; anything else is a 500 with the detail kept
// server-side.
func respondErr(c *fiber.Ctx, err error) error {
	code := apperr.StatusCode(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
