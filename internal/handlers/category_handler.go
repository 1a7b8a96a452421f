package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories feeds the closed category set to the posting form.
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.Categories,
	})
}
