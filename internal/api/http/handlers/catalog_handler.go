package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-service/internal/catalog"
)

// CatalogHandler serves the read-only course, fee and student endpoints.
type CatalogHandler struct{}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCourses handles GET /api/courses.
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	return c.JSON(catalog.Courses())
}

// ListFees handles GET /api/fees.
func (h *CatalogHandler) ListFees(c *fiber.Ctx) error {
	return c.JSON(catalog.Fees())
}

// FeesSummary handles GET /api/fees/summary.
func (h *CatalogHandler) FeesSummary(c *fiber.Ctx) error {
	return c.JSON(catalog.FeesSummary())
}

// ListStudents handles GET /api/students.
func (h *CatalogHandler) ListStudents(c *fiber.Ctx) error {
	return c.JSON(catalog.Students())
}

// SearchMarks handles GET /api/marks/search?q=.
func (h *CatalogHandler) SearchMarks(c *fiber.Ctx) error {
	return c.JSON(catalog.SearchMarks(c.Query("q")))
}
