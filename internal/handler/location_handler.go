package handler

import (
	"strconv"

	"go-sales-crm/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	service service.LocationService
}

func NewLocationHandler(s service.LocationService) *LocationHandler {
	return &LocationHandler{service: s}
}

// GET /api/v1/locations/cities
func (h *LocationHandler) GetCities(c *fiber.Ctx) error {
	cities, err := h.service.GetCities()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cities)
}

// GET /api/v1/locations/cities/:id/towns
func (h *LocationHandler) GetTowns(c *fiber.Ctx) error {
	cityID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid city ID"})
	}
	towns, err := h.service.GetTowns(uint(cityID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(towns)
}
