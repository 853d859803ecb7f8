package handler

import (
	"strconv"

	"go-sales-crm/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func queryDays(c *fiber.Ctx) int {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	return days
}

// GetDashboardStats returns overview statistics
// Query params: days (default 30)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(queryDays(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetSalesTrend returns daily sale counts and revenue for charts
func (h *DashboardHandler) GetSalesTrend(c *fiber.Ctx) error {
	days := queryDays(c)
	data, err := h.service.GetSalesTrend(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales trend"})
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
