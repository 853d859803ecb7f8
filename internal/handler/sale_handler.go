package handler

import (
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// GetSales lists sales, newest first
// GET /api/v1/sales?customer_id=&status=active|canceled&platform=&from=&to=&min_total=&max_total=&search=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	query := service.SaleQuery{
		SaleFilter: repository.SaleFilter{
			Status:   repository.SaleStatus(c.Query("status")),
			Platform: model.Platform(c.Query("platform")),
			Search:   c.Query("search"),
		},
	}
	switch query.Status {
	case repository.SaleStatusAny, repository.SaleStatusActive, repository.SaleStatusCanceled:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status, use active or canceled"})
	}
	if query.Platform != "" && !query.Platform.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid platform"})
	}

	var err error
	if query.CustomerID, err = queryUUID(c, "customer_id"); err != nil {
		return badRequest(c, err)
	}
	if query.From, err = queryDate(c, "from", false); err != nil {
		return badRequest(c, err)
	}
	if query.To, err = queryDate(c, "to", true); err != nil {
		return badRequest(c, err)
	}
	if query.MinTotal, err = queryDecimal(c, "min_total"); err != nil {
		return badRequest(c, err)
	}
	if query.MaxTotal, err = queryDecimal(c, "max_total"); err != nil {
		return badRequest(c, err)
	}

	sales, err := h.service.ListSales(query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	sale, err := h.service.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	sale, err := h.service.CreateSale(principal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale created", "data": sale})
}

// PUT /api/v1/sales/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	sale, err := h.service.UpdateSale(principal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale updated", "data": sale})
}

// DELETE /api/v1/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	if err := h.service.DeleteSale(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

// Quote prices a draft without saving it
// POST /api/v1/sales/quote
func (h *SaleHandler) Quote(c *fiber.Ctx) error {
	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	quote, err := h.service.Quote(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}
