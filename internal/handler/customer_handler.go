package handler

import (
	"strconv"

	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// GetCustomers lists customers
// GET /api/v1/customers?search=&industry=&city=&has_email=
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Search:   c.Query("search"),
		Industry: c.Query("industry"),
		City:     c.Query("city"),
	}
	if raw := c.Query("has_email"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid has_email"})
		}
		filter.HasEmail = &v
	}

	customers, err := h.service.ListCustomers(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	detail, err := h.service.GetCustomer(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	customer, err := h.service.CreateCustomer(principal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	customer, err := h.service.UpdateCustomer(principal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	if err := h.service.DeleteCustomer(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
