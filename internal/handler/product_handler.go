package handler

import (
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists the catalog with normalized prices
// GET /api/v1/products?search=&category=&min_price=&max_price=&sort=name|price_asc|price_desc
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	query := service.ProductQuery{
		ProductFilter: repository.ProductFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		},
		Sort: service.ProductSort(c.Query("sort", string(service.SortByName))),
	}
	var err error
	if query.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return badRequest(c, err)
	}
	if query.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return badRequest(c, err)
	}

	products, err := h.service.ListProducts(query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GET /api/v1/products/categories
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}
