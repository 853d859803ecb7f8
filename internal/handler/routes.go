package handler

import (
	"go-sales-crm/internal/middleware"
	"go-sales-crm/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Customer  *CustomerHandler
	Product   *ProductHandler
	Interview *InterviewHandler
	Sale      *SaleHandler
	Dashboard *DashboardHandler
	Location  *LocationHandler
}

// RegisterRoutes mounts the API on router. Everything except login and token
// validation requires a bearer token.
func RegisterRoutes(router fiber.Router, h Handlers, auth middleware.Authenticator) {
	api := router.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/validate-token", h.Auth.ValidateToken)
	authGroup.Get("/me", middleware.RequireAuth(auth), h.Auth.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(auth))
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Dashboard
	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/sales-trend", h.Dashboard.GetSalesTrend)

	// Customers
	protected.Get("/customers", h.Customer.GetCustomers)
	protected.Get("/customers/:id", h.Customer.GetCustomer)
	protected.Post("/customers", h.Customer.CreateCustomer)
	protected.Put("/customers/:id", h.Customer.UpdateCustomer)
	protected.Delete("/customers/:id", adminOnly, h.Customer.DeleteCustomer)

	// Products (read-only catalog)
	protected.Get("/products", h.Product.GetProducts)
	protected.Get("/products/categories", h.Product.GetCategories)
	protected.Get("/products/:id", h.Product.GetProduct)

	// Interviews
	protected.Get("/interviews", h.Interview.GetInterviews)
	protected.Get("/interviews/operators", h.Interview.GetOperators)
	protected.Get("/interviews/:id", h.Interview.GetInterview)
	protected.Post("/interviews", h.Interview.CreateInterview)
	protected.Put("/interviews/:id", h.Interview.UpdateInterview)
	protected.Delete("/interviews/:id", adminOnly, h.Interview.DeleteInterview)

	// Sales
	protected.Get("/sales", h.Sale.GetSales)
	protected.Post("/sales/quote", h.Sale.Quote)
	protected.Get("/sales/:id", h.Sale.GetSale)
	protected.Post("/sales", h.Sale.CreateSale)
	protected.Put("/sales/:id", h.Sale.UpdateSale)
	protected.Delete("/sales/:id", adminOnly, h.Sale.DeleteSale)

	// Locations
	protected.Get("/locations/cities", h.Location.GetCities)
	protected.Get("/locations/cities/:id/towns", h.Location.GetTowns)

	// User management
	users := protected.Group("/users", adminOnly)
	users.Get("/", h.User.GetUsers)
	users.Post("/", h.User.CreateUser)
	users.Delete("/:id", h.User.DeleteUser)
}
