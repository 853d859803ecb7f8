package handler

import (
	"time"

	"go-sales-crm/internal/middleware"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// principal returns the caller set by RequireAuth, or an anonymous user principal.
func principal(c *fiber.Ctx) model.Principal {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return model.Principal{Role: model.RoleUser}
	}
	return p
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.Newf("invalid %s", key)
	}
	return &id, nil
}

func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Newf("invalid %s", key)
	}
	return &d, nil
}

// queryDate accepts YYYY-MM-DD or RFC3339. endOfDay moves a bare date to
// the last instant of that day so "to" bounds are inclusive.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.Newf("invalid %s, use YYYY-MM-DD", key)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(400).JSON(fiber.Map{"error": err.Error()})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"error": verr.Error()}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		return c.Status(400).JSON(body)
	case errors.IsAny(err, service.ErrCustomerNotFound, service.ErrProductNotFound,
		service.ErrInterviewNotFound, service.ErrSaleNotFound, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, service.ErrEmailExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDeleteSelf):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	log.Errorf("%s %s: %+v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
