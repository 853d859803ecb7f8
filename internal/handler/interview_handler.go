package handler

import (
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	service service.InterviewService
}

func NewInterviewHandler(s service.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: s}
}

// GetInterviews lists interviews, newest first
// GET /api/v1/interviews?customer_id=&status=success|failed&operator=&from=&to=&search=
func (h *InterviewHandler) GetInterviews(c *fiber.Ctx) error {
	filter := repository.InterviewFilter{
		Status:   repository.InterviewStatus(c.Query("status")),
		Operator: c.Query("operator"),
		Search:   c.Query("search"),
	}
	switch filter.Status {
	case repository.InterviewStatusAny, repository.InterviewStatusSuccess, repository.InterviewStatusFailed:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status, use success or failed"})
	}

	var err error
	if filter.CustomerID, err = queryUUID(c, "customer_id"); err != nil {
		return badRequest(c, err)
	}
	if filter.From, err = queryDate(c, "from", false); err != nil {
		return badRequest(c, err)
	}
	if filter.To, err = queryDate(c, "to", true); err != nil {
		return badRequest(c, err)
	}

	interviews, err := h.service.ListInterviews(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(interviews)
}

// GET /api/v1/interviews/operators
func (h *InterviewHandler) GetOperators(c *fiber.Ctx) error {
	operators, err := h.service.ListOperators()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(operators)
}

// GET /api/v1/interviews/:id
func (h *InterviewHandler) GetInterview(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid interview ID"})
	}
	interview, err := h.service.GetInterview(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(interview)
}

// writeResult reports a saved interview. A failed sale derivation does not
// undo the save, so it is returned with the interview and a warning.
func writeResult(c *fiber.Ctx, status int, message string, res *service.InterviewResult, err error) error {
	if err != nil && (res == nil || !errors.Is(err, service.ErrSaleDerivationFailed)) {
		return respondError(c, err)
	}
	body := fiber.Map{
		"message":    message,
		"data":       res.Interview,
		"derivation": res.Outcome,
	}
	if err != nil {
		body["warning"] = service.ErrSaleDerivationFailed.Error()
	}
	return c.Status(status).JSON(body)
}

// POST /api/v1/interviews
func (h *InterviewHandler) CreateInterview(c *fiber.Ctx) error {
	var req service.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	res, err := h.service.CreateInterview(principal(c), &req)
	return writeResult(c, 201, "Interview created", res, err)
}

// PUT /api/v1/interviews/:id
func (h *InterviewHandler) UpdateInterview(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid interview ID"})
	}
	var req service.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	res, err := h.service.UpdateInterview(principal(c), id, &req)
	return writeResult(c, 200, "Interview updated", res, err)
}

// DELETE /api/v1/interviews/:id
func (h *InterviewHandler) DeleteInterview(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid interview ID"})
	}
	if err := h.service.DeleteInterview(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Interview deleted"})
}
