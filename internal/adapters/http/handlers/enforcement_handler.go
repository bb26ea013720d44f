package handlers

import (
	"errors"
	"strconv"
	"strings"

	"inkwell/internal/core/domain"
	"inkwell/internal/core/services"
	"inkwell/internal/pkg/pagination"
	"inkwell/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EnforcementHandler handles admin enforcement endpoints
type EnforcementHandler struct {
	enforcementService *services.EnforcementService
}

// NewEnforcementHandler creates a new enforcement handler
func NewEnforcementHandler(enforcementService *services.EnforcementService) *EnforcementHandler {
	return &EnforcementHandler{
		enforcementService: enforcementService,
	}
}

// ApplyActionRequest represents apply action request body
type ApplyActionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// ApplyAction handles applying an enforcement action to a user (Admin only)
// @Summary Apply enforcement action
// @Description Apply WARNING, SUSPENSION, BAN or RESOLVE to a user; escalates to an automatic ban at 2+ pending violations (Admin only)
// @Tags Enforcement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Param body body ApplyActionRequest true "Action data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/enforcement/{id}/action [post]
func (h *EnforcementHandler) ApplyAction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ApplyActionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Reason) == "" {
		return response.BadRequest(c, "Reason is required")
	}

	result, err := h.enforcementService.ApplyAction(c.Context(), uint(id), req.Action, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInvalidAction):
			return response.BadRequest(c, "Action must be WARNING, SUSPENSION, BAN or RESOLVE")
		case errors.Is(err, domain.ErrEmptyReason):
			return response.BadRequest(c, "Reason is required")
		default:
			return response.InternalServerError(c, "Failed to apply enforcement action")
		}
	}

	return response.Success(c, "Enforcement action applied successfully", result)
}

// ListViolations handles listing a user's enforcement history (Admin only)
// @Summary List user violations
// @Description Get a paginated enforcement history for a user (Admin only)
// @Tags Enforcement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/enforcement/{id}/violations [get]
func (h *EnforcementHandler) ListViolations(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	params := pagination.GetParams(c)

	violations, total, err := h.enforcementService.ListViolations(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to list violations")
	}

	return response.Success(c, "Violations retrieved successfully", fiber.Map{
		"violations": violations,
		"meta":       pagination.GetMeta(params, total),
	})
}
