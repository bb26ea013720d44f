package handlers

import (
	"errors"
	"strconv"

	"inkwell/internal/core/domain"
	"inkwell/internal/core/services"
	"inkwell/internal/pkg/pagination"
	"inkwell/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MonetizationHandler handles admin monetization endpoints
type MonetizationHandler struct {
	payoutService *services.PayoutService
}

// NewMonetizationHandler creates a new monetization handler
func NewMonetizationHandler(payoutService *services.PayoutService) *MonetizationHandler {
	return &MonetizationHandler{
		payoutService: payoutService,
	}
}

// GetProfile handles getting a monetization profile (Admin only)
// @Summary Get monetization profile
// @Description Get a creator's monetization profile with balances (Admin only)
// @Tags Monetization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/monetization/{id} [get]
func (h *MonetizationHandler) GetProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid profile ID")
	}

	profile, err := h.payoutService.GetProfile(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Monetization profile not found")
		}
		return response.InternalServerError(c, "Failed to get monetization profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"profile": profile,
	})
}

// ProcessPayout handles processing a pending payout (Admin only)
// @Summary Process payout
// @Description Process the pending payout for a profile: creates a payout record, resets view counters and reconciles balances atomically (Admin only)
// @Tags Monetization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/monetization/{id}/payout [post]
func (h *MonetizationHandler) ProcessPayout(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid profile ID")
	}

	result, err := h.payoutService.ProcessPayout(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.NotFound(c, "Monetization profile not found")
		case errors.Is(err, domain.ErrPayoutBelowMinimum):
			return response.BadRequest(c, "Pending payout is below the minimum threshold")
		default:
			return response.InternalServerError(c, "Failed to process payout")
		}
	}

	return response.Success(c, "Payout processed successfully", result)
}

// ListCreatorPosts handles listing a creator's posts with accrual counters (Admin only)
// @Summary List creator posts
// @Description Get the posts whose view counters accrue toward a profile's pending payout (Admin only)
// @Tags Monetization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/monetization/{id}/posts [get]
func (h *MonetizationHandler) ListCreatorPosts(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid profile ID")
	}

	params := pagination.GetParams(c)

	posts, total, err := h.payoutService.ListCreatorPosts(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Monetization profile not found")
		}
		return response.InternalServerError(c, "Failed to list creator posts")
	}

	return response.Success(c, "Posts retrieved successfully", fiber.Map{
		"posts": posts,
		"meta":  pagination.GetMeta(params, total),
	})
}

// ListPayouts handles listing a profile's payout history (Admin only)
// @Summary List payouts
// @Description Get a paginated payout history for a profile (Admin only)
// @Tags Monetization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/monetization/{id}/payouts [get]
func (h *MonetizationHandler) ListPayouts(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid profile ID")
	}

	params := pagination.GetParams(c)

	payouts, total, err := h.payoutService.ListPayouts(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Monetization profile not found")
		}
		return response.InternalServerError(c, "Failed to list payouts")
	}

	return response.Success(c, "Payouts retrieved successfully", fiber.Map{
		"payouts": payouts,
		"meta":    pagination.GetMeta(params, total),
	})
}
