package server

import (
	"travelbuddy/internal/models"
	"travelbuddy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitReview handles POST /api/reviews. Submitting a second review for
// the same target updates the first.
func (s *Server) SubmitReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		TripID         uint   `json:"tripId"`
		ReviewType     string `json:"reviewType"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
		ReviewedUserID uint   `json:"reviewedUserId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TripID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("tripId is required"))
	}

	svcErr := s.reviewService.SubmitReview(c.Context(), userID, service.SubmitReviewInput{
		TripID:         req.TripID,
		ReviewType:     models.ReviewType(req.ReviewType),
		Rating:         req.Rating,
		Comment:        req.Comment,
		ReviewedUserID: req.ReviewedUserID,
	})
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review submitted successfully",
	})
}
