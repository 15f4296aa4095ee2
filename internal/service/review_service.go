package service

import (
	"context"

	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
)

// ReviewService provides trip and buddy review business logic.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	tripRepo   repository.TripRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, tripRepo repository.TripRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		tripRepo:   tripRepo,
	}
}

// SubmitReviewInput carries a review submission.
type SubmitReviewInput struct {
	TripID         uint
	ReviewType     models.ReviewType
	Rating         int
	Comment        string
	ReviewedUserID uint
}

// SubmitReview upserts a trip or buddy review. The reviewer must be a
// participant of the trip; a buddy target must be another participant.
func (s *ReviewService) SubmitReview(ctx context.Context, reviewerID uint, input SubmitReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}

	if _, err := s.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return err
	}

	reviewer, err := s.tripRepo.GetParticipant(ctx, input.TripID, reviewerID)
	if err != nil {
		return err
	}
	if reviewer == nil {
		return models.NewForbiddenError("Only trip participants can submit reviews")
	}

	switch input.ReviewType {
	case models.ReviewTypeTrip:
		return s.reviewRepo.UpsertTripReview(ctx, &models.TripReview{
			TripID:     input.TripID,
			ReviewerID: reviewerID,
			Rating:     input.Rating,
			Comment:    input.Comment,
		})

	case models.ReviewTypeBuddy:
		if input.ReviewedUserID == 0 {
			return models.NewValidationError("Reviewed user is required for buddy reviews")
		}
		if input.ReviewedUserID == reviewerID {
			return models.NewValidationError("Cannot review yourself")
		}

		buddy, err := s.tripRepo.GetParticipant(ctx, input.TripID, input.ReviewedUserID)
		if err != nil {
			return err
		}
		if buddy == nil {
			return models.NewValidationError("Reviewed user is not a participant of this trip")
		}

		return s.reviewRepo.UpsertBuddyReview(ctx, &models.BuddyReview{
			TripID:     input.TripID,
			ReviewerID: reviewerID,
			BuddyID:    input.ReviewedUserID,
			Rating:     input.Rating,
			Comment:    input.Comment,
		})

	default:
		return models.NewValidationError("Invalid review type")
	}
}
