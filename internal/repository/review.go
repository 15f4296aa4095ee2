package repository

import (
	"context"
	"errors"

	"travelbuddy/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines persistence operations for trip and buddy reviews.
type ReviewRepository interface {
	UpsertTripReview(ctx context.Context, review *models.TripReview) error
	UpsertBuddyReview(ctx context.Context, review *models.BuddyReview) error
	GetTripReview(ctx context.Context, tripID, reviewerID uint) (*models.TripReview, error)
	ListBuddyReviews(ctx context.Context, tripID, reviewerID uint) ([]models.BuddyReview, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// UpsertTripReview overwrites rating and comment when the reviewer already
// reviewed the trip; resubmits are idempotent.
func (r *reviewRepository) UpsertTripReview(ctx context.Context, review *models.TripReview) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "reviewer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) UpsertBuddyReview(ctx context.Context, review *models.BuddyReview) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "reviewer_id"}, {Name: "buddy_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) GetTripReview(ctx context.Context, tripID, reviewerID uint) (*models.TripReview, error) {
	var review models.TripReview
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND reviewer_id = ?", tripID, reviewerID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListBuddyReviews(ctx context.Context, tripID, reviewerID uint) ([]models.BuddyReview, error) {
	var reviews []models.BuddyReview
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND reviewer_id = ?", tripID, reviewerID).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
