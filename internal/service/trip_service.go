package service

import (
	"context"
	"log/slog"
	"time"

	"travelbuddy/internal/middleware"
	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
)

// TripService provides trip lifecycle, participation and todo business logic.
type TripService struct {
	tripRepo   repository.TripRepository
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	mailer     Mailer
}

// NewTripService returns a new TripService.
func NewTripService(tripRepo repository.TripRepository, userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, mailer Mailer) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		mailer:     mailer,
	}
}

// CreateTripInput carries the fields accepted when creating a trip.
type CreateTripInput struct {
	Destination     string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Budget          float64
	IsPublic        *bool
	MaxParticipants int
}

// CreateTrip validates the input, creates the trip with its creator on the
// roster, and sends the confirmation email in the background. Mail failure
// is logged and never fails the request.
func (s *TripService) CreateTrip(ctx context.Context, creatorID uint, input CreateTripInput) (*models.Trip, error) {
	if input.Destination == "" {
		return nil, models.NewValidationError("Destination is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, models.NewValidationError("Start and end dates are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, models.NewValidationError("End date must be after start date")
	}
	if input.Budget <= 0 {
		return nil, models.NewValidationError("Budget is required")
	}

	maxParticipants := input.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = models.TripDefaultParticipants
	}
	if maxParticipants < models.TripMinParticipants || maxParticipants > models.TripMaxParticipants {
		return nil, models.NewValidationError("Max participants must be between 2 and 20")
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	trip := &models.Trip{
		Destination:     input.Destination,
		Description:     input.Description,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Budget:          input.Budget,
		IsPublic:        isPublic,
		MaxParticipants: maxParticipants,
		Status:          models.TripStatusOpen,
		CreatorID:       creatorID,
	}
	if err := s.tripRepo.CreateWithCreator(ctx, trip); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err == nil && creator.Email != "" {
		go func(email string, t models.Trip) {
			mailCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if mailErr := s.mailer.SendTripCreated(mailCtx, email, &t); mailErr != nil {
				middleware.Logger.Warn("trip creation email failed",
					slog.Any("trip_id", t.ID),
					slog.String("error", mailErr.Error()),
				)
			}
		}(creator.Email, *trip)
	}

	return s.tripRepo.GetByID(ctx, trip.ID)
}

// GetTrip returns a trip with participants and todos.
func (s *TripService) GetTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	return s.tripRepo.GetByID(ctx, tripID)
}

// ListPublicTrips returns all publicly visible trips.
func (s *TripService) ListPublicTrips(ctx context.Context) ([]models.Trip, error) {
	return s.tripRepo.ListPublic(ctx)
}

// ListMyTrips returns trips the user participates in.
func (s *TripService) ListMyTrips(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.tripRepo.ListByParticipant(ctx, userID)
}

// JoinTrip adds the user to the trip roster. Check order matters for the
// error the caller sees: existence, visibility, capacity, membership.
func (s *TripService) JoinTrip(ctx context.Context, tripID, userID uint) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !trip.IsPublic {
		return nil, models.NewForbiddenError("This trip is private")
	}

	count, err := s.tripRepo.CountParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if count >= int64(trip.MaxParticipants) {
		return nil, models.NewValidationError("Trip is full")
	}

	existing, err := s.tripRepo.GetParticipant(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("You are already participating in this trip")
	}

	participant := &models.TripParticipant{
		TripID: tripID,
		UserID: userID,
		Role:   models.RoleParticipant,
	}
	if err := s.tripRepo.AddParticipant(ctx, participant); err != nil {
		return nil, err
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// UpdateStatus moves the trip through its lifecycle. Creator only, and
// only forward: OPEN -> ONGOING -> ENDED.
func (s *TripService) UpdateStatus(ctx context.Context, tripID, userID uint, status models.TripStatus) (*models.Trip, error) {
	switch status {
	case models.TripStatusOpen, models.TripStatusOngoing, models.TripStatusEnded:
	default:
		return nil, models.NewValidationError("Invalid trip status")
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.CreatorID != userID {
		return nil, models.NewForbiddenError("Only the trip creator can change its status")
	}
	if !trip.Status.CanTransitionTo(status) {
		return nil, models.NewConflictError("Trip status can only move forward")
	}

	if err := s.tripRepo.UpdateStatus(ctx, tripID, status); err != nil {
		return nil, err
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// AddTodo appends a checklist item to the trip. Participants only.
func (s *TripService) AddTodo(ctx context.Context, tripID, userID uint, text string) (*models.TodoItem, error) {
	if text == "" {
		return nil, models.NewValidationError("Todo text is required")
	}

	if err := s.requireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	todo := &models.TodoItem{
		TripID:    tripID,
		Text:      text,
		CreatedBy: userID,
	}
	if err := s.tripRepo.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// TodoUpdate carries a partial todo update; nil fields are untouched.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}

// UpdateTodo edits a checklist item. Participants of the owning trip only.
func (s *TripService) UpdateTodo(ctx context.Context, todoID, userID uint, update TodoUpdate) (*models.TodoItem, error) {
	todo, err := s.tripRepo.GetTodoByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.requireParticipant(ctx, todo.TripID, userID); err != nil {
		return nil, err
	}

	if update.Text != nil {
		if *update.Text == "" {
			return nil, models.NewValidationError("Todo text cannot be empty")
		}
		todo.Text = *update.Text
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}

	if err := s.tripRepo.UpdateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo removes a checklist item. Participants of the owning trip only.
func (s *TripService) DeleteTodo(ctx context.Context, todoID, userID uint) error {
	todo, err := s.tripRepo.GetTodoByID(ctx, todoID)
	if err != nil {
		return err
	}

	if err := s.requireParticipant(ctx, todo.TripID, userID); err != nil {
		return err
	}

	return s.tripRepo.DeleteTodo(ctx, todoID)
}

func (s *TripService) requireParticipant(ctx context.Context, tripID, userID uint) error {
	participant, err := s.tripRepo.GetParticipant(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return models.NewForbiddenError("Only trip participants can do this")
	}
	return nil
}

// CompletedTrip is an ENDED trip folded with the user's own reviews,
// used to prefill the review form.
type CompletedTrip struct {
	Trip         models.Trip          `json:"trip"`
	MyRating     *int                 `json:"my_rating,omitempty"`
	MyComment    string               `json:"my_comment,omitempty"`
	BuddyRatings []models.BuddyReview `json:"buddy_ratings"`
}

// ListCompletedTrips returns the user's ENDED trips with their reviews.
func (s *TripService) ListCompletedTrips(ctx context.Context, userID uint) ([]CompletedTrip, error) {
	trips, err := s.tripRepo.ListEndedByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CompletedTrip, 0, len(trips))
	for _, trip := range trips {
		entry := CompletedTrip{Trip: trip, BuddyRatings: []models.BuddyReview{}}

		review, err := s.reviewRepo.GetTripReview(ctx, trip.ID, userID)
		if err != nil {
			return nil, err
		}
		if review != nil {
			rating := review.Rating
			entry.MyRating = &rating
			entry.MyComment = review.Comment
		}

		buddyReviews, err := s.reviewRepo.ListBuddyReviews(ctx, trip.ID, userID)
		if err != nil {
			return nil, err
		}
		entry.BuddyRatings = buddyReviews

		out = append(out, entry)
	}
	return out, nil
}
