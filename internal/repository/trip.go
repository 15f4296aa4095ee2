package repository

import (
	"context"
	"errors"

	"travelbuddy/internal/models"

	"gorm.io/gorm"
)

// TripRepository defines persistence operations for trips, participants and todos.
type TripRepository interface {
	CreateWithCreator(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	ListPublic(ctx context.Context) ([]models.Trip, error)
	ListByParticipant(ctx context.Context, userID uint) ([]models.Trip, error)
	ListEndedByParticipant(ctx context.Context, userID uint) ([]models.Trip, error)
	UpdateStatus(ctx context.Context, tripID uint, status models.TripStatus) error

	CountParticipants(ctx context.Context, tripID uint) (int64, error)
	GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error)
	AddParticipant(ctx context.Context, participant *models.TripParticipant) error

	CreateTodo(ctx context.Context, todo *models.TodoItem) error
	GetTodoByID(ctx context.Context, id uint) (*models.TodoItem, error)
	UpdateTodo(ctx context.Context, todo *models.TodoItem) error
	DeleteTodo(ctx context.Context, id uint) error
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository returns a new TripRepository implementation.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

// CreateWithCreator inserts the trip and its CREATOR participant row in one
// transaction so a trip can never exist without its creator on the roster.
func (r *tripRepository) CreateWithCreator(ctx context.Context, trip *models.Trip) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		participant := models.TripParticipant{
			TripID: trip.ID,
			UserID: trip.CreatorID,
			Role:   models.RoleCreator,
		}
		return tx.Create(&participant).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Participants.User").
		Preload("Todos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trip", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &trip, nil
}

func (r *tripRepository) ListPublic(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Preload("Creator").
		Preload("Participants").
		Order("created_at DESC").
		Find(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

func (r *tripRepository) ListByParticipant(ctx context.Context, userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Joins("JOIN trip_participants tp ON tp.trip_id = trips.id").
		Where("tp.user_id = ?", userID).
		Preload("Creator").
		Preload("Participants.User").
		Order("trips.created_at DESC").
		Find(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

func (r *tripRepository) ListEndedByParticipant(ctx context.Context, userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Joins("JOIN trip_participants tp ON tp.trip_id = trips.id").
		Where("tp.user_id = ? AND trips.status = ?", userID, models.TripStatusEnded).
		Preload("Participants.User").
		Order("trips.end_date DESC").
		Find(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, tripID uint, status models.TripStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ?", tripID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) CountParticipants(ctx context.Context, tripID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TripParticipant{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *tripRepository) GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error) {
	var participant models.TripParticipant
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &participant, nil
}

func (r *tripRepository) AddParticipant(ctx context.Context, participant *models.TripParticipant) error {
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already participating in this trip")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) CreateTodo(ctx context.Context, todo *models.TodoItem) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) GetTodoByID(ctx context.Context, id uint) (*models.TodoItem, error) {
	var todo models.TodoItem
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Todo", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &todo, nil
}

func (r *tripRepository) UpdateTodo(ctx context.Context, todo *models.TodoItem) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) DeleteTodo(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.TodoItem{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
