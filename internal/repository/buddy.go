// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"travelbuddy/internal/models"

	"gorm.io/gorm"
)

// BuddyRepository defines the interface for buddy request data operations
type BuddyRepository interface {
	Create(ctx context.Context, request *models.BuddyRequest) error
	GetByID(ctx context.Context, id uint) (*models.BuddyRequest, error)
	GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.BuddyRequest, error)
	GetBuddies(ctx context.Context, userID uint) ([]models.User, error)
	GetBuddyIDs(ctx context.Context, userID uint) ([]uint, error)
	GetPendingIncoming(ctx context.Context, userID uint) ([]models.BuddyRequest, error)
	GetPendingOutgoing(ctx context.Context, userID uint) ([]models.BuddyRequest, error)
	UpdateStatus(ctx context.Context, requestID uint, status models.BuddyRequestStatus) error
	Delete(ctx context.Context, requestID uint) error
}

// buddyRepository implements BuddyRepository
type buddyRepository struct {
	db *gorm.DB
}

// NewBuddyRepository creates a new buddy repository
func NewBuddyRepository(db *gorm.DB) BuddyRepository {
	return &buddyRepository{db: db}
}

func (r *buddyRepository) Create(ctx context.Context, request *models.BuddyRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Buddy request already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *buddyRepository) GetByID(ctx context.Context, id uint) (*models.BuddyRequest, error) {
	var request models.BuddyRequest
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Receiver").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Buddy request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *buddyRepository) GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.BuddyRequest, error) {
	var request models.BuddyRequest

	// Find a request linking the pair in either direction
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Preload("Requester").
		Preload("Receiver").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No request exists
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *buddyRepository) GetBuddies(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User

	// Find all accepted requests for the user and resolve the counterpart of each
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN buddy_requests b ON (users.id = b.requester_id OR users.id = b.receiver_id)").
		Where("b.status = ? AND (b.requester_id = ? OR b.receiver_id = ?) AND users.id != ?",
			models.BuddyRequestStatusAccepted, userID, userID, userID).
		Distinct().
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return users, nil
}

func (r *buddyRepository) GetBuddyIDs(ctx context.Context, userID uint) ([]uint, error) {
	buddies, err := r.GetBuddies(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(buddies))
	for _, u := range buddies {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (r *buddyRepository) GetPendingIncoming(ctx context.Context, userID uint) ([]models.BuddyRequest, error) {
	var requests []models.BuddyRequest

	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.BuddyRequestStatusPending).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *buddyRepository) GetPendingOutgoing(ctx context.Context, userID uint) ([]models.BuddyRequest, error) {
	var requests []models.BuddyRequest

	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.BuddyRequestStatusPending).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *buddyRepository) UpdateStatus(ctx context.Context, requestID uint, status models.BuddyRequestStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.BuddyRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *buddyRepository) Delete(ctx context.Context, requestID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.BuddyRequest{}, requestID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
