package repository

import (
	"context"
	"errors"

	"travelbuddy/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines persistence operations for premium community groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	CreatePost(ctx context.Context, post *models.GroupPost) error
	ListPosts(ctx context.Context, groupID uint) ([]models.GroupPost, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A group with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Posts.Author").
		First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	for i := range groups {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.GroupPost{}).
			Where("group_id = ?", groups[i].ID).
			Count(&count).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		groups[i].PostCount = count
	}
	return groups, nil
}

func (r *groupRepository) CreatePost(ctx context.Context, post *models.GroupPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) ListPosts(ctx context.Context, groupID uint) ([]models.GroupPost, error) {
	var posts []models.GroupPost
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
