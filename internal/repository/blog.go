package repository

import (
	"context"
	"errors"
	"strings"

	"travelbuddy/internal/cache"
	"travelbuddy/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines persistence operations for blogs, likes and wishlists.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	GetCached(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, search string) ([]models.Blog, error)
	Delete(ctx context.Context, id uint) error

	CountLikes(ctx context.Context, blogID uint) (int64, error)
	CountLikesCached(ctx context.Context, blogID uint) (int64, error)
	CountLikesForBlogs(ctx context.Context, blogIDs []uint) (map[uint]int64, error)
	GetLike(ctx context.Context, userID, blogID uint) (*models.Like, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, blogID uint) error
	GetLikedBlogIDs(ctx context.Context, userID uint) ([]uint, error)

	GetWishlistItem(ctx context.Context, userID, blogID uint) (*models.WishlistItem, error)
	CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error
	DeleteWishlistItem(ctx context.Context, userID, blogID uint) error
	GetWishlistedBlogIDs(ctx context.Context, userID uint) ([]uint, error)
	GetWishlistBlogs(ctx context.Context, userID uint) ([]models.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

// GetCached is the cache-aside read used for display paths. Mutations that
// need a fresh row load via GetByID.
func (r *blogRepository) GetCached(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	key := cache.BlogKey(id)

	err := cache.Aside(ctx, key, &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, search string) ([]models.Blog, error) {
	var blogs []models.Blog
	q := r.db.WithContext(ctx).Preload("Author")

	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(preview) LIKE ? OR LOWER(location) LIKE ?", like, like, like)
	}

	if err := q.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}

func (r *blogRepository) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CountLikesCached serves the like counter behind a short TTL. Like toggles
// drop the key, so the counter lags at most one cache miss.
func (r *blogRepository) CountLikesCached(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	key := cache.BlogLikeCountKey(blogID)

	err := cache.Aside(ctx, key, &count, cache.LikeCountTTL, func() error {
		fresh, err := r.CountLikes(ctx, blogID)
		if err != nil {
			return err
		}
		count = fresh
		return nil
	})

	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *blogRepository) CountLikesForBlogs(ctx context.Context, blogIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(blogIDs))
	if len(blogIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		BlogID uint
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("blog_id, COUNT(*) as count").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		counts[row.BlogID] = row.Count
	}
	return counts, nil
}

func (r *blogRepository) GetLike(ctx context.Context, userID, blogID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *blogRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Concurrent double-toggle, treat as already liked
			return nil
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, like.BlogID)
	cache.InvalidateMatchmaking(ctx, like.UserID)
	return nil
}

func (r *blogRepository) DeleteLike(ctx context.Context, userID, blogID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blogID)
	cache.InvalidateMatchmaking(ctx, userID)
	return nil
}

func (r *blogRepository) GetLikedBlogIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("blog_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *blogRepository) GetWishlistItem(ctx context.Context, userID, blogID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *blogRepository) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateMatchmaking(ctx, item.UserID)
	return nil
}

func (r *blogRepository) DeleteWishlistItem(ctx context.Context, userID, blogID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMatchmaking(ctx, userID)
	return nil
}

func (r *blogRepository) GetWishlistedBlogIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Pluck("blog_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *blogRepository) GetWishlistBlogs(ctx context.Context, userID uint) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.WithContext(ctx).
		Joins("JOIN wishlist_items w ON w.blog_id = blogs.id").
		Where("w.user_id = ?", userID).
		Preload("Author").
		Order("w.created_at DESC").
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}
