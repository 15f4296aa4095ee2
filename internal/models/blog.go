package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a published travel blog entry.
type Blog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Preview   string         `gorm:"type:text" json:"preview"`
	Location  string         `gorm:"index" json:"location"`
	Tags      string         `json:"tags"`
	Images    string         `json:"images"`
	IsPremium bool           `gorm:"default:false" json:"is_premium"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// Like represents a user liking a blog. One row per (user, blog).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_blog" json:"user_id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_like_user_blog" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

// WishlistItem represents a user saving a blog for later. One row per (user, blog).
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_blog" json:"user_id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_blog" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

// TableName specifies the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
