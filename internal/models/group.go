package models

import (
	"time"
)

// Group is a premium community that premium users can create and post in.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator User        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Posts   []GroupPost `gorm:"foreignKey:GroupID" json:"posts,omitempty"`

	// PostCount is populated for list views, not stored.
	PostCount int64 `gorm:"-" json:"post_count"`
}

// GroupPost is an entry posted inside a premium community.
type GroupPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Location  string    `json:"location"`
	PostDate  time.Time `gorm:"not null" json:"post_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Group  Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Author User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (GroupPost) TableName() string {
	return "group_posts"
}
