package models

import (
	"time"
)

// ReviewType selects what a review targets.
type ReviewType string

const (
	// ReviewTypeTrip rates the trip itself.
	ReviewTypeTrip ReviewType = "TRIP"
	// ReviewTypeBuddy rates a fellow participant.
	ReviewTypeBuddy ReviewType = "BUDDY"
)

// TripReview is a participant's rating of a finished trip.
// One per (trip, reviewer); resubmitting overwrites rating and comment.
type TripReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripID     uint      `gorm:"not null;uniqueIndex:idx_trip_review" json:"trip_id"`
	ReviewerID uint      `gorm:"not null;uniqueIndex:idx_trip_review" json:"reviewer_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Trip     Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	Reviewer User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for GORM
func (TripReview) TableName() string {
	return "trip_reviews"
}

// BuddyReview is a participant's rating of another participant on the
// same trip. One per (trip, reviewer, buddy); upserted like TripReview.
type BuddyReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripID     uint      `gorm:"not null;uniqueIndex:idx_buddy_review" json:"trip_id"`
	ReviewerID uint      `gorm:"not null;uniqueIndex:idx_buddy_review" json:"reviewer_id"`
	BuddyID    uint      `gorm:"not null;uniqueIndex:idx_buddy_review" json:"buddy_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Trip     Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	Reviewer User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Buddy    User `gorm:"foreignKey:BuddyID" json:"buddy,omitempty"`
}

// TableName specifies the table name for GORM
func (BuddyReview) TableName() string {
	return "buddy_reviews"
}
