package models

import (
	"time"
)

// BuddyRequestStatus represents the status of a buddy request.
type BuddyRequestStatus string

const (
	// BuddyRequestStatusPending indicates a request awaiting a response.
	BuddyRequestStatusPending BuddyRequestStatus = "PENDING"
	// BuddyRequestStatusAccepted indicates an accepted request.
	BuddyRequestStatusAccepted BuddyRequestStatus = "ACCEPTED"
	// BuddyRequestStatusRejected indicates a declined request.
	BuddyRequestStatusRejected BuddyRequestStatus = "REJECTED"
)

// BuddyRequest represents a travel-buddy connection between two users.
// An ACCEPTED row in either direction makes the pair buddies.
type BuddyRequest struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	RequesterID uint               `gorm:"not null;uniqueIndex:idx_buddy_request_users" json:"requester_id"`
	ReceiverID  uint               `gorm:"not null;uniqueIndex:idx_buddy_request_users" json:"receiver_id"`
	Status      BuddyRequestStatus `gorm:"type:varchar(20);default:'PENDING';index:idx_buddy_requests_status" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver  User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (BuddyRequest) TableName() string {
	return "buddy_requests"
}
