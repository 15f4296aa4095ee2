package models

import (
	"time"
)

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	// TripStatusOpen indicates a trip still accepting participants.
	TripStatusOpen TripStatus = "OPEN"
	// TripStatusOngoing indicates a trip in progress.
	TripStatusOngoing TripStatus = "ONGOING"
	// TripStatusEnded indicates a finished trip.
	TripStatusEnded TripStatus = "ENDED"
)

// ParticipantRole distinguishes a trip's creator from joined members.
type ParticipantRole string

const (
	// RoleCreator is assigned to the user who created the trip.
	RoleCreator ParticipantRole = "CREATOR"
	// RoleParticipant is assigned to users who joined the trip.
	RoleParticipant ParticipantRole = "PARTICIPANT"
)

// Trip limits. Every trip needs at least the creator plus one buddy.
const (
	TripMinParticipants     = 2
	TripMaxParticipants     = 20
	TripDefaultParticipants = 6
)

// Trip represents a planned trip that users can join.
type Trip struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Destination     string     `gorm:"not null;index" json:"destination"`
	Description     string     `gorm:"type:text" json:"description"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         time.Time  `gorm:"not null" json:"end_date"`
	Budget          float64    `gorm:"not null" json:"budget"`
	IsPublic        bool       `gorm:"default:true" json:"is_public"`
	MaxParticipants int        `gorm:"default:6" json:"max_participants"`
	Status          TripStatus `gorm:"type:varchar(20);default:'OPEN';index" json:"status"`
	CreatorID       uint       `gorm:"not null;index" json:"creator_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Creator      User              `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Participants []TripParticipant `gorm:"foreignKey:TripID" json:"participants,omitempty"`
	Todos        []TodoItem        `gorm:"foreignKey:TripID" json:"todos,omitempty"`
}

// CanTransitionTo reports whether the status may move to next.
// Transitions only run forward: OPEN -> ONGOING -> ENDED.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	switch s {
	case TripStatusOpen:
		return next == TripStatusOngoing
	case TripStatusOngoing:
		return next == TripStatusEnded
	default:
		return false
	}
}

// TripParticipant links a user to a trip. One row per (user, trip).
type TripParticipant struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	TripID   uint            `gorm:"not null;uniqueIndex:idx_trip_participant" json:"trip_id"`
	UserID   uint            `gorm:"not null;uniqueIndex:idx_trip_participant" json:"user_id"`
	Role     ParticipantRole `gorm:"type:varchar(20);default:'PARTICIPANT'" json:"role"`
	JoinedAt time.Time       `gorm:"autoCreateTime" json:"joined_at"`

	Trip Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (TripParticipant) TableName() string {
	return "trip_participants"
}

// TodoItem is a shared checklist entry on a trip.
type TodoItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TripID    uint      `gorm:"not null;index" json:"trip_id"`
	Text      string    `gorm:"not null" json:"text"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (TodoItem) TableName() string {
	return "todo_items"
}
