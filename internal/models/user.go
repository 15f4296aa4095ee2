// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserType distinguishes regular travellers from administrators.
type UserType string

const (
	// UserTypeCustomer is the default account type.
	UserTypeCustomer UserType = "CUSTOMER"
	// UserTypeAdmin marks an administrative account.
	UserTypeAdmin UserType = "ADMIN"
)

// User represents a user of the TravelBuddy application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Type      UserType       `gorm:"type:varchar(20);default:'CUSTOMER';index" json:"type"`
	IsPremium bool           `gorm:"default:false" json:"is_premium"`
	Phone     string         `json:"phone"`
	Interests string         `json:"interests"`
	Location  string         `json:"location"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Blogs     []Blog         `gorm:"foreignKey:AuthorID" json:"blogs,omitempty"`
}

// InterestList splits the comma-delimited interests column into a slice.
// An empty column yields an empty slice, not [""].
func (u *User) InterestList() []string {
	if strings.TrimSpace(u.Interests) == "" {
		return []string{}
	}
	parts := strings.Split(u.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsAdmin reports whether the user holds the admin account type.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}
