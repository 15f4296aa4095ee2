package database

import "travelbuddy/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Blog{},
		&models.Like{},
		&models.WishlistItem{},
		&models.BuddyRequest{},
		&models.Trip{},
		&models.TripParticipant{},
		&models.TodoItem{},
		&models.TripReview{},
		&models.BuddyReview{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.Group{},
		&models.GroupPost{},
	}
}
