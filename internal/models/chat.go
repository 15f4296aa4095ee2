package models

import (
	"time"
)

// Chat is a conversation between two or more users. Two-member
// non-group chats are deduplicated on creation.
type Chat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	IsGroup   bool      `gorm:"default:false" json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	Members  []ChatMember `gorm:"foreignKey:ChatID" json:"members,omitempty"`
	Messages []Message    `gorm:"foreignKey:ChatID" json:"messages,omitempty"`

	// LastMessage is populated for list views, not stored.
	LastMessage *Message `gorm:"-" json:"last_message,omitempty"`
}

// ChatMember links a user to a chat. One row per (chat, user).
type ChatMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ChatID   uint      `gorm:"not null;uniqueIndex:idx_chat_member" json:"chat_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_chat_member" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Chat Chat `gorm:"foreignKey:ChatID" json:"chat,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (ChatMember) TableName() string {
	return "chat_members"
}

// Message is a single chat message.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"not null;index:idx_messages_chat_created" json:"chat_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_messages_chat_created" json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
