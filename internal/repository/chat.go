package repository

import (
	"context"
	"errors"
	"time"

	"travelbuddy/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines persistence operations for chats and messages.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *models.Chat, memberIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Chat, error)
	FindDirectChat(ctx context.Context, userID1, userID2 uint) (*models.Chat, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Chat, error)
	IsMember(ctx context.Context, chatID, userID uint) (bool, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, chatID uint, after *time.Time, limit int) ([]models.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateChat inserts the chat and its member rows in one transaction.
func (r *chatRepository) CreateChat(ctx context.Context, chat *models.Chat, memberIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := models.ChatMember{ChatID: chat.ID, UserID: userID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) GetByID(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.WithContext(ctx).
		Preload("Members.User").
		First(&chat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Chat", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &chat, nil
}

// FindDirectChat returns the existing two-member non-group chat linking the
// pair, or nil when none exists.
func (r *chatRepository) FindDirectChat(ctx context.Context, userID1, userID2 uint) (*models.Chat, error) {
	var chatID uint
	err := r.db.WithContext(ctx).
		Model(&models.ChatMember{}).
		Select("chat_members.chat_id").
		Joins("JOIN chats ON chats.id = chat_members.chat_id AND chats.is_group = ?", false).
		Where("chat_members.user_id IN ?", []uint{userID1, userID2}).
		Group("chat_members.chat_id").
		Having("COUNT(DISTINCT chat_members.user_id) = 2").
		Limit(1).
		Scan(&chatID).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if chatID == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, chatID)
}

func (r *chatRepository) ListByUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	if err := r.db.WithContext(ctx).
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ?", userID).
		Preload("Members.User").
		Order("chats.updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Attach the latest message of each chat for list previews
	for i := range chats {
		var msg models.Message
		err := r.db.WithContext(ctx).
			Where("chat_id = ?", chats[i].ID).
			Order("created_at DESC").
			Preload("Sender").
			First(&msg).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, models.NewInternalError(err)
		}
		m := msg
		chats[i].LastMessage = &m
	}

	return chats, nil
}

func (r *chatRepository) IsMember(ctx context.Context, chatID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CreateMessage stores the message and bumps the chat's updated_at so the
// chat list stays ordered by activity.
func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chat{}).
			Where("id = ?", message.ChatID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID uint, after *time.Time, limit int) ([]models.Message, error) {
	var messages []models.Message
	q := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Preload("Sender").
		Order("created_at ASC")

	if after != nil {
		q = q.Where("created_at > ?", *after)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
