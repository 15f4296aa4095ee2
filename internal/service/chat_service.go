// Package service provides application business logic (trips, buddies, chat, etc.).
package service

import (
	"context"
	"strings"
	"time"

	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
)

// MessagePollLimit caps how many messages one poll returns.
const MessagePollLimit = 200

// ChatService provides short-poll chat business logic.
type ChatService struct {
	chatRepo  repository.ChatRepository
	buddyRepo repository.BuddyRepository
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, buddyRepo repository.BuddyRepository) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		buddyRepo: buddyRepo,
	}
}

// CreateChat opens a chat between the user and the given members. The
// member set always includes the caller. Two-member chats are
// deduplicated: an existing direct chat is returned instead of a new row.
func (s *ChatService) CreateChat(ctx context.Context, userID uint, memberIDs []uint, name string) (*models.Chat, error) {
	if len(memberIDs) == 0 {
		return nil, models.NewValidationError("At least one member is required")
	}

	memberSet := map[uint]bool{userID: true}
	for _, id := range memberIDs {
		memberSet[id] = true
	}
	members := make([]uint, 0, len(memberSet))
	for id := range memberSet {
		members = append(members, id)
	}

	if len(members) < 2 {
		return nil, models.NewValidationError("Cannot open a chat with only yourself")
	}

	if len(members) == 2 {
		other := members[0]
		if other == userID {
			other = members[1]
		}
		existing, err := s.chatRepo.FindDirectChat(ctx, userID, other)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}

		chat := &models.Chat{IsGroup: false}
		if err := s.chatRepo.CreateChat(ctx, chat, members); err != nil {
			return nil, err
		}
		return s.chatRepo.GetByID(ctx, chat.ID)
	}

	chat := &models.Chat{Name: name, IsGroup: true}
	if err := s.chatRepo.CreateChat(ctx, chat, members); err != nil {
		return nil, err
	}
	return s.chatRepo.GetByID(ctx, chat.ID)
}

// ListChats returns the user's chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context, userID uint) ([]models.Chat, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

// MessagePage is one poll of chat messages plus the server time to use
// as the next `after` cursor.
type MessagePage struct {
	Messages []models.Message `json:"messages"`
	Now      time.Time        `json:"now"`
}

// GetMessages returns messages for a chat the user belongs to, ascending
// by creation time. A non-nil after cursor returns only newer messages.
func (s *ChatService) GetMessages(ctx context.Context, chatID, userID uint, after *time.Time) (*MessagePage, error) {
	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(ctx, chatID, after, MessagePollLimit)
	if err != nil {
		return nil, err
	}

	return &MessagePage{Messages: messages, Now: time.Now().UTC()}, nil
}

// SendMessage appends a message to a chat the user belongs to.
func (s *ChatService) SendMessage(ctx context.Context, chatID, userID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message content is required")
	}

	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatID:   chatID,
		SenderID: userID,
		Content:  content,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ChatBuddies returns accepted buddies as chat targets.
func (s *ChatService) ChatBuddies(ctx context.Context, userID uint) ([]models.User, error) {
	return s.buddyRepo.GetBuddies(ctx, userID)
}

func (s *ChatService) requireMember(ctx context.Context, chatID, userID uint) error {
	member, err := s.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !member {
		return models.NewForbiddenError("You are not a member of this chat")
	}
	return nil
}
