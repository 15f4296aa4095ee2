package server

import (
	"time"

	"travelbuddy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateChat handles POST /api/chats. 1:1 chats are deduplicated: creating
// a chat with an existing counterpart returns the existing chat.
func (s *Server) CreateChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		MemberIDs []uint `json:"memberIds"`
		Name      string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	chat, svcErr := s.chatService.CreateChat(c.Context(), userID, req.MemberIDs, req.Name)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(chat)
}

// GetChats handles GET /api/chats
func (s *Server) GetChats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	chats, err := s.chatService.ListChats(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"chats": chats,
		"count": len(chats),
	})
}

// GetChatMessages handles GET /api/chats/:id/messages. The optional `after`
// query parameter is an RFC3339 timestamp; only messages newer than it are
// returned. The response carries the server time for the next poll cursor.
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	chatID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var after *time.Time
	if raw := c.Query("after"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("after must be an RFC3339 timestamp"))
		}
		after = &parsed
	}

	page, svcErr := s.chatService.GetMessages(c.Context(), chatID, userID, after)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"messages": page.Messages,
		"now":      page.Now.Format(time.RFC3339),
	})
}

// SendChatMessage handles POST /api/chats/:id/messages
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	chatID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, svcErr := s.chatService.SendMessage(c.Context(), chatID, userID, req.Content)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetChatBuddies handles GET /api/chat-buddies
func (s *Server) GetChatBuddies(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	buddies, err := s.chatService.ChatBuddies(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"buddies": buddies,
		"count":   len(buddies),
	})
}
