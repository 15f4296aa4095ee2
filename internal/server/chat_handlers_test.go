package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"travelbuddy/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatShortPollFlow(t *testing.T) {
	s := newTestServer(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	aliceApp := fiber.New()
	aliceApp.Post("/chats", asUser(alice.ID), s.CreateChat)
	aliceApp.Post("/chats/:id/messages", asUser(alice.ID), s.SendChatMessage)
	aliceApp.Get("/chats/:id/messages", asUser(alice.ID), s.GetChatMessages)

	bobApp := fiber.New()
	bobApp.Get("/chats/:id/messages", asUser(bob.ID), s.GetChatMessages)
	bobApp.Post("/chats", asUser(bob.ID), s.CreateChat)

	var chat models.Chat
	t.Run("Create Direct Chat", func(t *testing.T) {
		resp, _ := aliceApp.Test(jsonRequest(http.MethodPost, "/chats", map[string]interface{}{
			"memberIds": []uint{bob.ID},
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
		assert.False(t, chat.IsGroup)
	})

	t.Run("Direct Chat Deduplicated", func(t *testing.T) {
		resp, _ := bobApp.Test(jsonRequest(http.MethodPost, "/chats", map[string]interface{}{
			"memberIds": []uint{alice.ID},
		}))
		defer func() { _ = resp.Body.Close() }()

		var again models.Chat
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&again))
		assert.Equal(t, chat.ID, again.ID)
	})

	messagesPath := fmt.Sprintf("/chats/%d/messages", chat.ID)

	t.Run("Send And Poll", func(t *testing.T) {
		resp, _ := aliceApp.Test(jsonRequest(http.MethodPost, messagesPath, map[string]string{
			"content": "landed, where are you?",
		}))
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		pollResp, _ := bobApp.Test(jsonRequest(http.MethodGet, messagesPath, nil))
		defer func() { _ = pollResp.Body.Close() }()
		assert.Equal(t, http.StatusOK, pollResp.StatusCode)

		var page struct {
			Messages []models.Message `json:"messages"`
			Now      string           `json:"now"`
		}
		require.NoError(t, json.NewDecoder(pollResp.Body).Decode(&page))
		require.Len(t, page.Messages, 1)
		assert.Equal(t, "landed, where are you?", page.Messages[0].Content)

		_, err := time.Parse(time.RFC3339, page.Now)
		assert.NoError(t, err, "now must be a usable RFC3339 cursor")
	})

	t.Run("Cursor Skips Old Messages", func(t *testing.T) {
		cursor := time.Now().UTC().Add(time.Minute).Format(time.RFC3339)
		pollResp, _ := bobApp.Test(jsonRequest(http.MethodGet, messagesPath+"?after="+cursor, nil))
		defer func() { _ = pollResp.Body.Close() }()
		assert.Equal(t, http.StatusOK, pollResp.StatusCode)

		var page struct {
			Messages []models.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(pollResp.Body).Decode(&page))
		assert.Empty(t, page.Messages)
	})

	t.Run("Bad Cursor", func(t *testing.T) {
		pollResp, _ := bobApp.Test(jsonRequest(http.MethodGet, messagesPath+"?after=yesterday", nil))
		defer func() { _ = pollResp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, pollResp.StatusCode)
	})

	t.Run("Non Member Forbidden", func(t *testing.T) {
		eve := createTestUser(t, s, "eve")
		eveApp := fiber.New()
		eveApp.Get("/chats/:id/messages", asUser(eve.ID), s.GetChatMessages)

		pollResp, _ := eveApp.Test(jsonRequest(http.MethodGet, messagesPath, nil))
		defer func() { _ = pollResp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, pollResp.StatusCode)
	})
}
