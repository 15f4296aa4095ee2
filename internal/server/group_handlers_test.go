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

func TestCreateGroupPremiumGate(t *testing.T) {
	s := newTestServer(t)
	free := createTestUser(t, s, "free")

	premium := createTestUser(t, s, "premium")
	require.NoError(t, s.db.Model(premium).Update("is_premium", true).Error)

	admin := createTestUser(t, s, "admin")
	require.NoError(t, s.db.Model(admin).Update("type", models.UserTypeAdmin).Error)

	body := map[string]string{"name": "Solo Backpackers", "description": "Going it alone, together"}

	t.Run("Free User Forbidden", func(t *testing.T) {
		app := fiber.New()
		app.Post("/groups", asUser(free.ID), s.CreateGroup)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/groups", body))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Premium User Creates", func(t *testing.T) {
		app := fiber.New()
		app.Post("/groups", asUser(premium.ID), s.CreateGroup)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/groups", body))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var group models.Group
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&group))
		assert.Equal(t, "Solo Backpackers", group.Name)
		assert.Equal(t, premium.ID, group.CreatorID)
	})

	t.Run("Admin Passes Gate", func(t *testing.T) {
		app := fiber.New()
		app.Post("/groups", asUser(admin.ID), s.CreateGroup)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/groups", map[string]string{"name": "Admins Abroad"}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestGroupPosts(t *testing.T) {
	s := newTestServer(t)
	member := createTestUser(t, s, "member")
	require.NoError(t, s.db.Model(member).Update("is_premium", true).Error)

	group := &models.Group{Name: "Budget Nomads", CreatorID: member.ID}
	require.NoError(t, s.db.Create(group).Error)

	app := fiber.New()
	app.Post("/groups/:id/posts", asUser(member.ID), s.CreateGroupPost)
	app.Get("/groups/:id/posts", asUser(member.ID), s.GetGroupPosts)

	postPath := fmt.Sprintf("/groups/%d/posts", group.ID)

	t.Run("Create Post", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, postPath, map[string]string{
			"title":   "Cheap eats in Hanoi",
			"content": "Pho for a dollar near the old quarter.",
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.GroupPost
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
		assert.WithinDuration(t, time.Now(), post.PostDate, time.Minute,
			"post date defaults to now when omitted")
	})

	t.Run("Create Post With Date", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, postPath, map[string]string{
			"title":    "Night market finds",
			"content":  "Wrote this up after the trip.",
			"postDate": "2026-05-01",
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.GroupPost
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
		assert.Equal(t, 2026, post.PostDate.Year())
		assert.Equal(t, time.May, post.PostDate.Month())
	})

	t.Run("Bad Post Date", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, postPath, map[string]string{
			"title":    "Bad date",
			"content":  "should not land",
			"postDate": "last tuesday",
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Title", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, postPath, map[string]string{
			"content": "no title here",
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("List Posts", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodGet, postPath, nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Posts []models.GroupPost `json:"posts"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out.Posts, 2)
		titles := []string{out.Posts[0].Title, out.Posts[1].Title}
		assert.Contains(t, titles, "Cheap eats in Hanoi")
		assert.Contains(t, titles, "Night market finds")
	})

	t.Run("Free User Reads", func(t *testing.T) {
		reader := createTestUser(t, s, "reader")
		freeApp := fiber.New()
		freeApp.Get("/groups/:id/posts", asUser(reader.ID), s.GetGroupPosts)
		freeApp.Post("/groups/:id/posts", asUser(reader.ID), s.CreateGroupPost)

		resp, _ := freeApp.Test(jsonRequest(http.MethodGet, postPath, nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// Writing still needs premium.
		resp, _ = freeApp.Test(jsonRequest(http.MethodPost, postPath, map[string]string{
			"title":   "Drive-by post",
			"content": "should be rejected",
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Unknown Group", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodGet, "/groups/9999/posts", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
