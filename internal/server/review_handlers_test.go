package server

import (
	"net/http"
	"testing"
	"time"

	"travelbuddy/internal/models"
	"travelbuddy/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewHandler(t *testing.T) {
	s := newTestServer(t)
	creator := createTestUser(t, s, "creator")
	buddy := createTestUser(t, s, "buddy")
	outsider := createTestUser(t, s, "outsider")

	trip, err := s.tripService.CreateTrip(t.Context(), creator.ID, service.CreateTripInput{
		Destination: "Marrakesh, Morocco",
		StartDate:   time.Now().Add(24 * time.Hour),
		EndDate:     time.Now().Add(5 * 24 * time.Hour),
		Budget:      700,
	})
	require.NoError(t, err)
	_, err = s.tripService.JoinTrip(t.Context(), trip.ID, buddy.ID)
	require.NoError(t, err)

	creatorApp := fiber.New()
	creatorApp.Post("/reviews", asUser(creator.ID), s.SubmitReview)
	outsiderApp := fiber.New()
	outsiderApp.Post("/reviews", asUser(outsider.ID), s.SubmitReview)

	t.Run("Outsider Forbidden", func(t *testing.T) {
		resp, _ := outsiderApp.Test(jsonRequest(http.MethodPost, "/reviews", map[string]interface{}{
			"tripId":     trip.ID,
			"reviewType": "TRIP",
			"rating":     4,
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Trip Review Upserts", func(t *testing.T) {
		for i, review := range []map[string]interface{}{
			{"tripId": trip.ID, "reviewType": "TRIP", "rating": 3, "comment": "decent"},
			{"tripId": trip.ID, "reviewType": "TRIP", "rating": 5, "comment": "actually great"},
		} {
			resp, _ := creatorApp.Test(jsonRequest(http.MethodPost, "/reviews", review))
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusCreated, resp.StatusCode, "submission %d", i)
		}

		var reviews []models.TripReview
		require.NoError(t, s.db.Where("trip_id = ? AND reviewer_id = ?", trip.ID, creator.ID).Find(&reviews).Error)
		require.Len(t, reviews, 1, "resubmission must overwrite, not duplicate")
		assert.Equal(t, 5, reviews[0].Rating)
		assert.Equal(t, "actually great", reviews[0].Comment)
	})

	t.Run("Buddy Review", func(t *testing.T) {
		resp, _ := creatorApp.Test(jsonRequest(http.MethodPost, "/reviews", map[string]interface{}{
			"tripId":         trip.ID,
			"reviewType":     "BUDDY",
			"rating":         5,
			"reviewedUserId": buddy.ID,
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var reviews []models.BuddyReview
		require.NoError(t, s.db.Where("trip_id = ? AND buddy_id = ?", trip.ID, buddy.ID).Find(&reviews).Error)
		require.Len(t, reviews, 1)
		assert.Equal(t, creator.ID, reviews[0].ReviewerID)
	})

	t.Run("Rating Out Of Range", func(t *testing.T) {
		resp, _ := creatorApp.Test(jsonRequest(http.MethodPost, "/reviews", map[string]interface{}{
			"tripId":     trip.ID,
			"reviewType": "TRIP",
			"rating":     9,
		}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
