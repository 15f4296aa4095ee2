package server

import (
	"time"

	"travelbuddy/internal/models"
	"travelbuddy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// tripListItem is the browse-view projection of a trip.
type tripListItem struct {
	models.Trip
	ParticipantCount int  `json:"participantCount"`
	IsParticipant    bool `json:"isParticipant"`
}

// GetTrips handles GET /api/trips. Auth is optional; when a valid token is
// present the response carries a per-trip isParticipant flag.
func (s *Server) GetTrips(c *fiber.Ctx) error {
	trips, err := s.tripService.ListPublicTrips(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}

	userID, authed := s.optionalUserID(c)

	items := make([]tripListItem, 0, len(trips))
	for _, t := range trips {
		item := tripListItem{
			Trip:             t,
			ParticipantCount: len(t.Participants),
		}
		if authed {
			for _, p := range t.Participants {
				if p.UserID == userID {
					item.IsParticipant = true
					break
				}
			}
		}
		items = append(items, item)
	}

	return c.JSON(fiber.Map{
		"trips": items,
		"count": len(items),
	})
}

// CreateTrip handles POST /api/trips
func (s *Server) CreateTrip(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Destination     string  `json:"destination"`
		Description     string  `json:"description"`
		StartDate       string  `json:"startDate"`
		EndDate         string  `json:"endDate"`
		Budget          float64 `json:"budget"`
		IsPublic        *bool   `json:"isPublic"`
		MaxParticipants int     `json:"maxParticipants"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid start date"))
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid end date"))
	}

	trip, svcErr := s.tripService.CreateTrip(c.Context(), userID, service.CreateTripInput{
		Destination:     req.Destination,
		Description:     req.Description,
		StartDate:       startDate,
		EndDate:         endDate,
		Budget:          req.Budget,
		IsPublic:        req.IsPublic,
		MaxParticipants: req.MaxParticipants,
	})
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(trip)
}

// parseDate accepts RFC3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// GetMyTrips handles GET /api/trips/my
func (s *Server) GetMyTrips(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	trips, err := s.tripService.ListMyTrips(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"trips": trips,
		"count": len(trips),
	})
}

// GetTrip handles GET /api/trips/:id
func (s *Server) GetTrip(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trip, svcErr := s.tripService.GetTrip(c.Context(), id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(trip)
}

// JoinTrip handles POST /api/trips/:id/join
func (s *Server) JoinTrip(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trip, svcErr := s.tripService.JoinTrip(c.Context(), id, userID)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"message": "Joined trip successfully",
		"trip":    trip,
	})
}

// UpdateTripStatus handles PATCH /api/trips/:id/status (creator only)
func (s *Server) UpdateTripStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trip, svcErr := s.tripService.UpdateStatus(c.Context(), id, userID, models.TripStatus(req.Status))
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(trip)
}

// AddTodo handles POST /api/trips/:id/todos (participants only)
func (s *Server) AddTodo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	todo, svcErr := s.tripService.AddTodo(c.Context(), id, userID, req.Text)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(todo)
}

// UpdateTodo handles PATCH /api/todos/:id. Only fields present in the body
// are updated.
func (s *Server) UpdateTodo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	todo, svcErr := s.tripService.UpdateTodo(c.Context(), id, userID, service.TodoUpdate{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(todo)
}

// DeleteTodo handles DELETE /api/todos/:id
func (s *Server) DeleteTodo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.tripService.DeleteTodo(c.Context(), id, userID); svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"message": "Todo deleted successfully",
	})
}
