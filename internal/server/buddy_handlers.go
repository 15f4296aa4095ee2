package server

import (
	"travelbuddy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMatchmaking handles GET /api/buddies/matchmaking
func (s *Server) GetMatchmaking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	matches, err := s.buddyService.Matchmaking(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"matches": matches,
		"count":   len(matches),
	})
}

// SendBuddyRequest handles POST /api/buddies/requests
func (s *Server) SendBuddyRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ReceiverID uint `json:"receiverId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("receiverId is required"))
	}

	request, err := s.buddyService.SendRequest(c.Context(), userID, req.ReceiverID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingBuddyRequests handles GET /api/buddies/requests/pending
func (s *Server) GetPendingBuddyRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	pending, err := s.buddyService.GetPendingRequests(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"incoming":      pending.Incoming,
		"outgoing":      pending.Outgoing,
		"incomingCount": len(pending.Incoming),
		"outgoingCount": len(pending.Outgoing),
	})
}

// RespondToBuddyRequest handles PATCH /api/buddies/requests/:id with an
// action of accept, decline or cancel.
func (s *Server) RespondToBuddyRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var (
		request *models.BuddyRequest
		svcErr  error
	)
	switch req.Action {
	case "accept":
		request, svcErr = s.buddyService.AcceptRequest(c.Context(), userID, requestID)
	case "decline":
		request, svcErr = s.buddyService.DeclineRequest(c.Context(), userID, requestID)
	case "cancel":
		request, svcErr = s.buddyService.CancelRequest(c.Context(), userID, requestID)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Action must be accept, decline or cancel"))
	}
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if req.Action == "cancel" {
		return c.JSON(fiber.Map{
			"message": "Buddy request cancelled",
		})
	}
	return c.JSON(request)
}

// GetBuddies handles GET /api/buddies
func (s *Server) GetBuddies(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	buddies, err := s.buddyService.GetBuddies(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"buddies": buddies,
		"count":   len(buddies),
	})
}
