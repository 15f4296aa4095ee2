package server

import (
	"strconv"

	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// adminUserItem is the admin listing projection of a customer.
type adminUserItem struct {
	models.User
	TripsCompleted int64 `json:"tripsCompleted"`
}

// AdminListUsers handles GET /api/admin/users. Supports ?search= over name
// and email plus ?premium=true|false.
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Search: c.Query("search"),
	}
	if raw := c.Query("premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("premium must be true or false"))
		}
		filter.Premium = &premium
	}

	users, err := s.userRepo.ListCustomers(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}

	items := make([]adminUserItem, 0, len(users))
	for _, u := range users {
		completed, countErr := s.userRepo.CountTripsCompleted(c.Context(), u.ID)
		if countErr != nil {
			return respondAppError(c, countErr)
		}
		items = append(items, adminUserItem{User: u, TripsCompleted: completed})
	}

	return c.JSON(fiber.Map{
		"users": items,
		"count": len(items),
	})
}

// AdminTogglePremium handles PATCH /api/admin/users/:id
func (s *Server) AdminTogglePremium(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		IsPremium *bool `json:"isPremium"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, svcErr := s.userRepo.GetByID(c.Context(), id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	// Absent flag means toggle, explicit flag means set
	premium := !user.IsPremium
	if req.IsPremium != nil {
		premium = *req.IsPremium
	}

	if err := s.userRepo.SetPremium(c.Context(), id, premium); err != nil {
		return respondAppError(c, err)
	}

	user.IsPremium = premium
	return c.JSON(user)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, svcErr := s.userRepo.GetByID(c.Context(), id); svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if err := s.userRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
