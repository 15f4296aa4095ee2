package server

import (
	"travelbuddy/internal/models"
	"travelbuddy/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetCached(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	tripsCompleted, err := s.userRepo.CountTripsCompleted(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"user":           user,
		"tripsCompleted": tripsCompleted,
		"interests":      user.InterestList(),
	})
}

// UpdateProfile handles PATCH /api/profile. Only fields present in the body
// are updated.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Interests *string `json:"interests"`
		Location  *string `json:"location"`
		Bio       *string `json:"bio"`
		Avatar    *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if req.Name != nil {
		if nameErr := validation.ValidateName(*req.Name); nameErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(nameErr.Error()))
		}
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// ChangePassword handles PATCH /api/profile/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Current and new password are required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Current password is incorrect"))
	}

	if valErr := validation.ValidatePassword(req.NewPassword); valErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(valErr.Error()))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

// GetCompletedTrips handles GET /api/profile/trips
func (s *Server) GetCompletedTrips(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	trips, err := s.tripService.ListCompletedTrips(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"trips": trips,
		"count": len(trips),
	})
}
