package server

import (
	"strings"
	"time"

	"travelbuddy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// requirePremium writes a 403 when the user has no premium membership.
// Returns errResponseWritten in that case so handlers can bail with nil.
func (s *Server) requirePremium(c *fiber.Ctx, userID uint) error {
	premium, err := s.isPremiumByUserID(c.Context(), userID)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return errResponseWritten
	}
	if !premium {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Premium membership required"))
		return errResponseWritten
	}
	return nil
}

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"groups": groups,
		"count":  len(groups),
	})
}

// CreateGroup handles POST /api/groups (premium users only)
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.requirePremium(c, userID); err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Group name is required"))
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
	}
	if err := s.groupRepo.Create(c.Context(), group); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	group, svcErr := s.groupRepo.GetByID(c.Context(), id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(group)
}

// GetGroupPosts handles GET /api/groups/:id/posts. Reading is open to any
// authenticated user; only posting requires premium.
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.groupRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	posts, svcErr := s.groupRepo.ListPosts(c.Context(), id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// CreateGroupPost handles POST /api/groups/:id/posts (premium users only)
func (s *Server) CreateGroupPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requirePremium(c, userID); err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Location string `json:"location"`
		PostDate string `json:"postDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	postDate := time.Now()
	if req.PostDate != "" {
		parsed, parseErr := parseDate(req.PostDate)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid post date"))
		}
		postDate = parsed
	}

	if _, err := s.groupRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	post := &models.GroupPost{
		GroupID:  id,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Location: req.Location,
		PostDate: postDate,
	}
	if svcErr := s.groupRepo.CreatePost(c.Context(), post); svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
