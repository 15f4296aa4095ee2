package server

import (
	"strings"

	"travelbuddy/internal/models"

	"github.com/gofiber/fiber/v2"
)

const blogPreviewLength = 200

// blogListItem is the list-view projection of a blog with per-user flags.
type blogListItem struct {
	models.Blog
	Preview      string `json:"preview"`
	LikeCount    int64  `json:"likeCount"`
	IsLiked      bool   `json:"isLiked"`
	IsWishlisted bool   `json:"isWishlisted"`
}

// derivePreview returns the stored preview, falling back to a truncated
// slice of the content.
func derivePreview(blog *models.Blog) string {
	if blog.Preview != "" {
		return blog.Preview
	}
	content := []rune(blog.Content)
	if len(content) <= blogPreviewLength {
		return blog.Content
	}
	return string(content[:blogPreviewLength]) + "..."
}

// GetBlogs handles GET /api/blogs. Auth is optional; when a valid token is
// present the response carries per-user isLiked/isWishlisted flags.
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	search := strings.TrimSpace(c.Query("search"))

	blogs, err := s.blogRepo.List(c.Context(), search)
	if err != nil {
		return respondAppError(c, err)
	}

	blogIDs := make([]uint, 0, len(blogs))
	for _, b := range blogs {
		blogIDs = append(blogIDs, b.ID)
	}

	likeCounts, err := s.blogRepo.CountLikesForBlogs(c.Context(), blogIDs)
	if err != nil {
		return respondAppError(c, err)
	}

	likedSet := map[uint]bool{}
	wishlistedSet := map[uint]bool{}
	if userID, ok := s.optionalUserID(c); ok {
		likedIDs, likeErr := s.blogRepo.GetLikedBlogIDs(c.Context(), userID)
		if likeErr != nil {
			return respondAppError(c, likeErr)
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}

		wishIDs, wishErr := s.blogRepo.GetWishlistedBlogIDs(c.Context(), userID)
		if wishErr != nil {
			return respondAppError(c, wishErr)
		}
		for _, id := range wishIDs {
			wishlistedSet[id] = true
		}
	}

	items := make([]blogListItem, 0, len(blogs))
	for _, b := range blogs {
		// List view carries the preview only, never the full body
		preview := derivePreview(&b)
		b.Content = ""
		items = append(items, blogListItem{
			Blog:         b,
			Preview:      preview,
			LikeCount:    likeCounts[b.ID],
			IsLiked:      likedSet[b.ID],
			IsWishlisted: wishlistedSet[b.ID],
		})
	}

	return c.JSON(fiber.Map{
		"blogs": items,
		"count": len(items),
	})
}

// CreateBlog handles POST /api/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Preview   string `json:"preview"`
		Location  string `json:"location"`
		Tags      string `json:"tags"`
		Images    string `json:"images"`
		IsPremium bool   `json:"is_premium"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	blog := &models.Blog{
		Title:     req.Title,
		Content:   req.Content,
		Preview:   req.Preview,
		Location:  req.Location,
		Tags:      req.Tags,
		Images:    req.Images,
		IsPremium: req.IsPremium,
		AuthorID:  userID,
	}
	if blog.Preview == "" {
		blog.Preview = derivePreview(blog)
	}

	if err := s.blogRepo.Create(c.Context(), blog); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// GetBlog handles GET /api/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogRepo.GetCached(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	likeCount, err := s.blogRepo.CountLikesCached(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	isLiked := false
	isWishlisted := false
	if userID, ok := s.optionalUserID(c); ok {
		like, likeErr := s.blogRepo.GetLike(c.Context(), userID, id)
		if likeErr != nil {
			return respondAppError(c, likeErr)
		}
		isLiked = like != nil

		item, wishErr := s.blogRepo.GetWishlistItem(c.Context(), userID, id)
		if wishErr != nil {
			return respondAppError(c, wishErr)
		}
		isWishlisted = item != nil
	}

	return c.JSON(fiber.Map{
		"blog":         blog,
		"likeCount":    likeCount,
		"isLiked":      isLiked,
		"isWishlisted": isWishlisted,
	})
}

// DeleteBlog handles DELETE /api/blogs/:id (author only)
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if blog.AuthorID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the author can delete this blog"))
	}

	if err := s.blogRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog deleted successfully",
	})
}

// ToggleLike handles POST /api/blogs/:id/like. One request likes, the next
// unlikes. The response carries the final state and like count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.blogRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	existing, err := s.blogRepo.GetLike(c.Context(), userID, id)
	if err != nil {
		return respondAppError(c, err)
	}

	liked := false
	if existing == nil {
		if err := s.blogRepo.CreateLike(c.Context(), &models.Like{UserID: userID, BlogID: id}); err != nil {
			return respondAppError(c, err)
		}
		liked = true
	} else {
		if err := s.blogRepo.DeleteLike(c.Context(), userID, id); err != nil {
			return respondAppError(c, err)
		}
	}

	count, err := s.blogRepo.CountLikes(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"isLiked":   liked,
		"likeCount": count,
	})
}

// ToggleWishlist handles POST /api/blogs/:id/wishlist
func (s *Server) ToggleWishlist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.blogRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	existing, err := s.blogRepo.GetWishlistItem(c.Context(), userID, id)
	if err != nil {
		return respondAppError(c, err)
	}

	wishlisted := false
	if existing == nil {
		if err := s.blogRepo.CreateWishlistItem(c.Context(), &models.WishlistItem{UserID: userID, BlogID: id}); err != nil {
			return respondAppError(c, err)
		}
		wishlisted = true
	} else {
		if err := s.blogRepo.DeleteWishlistItem(c.Context(), userID, id); err != nil {
			return respondAppError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"isWishlisted": wishlisted,
	})
}

// GetWishlist handles GET /api/wishlist
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	blogs, err := s.blogRepo.GetWishlistBlogs(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": blogs,
		"count": len(blogs),
	})
}
