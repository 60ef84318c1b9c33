package server

import (
	"comunidad/internal/notifications"
	"comunidad/internal/observability"
	"comunidad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleFavorite handles POST /favoritos
// @Summary Toggle a favorite
// @Description Adds the post to the user's favorites, or removes it when already present
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body object{userId=int,postId=int} true "Favorite"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /favoritos [post]
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID flexID `json:"userId"`
		PostID flexID `json:"postId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	added, err := s.favoriteService.ToggleFavorite(ctx, service.ToggleFavoriteInput{
		UserID: req.UserID.value(),
		PostID: req.PostID.value(),
	})
	if err != nil {
		return respondError(c, err)
	}

	message := observability.ResultRemoved
	if added {
		message = observability.ResultAdded
	}

	s.publishForumEvent(ctx, notifications.EventFavoriteToggled, fiber.Map{
		"userId": req.UserID.value(),
		"postId": req.PostID.value(),
		"added":  added,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// GetFavorites handles GET /favoritos/:userId
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.favoriteService.ListFavorites(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
