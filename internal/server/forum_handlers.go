package server

import (
	"comunidad/internal/notifications"
	"comunidad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /foro/publicaciones
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /foro/publicaciones
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID  flexID `json:"userId"`
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:  req.UserID.value(),
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishForumEvent(ctx, notifications.EventPostCreated, post)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /foro/publicaciones/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /foro/publicaciones/:postId
// @Summary Delete a forum post
// @Description Removes the post's favorites, then its replies, then the post, in one transaction
// @Tags forum
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /foro/publicaciones/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	result, err := s.postService.DeletePost(ctx, postID)
	if err != nil {
		return respondError(c, err)
	}

	s.publishForumEvent(ctx, notifications.EventPostDeleted, fiber.Map{
		"postId":           result.PostID,
		"favoritesRemoved": result.FavoritesRemoved,
		"repliesRemoved":   result.RepliesRemoved,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "deleted",
	})
}

// GetReplies handles GET /foro/publicaciones/:postId/respuestas
func (s *Server) GetReplies(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	replies, err := s.replyService.ListReplies(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(replies)
}

// CreateReply handles POST /foro/publicaciones/:postId/respuestas
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		UserID  flexID `json:"userId"`
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	reply, err := s.replyService.CreateReply(ctx, service.CreateReplyInput{
		PostID:  postID,
		UserID:  req.UserID.value(),
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishForumEvent(ctx, notifications.EventReplyCreated, reply)
	return c.Status(fiber.StatusCreated).JSON(reply)
}
