package server

import (
	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /add-comment. On success the full, refreshed post
// record is returned so clients can patch a single feed item in place.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req struct {
		PostID  uint   `json:"postId"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 || req.Comment == "" {
		return respondError(c, models.NewValidationError("Post ID and comment are required"))
	}

	exists, err := s.postRepo.Exists(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	if !exists {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	if _, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		PostID: req.PostID,
		UserID: currentUserID(c),
		Text:   req.Comment,
	}
	if err := s.commentRepo.Create(c.UserContext(), comment); err != nil {
		return respondError(c, err)
	}

	post, err := s.postRepo.GetByID(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	comments, err := s.commentRepo.ListByPost(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feedPostFrom(*post, comments))
}

// CheckCommentLike handles GET /check-comment-like/:commentId
func (s *Server) CheckCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	liked, err := s.commentRepo.IsLiked(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// LikeComment handles POST /like-comment. Unlike post likes, duplicates are
// silently absorbed and the current total is returned either way.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	var req struct {
		CommentID uint `json:"commentId"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return respondError(c, models.NewValidationError("Invalid comment ID"))
	}

	if err := s.commentRepo.Like(c.UserContext(), currentUserID(c), req.CommentID); err != nil {
		return respondError(c, err)
	}

	likes, err := s.commentRepo.CountLikes(c.UserContext(), req.CommentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// UnlikeComment handles POST /unlike-comment. Removing an absent like is a
// no-op.
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	var req struct {
		CommentID uint `json:"commentId"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return respondError(c, models.NewValidationError("Invalid comment ID"))
	}

	if err := s.commentRepo.Unlike(c.UserContext(), currentUserID(c), req.CommentID); err != nil {
		return respondError(c, err)
	}

	likes, err := s.commentRepo.CountLikes(c.UserContext(), req.CommentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}
