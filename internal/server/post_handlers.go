package server

import (
	"minix/internal/middleware"
	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
)

// placeholderAvatar is returned for authors who never uploaded one, matching
// what feed clients render for a missing avatar.
const placeholderAvatar = "https://via.placeholder.com/40"

// AddPost handles POST /add-post. The body is multipart form data with a
// required "text" field and an optional "image" upload.
func (s *Server) AddPost(c *fiber.Ctx) error {
	text := c.FormValue("text")
	if text == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	var imageURL *string
	if fh := formFile(c, "image"); fh != nil {
		url, upErr := s.uploads.Save(fh)
		if upErr != nil {
			middleware.UploadsTotal.WithLabelValues("rejected").Inc()
			return respondError(c, upErr)
		}
		middleware.UploadsTotal.WithLabelValues("stored").Inc()
		imageURL = &url
	}

	post := &models.Post{
		UserID:   user.ID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return respondError(c, err)
	}

	avatar := user.AvatarURL
	if avatar == nil {
		v := placeholderAvatar
		avatar = &v
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreatedPost{
		FeedPost: models.FeedPost{
			ID:        post.ID,
			UserID:    post.UserID,
			Author:    user.Name,
			Username:  user.Username,
			AvatarURL: avatar,
			Text:      post.Text,
			ImageURL:  post.ImageURL,
			CreatedAt: post.CreatedAt,
			Likes:     0,
			Comments:  []models.FeedComment{},
		},
		LikedBy: []uint{},
	})
}

// GetPosts handles GET /posts: every post, newest first, with live like
// counts and full comment lists.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	commentsByPost, err := s.commentRepo.ListByPosts(c.UserContext(), postIDs)
	if err != nil {
		return respondError(c, err)
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		feed = append(feed, feedPostFrom(p, commentsByPost[p.ID]))
	}
	return c.JSON(feed)
}

// GetMyPosts handles GET /my-posts: the caller's posts with the reduced
// comment projection.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListByUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	commentsByPost, err := s.commentRepo.ListByPosts(c.UserContext(), postIDs)
	if err != nil {
		return respondError(c, err)
	}

	feed := make([]models.OwnPost, 0, len(posts))
	for _, p := range posts {
		feed = append(feed, ownPostFrom(p, commentsByPost[p.ID]))
	}
	return c.JSON(feed)
}

// DeletePost handles DELETE /delete-post/:postId. Only the owner may delete;
// a missing post and a foreign post get the same 403.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	deleted, err := s.postRepo.Delete(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respondError(c,
			models.NewForbiddenError("You can only delete your own posts"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post deleted successfully",
	})
}

// CheckLike handles GET /check-like/:postId
func (s *Server) CheckLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	liked, err := s.postRepo.IsLiked(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// LikePost handles POST /like-post. A duplicate like is rejected rather than
// absorbed, and the fresh total is returned on success.
func (s *Server) LikePost(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return respondError(c, models.NewValidationError("Invalid post ID"))
	}

	exists, err := s.postRepo.Exists(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	if !exists {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	inserted, err := s.postRepo.Like(c.UserContext(), currentUserID(c), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	if !inserted {
		return respondError(c,
			models.NewValidationError("You already liked this post"))
	}

	likes, err := s.postRepo.CountLikes(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// UnlikePost handles POST /unlike-post, mirroring LikePost's strictness.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return respondError(c, models.NewValidationError("Invalid post ID"))
	}

	exists, err := s.postRepo.Exists(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	if !exists {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	removed, err := s.postRepo.Unlike(c.UserContext(), currentUserID(c), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return respondError(c,
			models.NewValidationError("You have not liked this post"))
	}

	likes, err := s.postRepo.CountLikes(c.UserContext(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}
