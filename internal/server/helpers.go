package server

import (
	"errors"
	"mime/multipart"
	"strings"

	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "postId" -> "post ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// currentUserID returns the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// formFile returns the named upload if the request carries one, nil otherwise.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// statusForError maps a typed application error to its HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		case "NOT_FOUND":
			return fiber.StatusNotFound
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the JSON error response with the status implied by the
// error's kind.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

func feedComments(comments []models.Comment) []models.FeedComment {
	out := make([]models.FeedComment, 0, len(comments))
	for _, cm := range comments {
		out = append(out, models.FeedComment{
			ID:        cm.ID,
			Username:  cm.User.Username,
			AvatarURL: cm.User.AvatarURL,
			Comment:   cm.Text,
			CreatedAt: cm.CreatedAt,
			Likes:     cm.LikesCount,
		})
	}
	return out
}

func ownComments(comments []models.Comment) []models.OwnComment {
	out := make([]models.OwnComment, 0, len(comments))
	for _, cm := range comments {
		out = append(out, models.OwnComment{
			Username:  cm.User.Username,
			Comment:   cm.Text,
			CreatedAt: cm.CreatedAt,
		})
	}
	return out
}

// feedPostFrom joins a post with its comments into the global feed projection.
func feedPostFrom(p models.Post, comments []models.Comment) models.FeedPost {
	return models.FeedPost{
		ID:        p.ID,
		UserID:    p.UserID,
		Author:    p.User.Name,
		Username:  p.User.Username,
		AvatarURL: p.User.AvatarURL,
		Text:      p.Text,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		Likes:     p.LikesCount,
		Comments:  feedComments(comments),
	}
}

// ownPostFrom joins a post with its comments into the reduced own-posts projection.
func ownPostFrom(p models.Post, comments []models.Comment) models.OwnPost {
	return models.OwnPost{
		ID:        p.ID,
		UserID:    p.UserID,
		Author:    p.User.Name,
		Username:  p.User.Username,
		AvatarURL: p.User.AvatarURL,
		Text:      p.Text,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		Likes:     p.LikesCount,
		Comments:  ownComments(comments),
	}
}
