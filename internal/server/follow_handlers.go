package server

import (
	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CheckFollow handles GET /check-follow/:userId
func (s *Server) CheckFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, err := s.followRepo.IsFollowing(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isFollowing": following})
}

// Follow handles POST /follow. Following an already-followed user succeeds
// without creating a duplicate edge.
func (s *Server) Follow(c *fiber.Ctx) error {
	var req struct {
		FollowingID uint `json:"followingId"`
	}
	if err := c.BodyParser(&req); err != nil || req.FollowingID == 0 {
		return respondError(c, models.NewValidationError("Invalid following ID"))
	}

	if err := s.followRepo.Follow(c.UserContext(), currentUserID(c), req.FollowingID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Unfollow handles POST /unfollow. Unfollowing someone never followed is a
// no-op.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	var req struct {
		FollowingID uint `json:"followingId"`
	}
	if err := c.BodyParser(&req); err != nil || req.FollowingID == 0 {
		return respondError(c, models.NewValidationError("Invalid following ID"))
	}

	if err := s.followRepo.Unfollow(c.UserContext(), currentUserID(c), req.FollowingID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
