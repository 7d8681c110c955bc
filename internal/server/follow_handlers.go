package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyFollowing handles GET /api/follows
// @Summary List poets the caller follows
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Follow
// @Router /follows [get]
func (s *Server) GetMyFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	follows, err := s.followRepo.ListFollowing(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(follows)
}

// FollowPoet handles POST /api/follows/:poetId
// @Summary Follow a poet
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param poetId path int true "Poet user ID"
// @Success 201 {object} models.Follow
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /follows/{poetId} [post]
func (s *Server) FollowPoet(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	poetID, err := s.parseID(c, "poetId")
	if err != nil {
		return nil
	}

	follow, err := s.followRepo.Follow(c.Context(), userID, poetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowPoet handles DELETE /api/follows/:poetId
// @Summary Unfollow a poet
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param poetId path int true "Poet user ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /follows/{poetId} [delete]
func (s *Server) UnfollowPoet(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	poetID, err := s.parseID(c, "poetId")
	if err != nil {
		return nil
	}

	if err := s.followRepo.Unfollow(c.Context(), userID, poetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}
