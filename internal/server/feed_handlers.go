package server

import (
	"bayaaz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/poems/feed?page=<int>&limit=<int>
//
// Anonymous readers get a random sample of published poems; signed-in readers
// with bookmarks get candidates related to their bookmark history. Each poem
// expands into up to one item per language.
// @Summary Poetry feed
// @Description Page of mixed-language poem excerpts, personalized when bookmark history exists
// @Tags feed
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} models.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /poems/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page, limit, err := s.parsePageLimit(c)
	if err != nil {
		return nil
	}

	userID, _ := s.optionalUserID(c)

	// Personalization can be ramped down per user without a deploy; an absent
	// flag means on. Disabled users fall back to the anonymous random sample.
	if userID != 0 && !s.featureFlags.EnabledOrDefault("personalized_feed", userID, true) {
		userID = 0
	}

	feed, err := s.feedService.AssembleFeed(c.Context(), service.FeedInput{
		Page:   page,
		Limit:  limit,
		UserID: userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(feed)
}
