package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyBookmarks handles GET /api/bookmarks
// @Summary List the caller's bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{bookmarks=[]models.Bookmark,total=int}
// @Router /bookmarks [get]
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	bookmarks, err := s.bookmarkRepo.ListByUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	total, err := s.bookmarkRepo.CountByUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarks": bookmarks, "total": total})
}

// AddBookmark handles POST /api/bookmarks/:poemId
// @Summary Bookmark a poem
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param poemId path int true "Poem ID"
// @Success 201 {object} models.Bookmark
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bookmarks/{poemId} [post]
func (s *Server) AddBookmark(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	poemID, err := s.parseID(c, "poemId")
	if err != nil {
		return nil
	}

	bookmark, err := s.bookmarkRepo.Add(c.Context(), userID, poemID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

// RemoveBookmark handles DELETE /api/bookmarks/:poemId
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param poemId path int true "Poem ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /bookmarks/{poemId} [delete]
func (s *Server) RemoveBookmark(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	poemID, err := s.parseID(c, "poemId")
	if err != nil {
		return nil
	}

	if err := s.bookmarkRepo.Remove(c.Context(), userID, poemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bookmark removed"})
}
