package server

import (
	"bayaaz/internal/models"
	"bayaaz/internal/service"

	"github.com/gofiber/fiber/v2"
)

type poemRequest struct {
	Title      models.LocalizedText   `json:"title"`
	Slug       models.LocalizedText   `json:"slug"`
	Content    models.LocalizedVerses `json:"content"`
	Topics     []string               `json:"topics"`
	Category   string                 `json:"category"`
	CoverImage *models.Image          `json:"cover_image"`
}

// CreatePoem handles POST /api/poems
// @Summary Create a poem
// @Description Create a draft poem with multilingual title, slug and content
// @Tags poems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body poemRequest true "Poem payload"
// @Success 201 {object} models.Poem
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /poems [post]
func (s *Server) CreatePoem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req poemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	poem, err := s.poemService.CreatePoem(c.Context(), service.CreatePoemInput{
		PoetID:     userID,
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Topics:     req.Topics,
		Category:   req.Category,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(poem)
}

// GetPoem handles GET /api/poems/:id
// @Summary Get a poem by ID
// @Tags poems
// @Produce json
// @Param id path int true "Poem ID"
// @Success 200 {object} models.Poem
// @Failure 404 {object} models.ErrorResponse
// @Router /poems/{id} [get]
func (s *Server) GetPoem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := s.optionalUserID(c)

	poem, err := s.poemService.GetPoem(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.attachBookmarked(c, poem, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poem)
}

// GetPoemBySlug handles GET /api/poems/:lang/:slug
// @Summary Get a published poem by language-specific slug
// @Tags poems
// @Produce json
// @Param lang path string true "Language code (en, hi, ur)"
// @Param slug path string true "Poem slug"
// @Success 200 {object} models.Poem
// @Failure 404 {object} models.ErrorResponse
// @Router /poems/{lang}/{slug} [get]
func (s *Server) GetPoemBySlug(c *fiber.Ctx) error {
	lang := c.Params("lang")
	slug := c.Params("slug")

	poem, err := s.poemService.GetPoemBySlug(c.Context(), lang, slug)
	if err != nil {
		return respondServiceError(c, err)
	}
	userID, _ := s.optionalUserID(c)
	if err := s.attachBookmarked(c, poem, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poem)
}

// attachBookmarked fills the transient Bookmarked field for signed-in readers.
func (s *Server) attachBookmarked(c *fiber.Ctx, poem *models.Poem, userID uint) error {
	if userID == 0 || s.bookmarkRepo == nil {
		return nil
	}
	bookmarked, err := s.bookmarkRepo.Has(c.Context(), userID, poem.ID)
	if err != nil {
		return err
	}
	poem.Bookmarked = &bookmarked
	return nil
}

// ListPoems handles GET /api/poems
// @Summary Browse published poems
// @Tags poems
// @Produce json
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Param sort query string false "Sort: new, popular, most_bookmarked"
// @Success 200 {array} models.Poem
// @Router /poems [get]
func (s *Server) ListPoems(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	poems, err := s.poemService.ListPoems(c.Context(), service.ListPoemsInput{
		Limit:  p.Limit,
		Offset: p.Offset,
		Sort:   c.Query("sort", "new"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poems)
}

// UpdatePoem handles PUT /api/poems/:id
// @Summary Update a poem
// @Tags poems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poem ID"
// @Param request body poemRequest true "Fields to update"
// @Success 200 {object} models.Poem
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /poems/{id} [put]
func (s *Server) UpdatePoem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req poemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	poem, err := s.poemService.UpdatePoem(c.Context(), service.UpdatePoemInput{
		UserID:     userID,
		PoemID:     id,
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Topics:     req.Topics,
		Category:   req.Category,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poem)
}

// PublishPoem handles POST /api/poems/:id/publish
// @Summary Publish a draft poem
// @Tags poems
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poem ID"
// @Success 200 {object} models.Poem
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /poems/{id}/publish [post]
func (s *Server) PublishPoem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	poem, err := s.poemService.PublishPoem(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poem)
}

// UnpublishPoem handles POST /api/poems/:id/unpublish
// @Summary Move a published poem back to draft
// @Tags poems
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poem ID"
// @Success 200 {object} models.Poem
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /poems/{id}/unpublish [post]
func (s *Server) UnpublishPoem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	poem, err := s.poemService.UnpublishPoem(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poem)
}

// DeletePoem handles DELETE /api/poems/:id
// @Summary Delete a poem
// @Tags poems
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poem ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /poems/{id} [delete]
func (s *Server) DeletePoem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.poemService.DeletePoem(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Poem deleted"})
}

// GetMyDrafts handles GET /api/poems/drafts/me
// @Summary List the caller's draft poems
// @Tags poems
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Poem
// @Router /poems/drafts/me [get]
func (s *Server) GetMyDrafts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	poems, err := s.poemService.ListPoemsByPoet(c.Context(), userID, userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	drafts := make([]*models.Poem, 0, len(poems))
	for _, poem := range poems {
		if !poem.IsPublished() {
			drafts = append(drafts, poem)
		}
	}
	return c.JSON(drafts)
}

// GetAllDrafts handles GET /api/admin/drafts
// @Summary List all draft poems (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Poem
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/drafts [get]
func (s *Server) GetAllDrafts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	poems, err := s.poemRepo.ListDrafts(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poems)
}

// GetPoetPoems handles GET /api/poets/:slug/poems
// @Summary List a poet's published poems
// @Tags poets
// @Produce json
// @Param slug path string true "Poet slug"
// @Success 200 {array} models.Poem
// @Failure 404 {object} models.ErrorResponse
// @Router /poets/{slug}/poems [get]
func (s *Server) GetPoetPoems(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p := parsePagination(c, 20)

	poet, err := s.userService.GetPoetBySlug(c.Context(), slug)
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := s.optionalUserID(c)
	poems, err := s.poemService.ListPoemsByPoet(c.Context(), poet.ID, userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poems)
}

// SearchPoems handles GET /api/poems/search
// @Summary Search published poems
// @Description Match titles and topics, synonym-expanded across languages
// @Tags poems
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Poem
// @Failure 400 {object} models.ErrorResponse
// @Router /poems/search [get]
func (s *Server) SearchPoems(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	poems, err := s.searchService.SearchPoems(c.Context(), service.SearchInput{
		Query:  c.Query("q"),
		Limit:  p.Limit,
		Offset: p.Offset,
		UserID: userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(poems)
}
