package server

import (
	"bayaaz/internal/models"
	"bayaaz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

type updateProfileRequest struct {
	Username       string        `json:"username"`
	PenName        string        `json:"pen_name"`
	Bio            string        `json:"bio"`
	ProfilePicture *models.Image `json:"profile_picture"`
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         userID,
		Username:       req.Username,
		PenName:        req.PenName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

type becomePoetRequest struct {
	PenName string `json:"pen_name"`
	Slug    string `json:"slug"`
}

// BecomePoet handles POST /api/users/me/become-poet
// @Summary Register the caller as a poet
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body becomePoetRequest true "Poet details"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me/become-poet [post]
func (s *Server) BecomePoet(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req becomePoetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.BecomePoet(c.Context(), service.BecomePoetInput{
		UserID:  userID,
		PenName: req.PenName,
		Slug:    req.Slug,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ListPoets handles GET /api/poets
// @Summary List poets
// @Tags poets
// @Produce json
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{poets=[]models.User,total=int}
// @Router /poets [get]
func (s *Server) ListPoets(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	poets, total, err := s.userService.ListPoets(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"poets": poets, "total": total})
}

// GetPoetBySlug handles GET /api/poets/:slug
// @Summary Get a poet by slug
// @Tags poets
// @Produce json
// @Param slug path string true "Poet slug"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /poets/{slug} [get]
func (s *Server) GetPoetBySlug(c *fiber.Ctx) error {
	poet, err := s.userService.GetPoetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}

	followers, err := s.followRepo.CountFollowers(c.Context(), poet.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	following := false
	if userID, _ := s.optionalUserID(c); userID != 0 {
		following, err = s.followRepo.IsFollowing(c.Context(), userID, poet.ID)
		if err != nil {
			return respondServiceError(c, err)
		}
	}
	return c.JSON(fiber.Map{"poet": poet, "followers": followers, "following": following})
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
// @Summary Grant admin rights to a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/promote-admin [post]
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), id, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
// @Summary Revoke admin rights from a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/demote-admin [post]
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), id, false)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
