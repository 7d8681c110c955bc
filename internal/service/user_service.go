package service

import (
	"context"

	"bayaaz/internal/models"
	"bayaaz/internal/repository"
	"bayaaz/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID         uint
	Username       string
	PenName        string
	Bio            string
	ProfilePicture *models.Image
}

type BecomePoetInput struct {
	UserID  uint
	PenName string
	Slug    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetPoetBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.userRepo.GetPoetBySlug(ctx, slug)
}

func (s *UserService) ListPoets(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	poets, err := s.userRepo.ListPoets(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountPoets(ctx)
	if err != nil {
		return nil, 0, err
	}
	return poets, total, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxPenNameLen = 60

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.PenName != "" {
		if len(in.PenName) > maxPenNameLen {
			return nil, models.NewValidationError("Pen name too long (max 60 characters)")
		}
		user.PenName = in.PenName
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BecomePoet upgrades a reader account to a poet profile with a public slug.
func (s *UserService) BecomePoet(ctx context.Context, in BecomePoetInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsPoet {
		return nil, models.NewConflictError("Account is already a poet")
	}
	if in.PenName == "" {
		return nil, models.NewValidationError("Pen name is required")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetPoetBySlug(ctx, in.Slug); err == nil && existing != nil {
		return nil, models.NewConflictError("Slug is already taken")
	}

	user.IsPoet = true
	user.PenName = in.PenName
	user.Slug = in.Slug
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAdmin(ctx context.Context, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
