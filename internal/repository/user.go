package repository

import (
	"context"
	"errors"

	"bayaaz/internal/cache"
	"bayaaz/internal/models"
	"bayaaz/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetPoetBySlug(ctx context.Context, slug string) (*models.User, error)
	ListPoets(ctx context.Context, limit, offset int) ([]*models.User, error)
	CountPoets(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("read", "users")()
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("read", "users")()
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("read", "users")()
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetPoetBySlug(ctx context.Context, slug string) (*models.User, error) {
	defer observability.TrackQuery("read", "users")()
	var user models.User
	err := cache.Aside(ctx, cache.PoetSlugKey(slug), &user, cache.PoetTTL, func() error {
		err := r.db.WithContext(ctx).
			Where("slug = ? AND is_poet = ?", slug, true).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Poet", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListPoets(ctx context.Context, limit, offset int) ([]*models.User, error) {
	defer observability.TrackQuery("list", "users")()
	var poets []*models.User
	err := r.db.WithContext(ctx).
		Where("is_poet = ?", true).
		Order("pen_name ASC, username ASC").
		Limit(limit).
		Offset(offset).
		Find(&poets).Error
	if err != nil {
		return nil, err
	}
	return poets, nil
}

func (r *userRepository) CountPoets(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "users")()
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_poet = ?", true).
		Count(&total).Error
	return total, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.ID)
	if user.IsPoet && user.Slug != "" {
		cache.Invalidate(ctx, cache.PoetSlugKey(user.Slug))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "users")()
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
