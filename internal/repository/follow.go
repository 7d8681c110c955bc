package repository

import (
	"context"
	"errors"

	"bayaaz/internal/models"
	"bayaaz/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for poet follow operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, poetID uint) (*models.Follow, error)
	Unfollow(ctx context.Context, followerID, poetID uint) error
	IsFollowing(ctx context.Context, followerID, poetID uint) (bool, error)
	ListFollowing(ctx context.Context, followerID uint, limit, offset int) ([]*models.Follow, error)
	FollowerIDsOfPoet(ctx context.Context, poetID uint) ([]uint, error)
	CountFollowers(ctx context.Context, poetID uint) (int64, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, poetID uint) (*models.Follow, error) {
	defer observability.TrackQuery("create", "follows")()
	if followerID == poetID {
		return nil, models.NewValidationError("cannot follow yourself")
	}

	var poet models.User
	err := r.db.WithContext(ctx).
		Select("id", "is_poet").
		First(&poet, poetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Poet", poetID)
		}
		return nil, models.NewInternalError(err)
	}
	if !poet.IsPoet {
		return nil, models.NewValidationError("user is not a poet")
	}

	follow := &models.Follow{FollowerID: followerID, PoetID: poetID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("already following this poet")
		}
		return nil, models.NewInternalError(err)
	}
	return follow, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, poetID uint) error {
	defer observability.TrackQuery("delete", "follows")()
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND poet_id = ?", followerID, poetID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", poetID)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, poetID uint) (bool, error) {
	defer observability.TrackQuery("read", "follows")()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND poet_id = ?", followerID, poetID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID uint, limit, offset int) ([]*models.Follow, error) {
	defer observability.TrackQuery("list", "follows")()
	var follows []*models.Follow
	err := r.db.WithContext(ctx).
		Preload("Poet").
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

// FollowerIDsOfPoet returns all follower user IDs for a poet, used to fan out
// publish notifications.
func (r *followRepository) FollowerIDsOfPoet(ctx context.Context, poetID uint) ([]uint, error) {
	defer observability.TrackQuery("read", "follows")()
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("poet_id = ?", poetID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, poetID uint) (int64, error) {
	defer observability.TrackQuery("count", "follows")()
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("poet_id = ?", poetID).
		Count(&total).Error
	return total, err
}
