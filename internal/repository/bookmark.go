package repository

import (
	"context"
	"errors"

	"bayaaz/internal/models"
	"bayaaz/internal/observability"

	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Add(ctx context.Context, userID, poemID uint) (*models.Bookmark, error)
	Remove(ctx context.Context, userID, poemID uint) error
	Has(ctx context.Context, userID, poemID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, error)
	PoemIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// bookmarkRepository implements BookmarkRepository
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Add records a bookmark and bumps the poem's bookmark counter in one
// transaction. Bookmarking twice is a conflict, not a second increment.
func (r *bookmarkRepository) Add(ctx context.Context, userID, poemID uint) (*models.Bookmark, error) {
	defer observability.TrackQuery("create", "bookmarks")()

	bookmark := &models.Bookmark{UserID: userID, PoemID: poemID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poem models.Poem
		if err := tx.Select("id", "status").First(&poem, poemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Poem", poemID)
			}
			return models.NewInternalError(err)
		}
		if !poem.IsPublished() {
			return models.NewValidationError("cannot bookmark an unpublished poem")
		}

		if err := tx.Create(bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflictError("poem already bookmarked")
			}
			return models.NewInternalError(err)
		}

		return tx.Model(&models.Poem{}).
			Where("id = ?", poemID).
			UpdateColumn("bookmark_count", gorm.Expr("bookmark_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

// Remove deletes a bookmark and decrements the poem's counter in one
// transaction. Removing a bookmark that does not exist is a not-found error.
func (r *bookmarkRepository) Remove(ctx context.Context, userID, poemID uint) error {
	defer observability.TrackQuery("delete", "bookmarks")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND poem_id = ?", userID, poemID).
			Delete(&models.Bookmark{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Bookmark", poemID)
		}

		return tx.Model(&models.Poem{}).
			Where("id = ? AND bookmark_count > 0", poemID).
			UpdateColumn("bookmark_count", gorm.Expr("bookmark_count - 1")).Error
	})
}

func (r *bookmarkRepository) Has(ctx context.Context, userID, poemID uint) (bool, error) {
	defer observability.TrackQuery("read", "bookmarks")()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND poem_id = ?", userID, poemID).
		Count(&count).Error
	return count > 0, err
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, error) {
	defer observability.TrackQuery("list", "bookmarks")()
	var bookmarks []*models.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Poem").
		Preload("Poem.Poet").
		Where("user_id = ?", userID).
		Order("bookmarked_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// PoemIDsByUser returns every bookmarked poem ID for the user, most recent
// first. The feed assembler uses this both for seeds and for exclusion.
func (r *bookmarkRepository) PoemIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	defer observability.TrackQuery("read", "bookmarks")()
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("bookmarked_at DESC").
		Pluck("poem_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	defer observability.TrackQuery("count", "bookmarks")()
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
