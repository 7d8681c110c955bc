package repository

import (
	"context"
	"errors"
	"testing"

	"bayaaz/internal/config"
	"bayaaz/internal/database"
	"bayaaz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests connect through database.Connect so the duplicate-key path
// exercises the same gorm.Config (error translation included) as production.

func TestBookmarkRepository_Add_DuplicateOnRealIndexConflicts(t *testing.T) {
	t.Parallel()

	db, err := database.Connect(&config.Config{
		DBDriver: "sqlite",
		DBName:   "file:bookmark_dup_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	poet := models.User{Username: "dup_poet", Email: "dup_poet@example.com", Password: "x", IsPoet: true, Slug: "dup-poet"}
	require.NoError(t, db.Create(&poet).Error)
	reader := models.User{Username: "dup_reader", Email: "dup_reader@example.com", Password: "x"}
	require.NoError(t, db.Create(&reader).Error)
	poem := models.Poem{
		Status:  models.StatusPublished,
		PoetID:  poet.ID,
		Title:   models.LocalizedText{"en": "Dawn"},
		Slug:    models.LocalizedText{"en": "dawn-dup"},
		Content: models.LocalizedVerses{"en": {{Couplet: "first light"}}},
	}
	require.NoError(t, db.Create(&poem).Error)

	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	_, err = repo.Add(ctx, reader.ID, poem.ID)
	require.NoError(t, err)

	_, err = repo.Add(ctx, reader.ID, poem.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The counter must reflect a single bookmark after the rejected retry.
	var stored models.Poem
	require.NoError(t, db.First(&stored, poem.ID).Error)
	assert.Equal(t, 1, stored.BookmarkCount)
}

func TestFollowRepository_Follow_DuplicateOnRealIndexConflicts(t *testing.T) {
	t.Parallel()

	db, err := database.Connect(&config.Config{
		DBDriver: "sqlite",
		DBName:   "file:follow_dup_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	poet := models.User{Username: "fdup_poet", Email: "fdup_poet@example.com", Password: "x", IsPoet: true, Slug: "fdup-poet"}
	require.NoError(t, db.Create(&poet).Error)
	reader := models.User{Username: "fdup_reader", Email: "fdup_reader@example.com", Password: "x"}
	require.NoError(t, db.Create(&reader).Error)

	repo := NewFollowRepository(db)
	ctx := context.Background()

	_, err = repo.Follow(ctx, reader.ID, poet.ID)
	require.NoError(t, err)

	_, err = repo.Follow(ctx, reader.ID, poet.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
