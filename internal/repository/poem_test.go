package repository

import (
	"context"
	"regexp"
	"testing"

	"bayaaz/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPoemRepository_CountPublished(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPoemRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(42)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "poems" WHERE status = $1 AND "poems"."deleted_at" IS NULL`)).
		WithArgs(models.StatusPublished).
		WillReturnRows(rows)

	total, err := repo.CountPublished(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoemRepository_IncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPoemRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "poems" SET "views_count"=views_count + 1 WHERE id = $1 AND "poems"."deleted_at" IS NULL`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementViews(ctx, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoemRepository_RandomSample(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPoemRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "poet_id", "status"}).
		AddRow(1, 3, models.StatusPublished).
		AddRow(2, 4, models.StatusPublished)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "poems" WHERE status = $1 AND "poems"."deleted_at" IS NULL ORDER BY RANDOM() LIMIT $2 OFFSET $3`)).
		WithArgs(models.StatusPublished, 2, 10).
		WillReturnRows(rows)

	poetRows := sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(4)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2) AND "users"."deleted_at" IS NULL`)).
		WithArgs(3, 4).
		WillReturnRows(poetRows)

	poems, err := repo.RandomSample(ctx, 2, 10)
	assert.NoError(t, err)
	require.Len(t, poems, 2)
	assert.Equal(t, uint(1), poems[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoemRepository_PersonalizedCandidates_NoSeeds(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewPoemRepository(db)

	// No seeds means no query at all.
	poems, err := repo.PersonalizedCandidates(context.Background(), nil, nil, nil, 10, 0)
	assert.NoError(t, err)
	assert.Empty(t, poems)
}

func TestPoemRepository_MetaByIDs_Empty(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewPoemRepository(db)

	meta, err := repo.MetaByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, meta)
}

func TestPoemRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPoemRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "poems" WHERE "poems"."id" = $1`)).
		WithArgs(404, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	poem, err := repo.GetByID(ctx, 404)
	assert.Error(t, err)
	assert.Nil(t, poem)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoemRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPoemRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "poet_id"}).AddRow(5, 2)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "poems" WHERE slug ->> $1 = $2 AND "poems"."deleted_at" IS NULL ORDER BY "poems"."id" LIMIT $3`)).
		WithArgs("en", "dil-e-nadaan", 1).
		WillReturnRows(rows)

	poetRows := sqlmock.NewRows([]string{"id"}).AddRow(2)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(2).
		WillReturnRows(poetRows)

	poem, err := repo.GetBySlug(ctx, "en", "dil-e-nadaan")
	assert.NoError(t, err)
	require.NotNil(t, poem)
	assert.Equal(t, uint(5), poem.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
