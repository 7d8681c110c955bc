package service

import (
	"context"
	"testing"

	"bayaaz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getPoetBySlugFn func(context.Context, string) (*models.User, error)
	listPoetsFn     func(context.Context, int, int) ([]*models.User, error)
	countPoetsFn    func(context.Context) (int64, error)
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetPoetBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.getPoetBySlugFn(ctx, slug)
}
func (s *userRepoStub) ListPoets(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listPoetsFn(ctx, limit, offset)
}
func (s *userRepoStub) CountPoets(ctx context.Context) (int64, error) { return s.countPoetsFn(ctx) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", "email")
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", "username")
		},
		getPoetBySlugFn: func(context.Context, string) (*models.User, error) {
			return nil, models.NewNotFoundError("Poet", "slug")
		},
		listPoetsFn:  func(context.Context, int, int) ([]*models.User, error) { return nil, nil },
		countPoetsFn: func(context.Context) (int64, error) { return 0, nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

func poetUser(id uint) *models.User {
	return &models.User{ID: id, Username: "mirza", IsPoet: true, PenName: "Mirza", Slug: "mirza"}
}

func newPoemService(poems *poemRepoStub, users *userRepoStub) *PoemService {
	return NewPoemService(poems, users, nil, nil)
}

func TestCreatePoemRequiresPoet(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPoet: false}, nil
	}

	svc := newPoemService(noopPoemRepo(), users)
	_, err := svc.CreatePoem(context.Background(), CreatePoemInput{
		PoetID: 3,
		Title:  models.LocalizedText{"en": "Dawn"},
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestCreatePoemStartsAsDraft(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) { return poetUser(id), nil }

	var created *models.Poem
	poems := noopPoemRepo()
	poems.createFn = func(_ context.Context, p *models.Poem) error {
		p.ID = 42
		created = p
		return nil
	}
	poems.getByIDFn = func(_ context.Context, id uint) (*models.Poem, error) { return created, nil }

	svc := newPoemService(poems, users)
	poem, err := svc.CreatePoem(context.Background(), CreatePoemInput{
		PoetID:  3,
		Title:   models.LocalizedText{"en": "Dawn", "ur": "Subah"},
		Slug:    models.LocalizedText{"en": "dawn"},
		Content: models.LocalizedVerses{"en": {{Couplet: "first light"}}},
		Topics:  []string{"morning"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, poem.Status)
	assert.Equal(t, uint(3), poem.PoetID)
}

func TestCreatePoemRejectsUnsupportedLanguage(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) { return poetUser(id), nil }

	svc := newPoemService(noopPoemRepo(), users)
	_, err := svc.CreatePoem(context.Background(), CreatePoemInput{
		PoetID: 3,
		Title:  models.LocalizedText{"fr": "Aube"},
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestGetPoemHidesDraftFromStrangers(t *testing.T) {
	draft := &models.Poem{ID: 5, PoetID: 3, Status: models.StatusDraft}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return draft, nil }

	svc := newPoemService(poems, noopUserRepo())

	_, err := svc.GetPoem(context.Background(), 5, 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	got, err := svc.GetPoem(context.Background(), 5, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
}

func TestGetPoemAdminSeesDrafts(t *testing.T) {
	draft := &models.Poem{ID: 5, PoetID: 3, Status: models.StatusDraft}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return draft, nil }

	isAdmin := func(_ context.Context, userID uint) (bool, error) { return userID == 99, nil }
	svc := NewPoemService(poems, noopUserRepo(), isAdmin, nil)

	got, err := svc.GetPoem(context.Background(), 5, 99)
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
}

func TestGetPoemBySlugIncrementsViews(t *testing.T) {
	poem := publishedPoem(7, 3, models.LocalizedVerses{"en": {{Couplet: "c"}}})
	poem.ViewsCount = 10

	incremented := false
	poems := noopPoemRepo()
	poems.getBySlugFn = func(_ context.Context, lang, slug string) (*models.Poem, error) {
		assert.Equal(t, "en", lang)
		assert.Equal(t, "poem-slug", slug)
		return poem, nil
	}
	poems.incrementViewsFn = func(_ context.Context, id uint) error {
		assert.Equal(t, uint(7), id)
		incremented = true
		return nil
	}

	svc := newPoemService(poems, noopUserRepo())
	got, err := svc.GetPoemBySlug(context.Background(), "en", "poem-slug")
	require.NoError(t, err)
	assert.True(t, incremented)
	assert.Equal(t, 11, got.ViewsCount)
}

func TestGetPoemBySlugRejectsUnknownLanguage(t *testing.T) {
	svc := newPoemService(noopPoemRepo(), noopUserRepo())
	_, err := svc.GetPoemBySlug(context.Background(), "de", "gedicht")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUpdatePoemOwnerOnly(t *testing.T) {
	poem := publishedPoem(5, 3, models.LocalizedVerses{"en": {{Couplet: "c"}}})
	poem.Title = models.LocalizedText{"en": "Old"}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	svc := newPoemService(poems, noopUserRepo())

	_, err := svc.UpdatePoem(context.Background(), UpdatePoemInput{
		UserID: 99,
		PoemID: 5,
		Title:  models.LocalizedText{"en": "New"},
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	got, err := svc.UpdatePoem(context.Background(), UpdatePoemInput{
		UserID: 3,
		PoemID: 5,
		Title:  models.LocalizedText{"en": "New"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title["en"])
}

func TestUpdatePoemNilFieldsUnchanged(t *testing.T) {
	poem := publishedPoem(5, 3, models.LocalizedVerses{"en": {{Couplet: "keep"}}})
	poem.Title = models.LocalizedText{"en": "Keep"}
	poem.Topics = models.StringList{"old"}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	svc := newPoemService(poems, noopUserRepo())
	got, err := svc.UpdatePoem(context.Background(), UpdatePoemInput{
		UserID:   3,
		PoemID:   5,
		Category: "ghazal",
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title["en"])
	assert.Equal(t, models.StringList{"old"}, got.Topics)
	assert.Equal(t, "ghazal", got.Category)
}

func TestPublishPoemNotifiesFollowers(t *testing.T) {
	poem := &models.Poem{
		ID:      5,
		PoetID:  3,
		Status:  models.StatusDraft,
		Title:   models.LocalizedText{"en": "Dawn"},
		Slug:    models.LocalizedText{"en": "dawn"},
		Content: models.LocalizedVerses{"en": {{Couplet: "c"}}},
	}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	var notified *models.Poem
	onPublish := func(_ context.Context, p *models.Poem) { notified = p }
	svc := NewPoemService(poems, noopUserRepo(), nil, onPublish)

	got, err := svc.PublishPoem(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status)
	require.NotNil(t, notified)
	assert.Equal(t, uint(5), notified.ID)
}

func TestPublishPoemAlreadyPublishedConflicts(t *testing.T) {
	poem := publishedPoem(5, 3, models.LocalizedVerses{"en": {{Couplet: "c"}}})
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	svc := newPoemService(poems, noopUserRepo())
	_, err := svc.PublishPoem(context.Background(), 3, 5)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestPublishPoemEmptyContentRejected(t *testing.T) {
	poem := &models.Poem{ID: 5, PoetID: 3, Status: models.StatusDraft}
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	svc := newPoemService(poems, noopUserRepo())
	_, err := svc.PublishPoem(context.Background(), 3, 5)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUnpublishPoemBackToDraft(t *testing.T) {
	poem := publishedPoem(5, 3, models.LocalizedVerses{"en": {{Couplet: "c"}}})
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }

	svc := newPoemService(poems, noopUserRepo())
	got, err := svc.UnpublishPoem(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)

	_, err = svc.UnpublishPoem(context.Background(), 3, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestDeletePoemOwnerOnly(t *testing.T) {
	poem := publishedPoem(5, 3, models.LocalizedVerses{"en": {{Couplet: "c"}}})
	deleted := false
	poems := noopPoemRepo()
	poems.getByIDFn = func(context.Context, uint) (*models.Poem, error) { return poem, nil }
	poems.deleteFn = func(_ context.Context, id uint) error {
		assert.Equal(t, uint(5), id)
		deleted = true
		return nil
	}

	svc := newPoemService(poems, noopUserRepo())

	err := svc.DeletePoem(context.Background(), 99, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.False(t, deleted)

	require.NoError(t, svc.DeletePoem(context.Background(), 3, 5))
	assert.True(t, deleted)
}

func TestListPoemsByPoetDraftVisibility(t *testing.T) {
	var gotIncludeDrafts bool
	poems := noopPoemRepo()
	poems.listByPoetFn = func(_ context.Context, poetID uint, includeDrafts bool, _, _ int) ([]*models.Poem, error) {
		gotIncludeDrafts = includeDrafts
		return nil, nil
	}

	svc := newPoemService(poems, noopUserRepo())

	_, err := svc.ListPoemsByPoet(context.Background(), 3, 0, 10, 0)
	require.NoError(t, err)
	assert.False(t, gotIncludeDrafts, "anonymous readers see published only")

	_, err = svc.ListPoemsByPoet(context.Background(), 3, 3, 10, 0)
	require.NoError(t, err)
	assert.True(t, gotIncludeDrafts, "the poet sees their own drafts")

	_, err = svc.ListPoemsByPoet(context.Background(), 3, 42, 10, 0)
	require.NoError(t, err)
	assert.False(t, gotIncludeDrafts, "other users do not see drafts")
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, []string{"ishq", "dil"}, normalizeQuery("  Ishq, Dil!  "))
	assert.Nil(t, normalizeQuery("   "))
	assert.Nil(t, normalizeQuery(`"...!"`))
}
