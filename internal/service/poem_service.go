package service

import (
	"context"
	"strings"

	"bayaaz/internal/middleware"
	"bayaaz/internal/models"
	"bayaaz/internal/repository"
	"bayaaz/internal/validation"
)

// PublishListener is notified after a poem transitions to published.
type PublishListener func(ctx context.Context, poem *models.Poem)

type PoemService struct {
	poemRepo  repository.PoemRepository
	userRepo  repository.UserRepository
	onPublish PublishListener
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreatePoemInput struct {
	PoetID     uint
	Title      models.LocalizedText
	Slug       models.LocalizedText
	Content    models.LocalizedVerses
	Topics     []string
	Category   string
	CoverImage *models.Image
}

type UpdatePoemInput struct {
	UserID     uint
	PoemID     uint
	Title      models.LocalizedText
	Slug       models.LocalizedText
	Content    models.LocalizedVerses
	Topics     []string
	Category   string
	CoverImage *models.Image
}

type ListPoemsInput struct {
	Limit  int
	Offset int
	Sort   string
}

func NewPoemService(
	poemRepo repository.PoemRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
	onPublish PublishListener,
) *PoemService {
	return &PoemService{
		poemRepo:  poemRepo,
		userRepo:  userRepo,
		isAdmin:   isAdmin,
		onPublish: onPublish,
	}
}

func (s *PoemService) CreatePoem(ctx context.Context, in CreatePoemInput) (*models.Poem, error) {
	poet, err := s.userRepo.GetByID(ctx, in.PoetID)
	if err != nil {
		return nil, err
	}
	if !poet.IsPoet {
		return nil, models.NewForbiddenError("Only poets can create poems")
	}

	if err := s.validatePoemFields(in.Title, in.Slug, in.Content, in.Topics, in.Category); err != nil {
		return nil, err
	}

	poem := &models.Poem{
		Status:     models.StatusDraft,
		PoetID:     in.PoetID,
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		Topics:     models.StringList(in.Topics),
		Category:   in.Category,
		CoverImage: in.CoverImage,
	}
	if err := s.poemRepo.Create(ctx, poem); err != nil {
		return nil, err
	}
	return s.poemRepo.GetByID(ctx, poem.ID)
}

func (s *PoemService) validatePoemFields(title, slug models.LocalizedText, content models.LocalizedVerses, topics []string, category string) error {
	if len(title) == 0 {
		return models.NewValidationError("Title is required in at least one language")
	}
	for lang := range title {
		if !models.IsSupportedLanguage(lang) {
			return models.NewValidationError("Unsupported title language: " + lang)
		}
	}
	for lang, v := range slug {
		if !models.IsSupportedLanguage(lang) {
			return models.NewValidationError("Unsupported slug language: " + lang)
		}
		if err := validation.ValidateSlug(v); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if err := validation.ValidateLocalizedContent(content); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateTopics(topics); err != nil {
		return models.NewValidationError(err.Error())
	}
	if category != "" {
		if err := validation.ValidateCategory(category); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

func (s *PoemService) GetPoem(ctx context.Context, id uint, currentUserID uint) (*models.Poem, error) {
	poem, err := s.poemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !poem.IsPublished() {
		allowed, err := s.canManage(ctx, currentUserID, poem)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewNotFoundError("Poem", id)
		}
	}
	return poem, nil
}

// GetPoemBySlug resolves a published poem by its language-specific slug and
// records the view.
func (s *PoemService) GetPoemBySlug(ctx context.Context, lang, slug string) (*models.Poem, error) {
	if !models.IsSupportedLanguage(lang) {
		return nil, models.NewValidationError("Unsupported language: " + lang)
	}
	poem, err := s.poemRepo.GetBySlug(ctx, lang, slug)
	if err != nil {
		return nil, err
	}
	if !poem.IsPublished() {
		return nil, models.NewNotFoundError("Poem", slug)
	}

	// View counting is best effort; a failed increment never fails the read.
	if err := s.poemRepo.IncrementViews(ctx, poem.ID); err == nil {
		middleware.PoemViews.Inc()
		poem.ViewsCount++
	}
	return poem, nil
}

func (s *PoemService) ListPoems(ctx context.Context, in ListPoemsInput) ([]*models.Poem, error) {
	return s.poemRepo.List(ctx, in.Limit, in.Offset, in.Sort)
}

func (s *PoemService) ListPoemsByPoet(ctx context.Context, poetID uint, currentUserID uint, limit, offset int) ([]*models.Poem, error) {
	includeDrafts := false
	if currentUserID != 0 {
		if currentUserID == poetID {
			includeDrafts = true
		} else if s.isAdmin != nil {
			admin, err := s.isAdmin(ctx, currentUserID)
			if err != nil {
				return nil, err
			}
			includeDrafts = admin
		}
	}
	return s.poemRepo.ListByPoet(ctx, poetID, includeDrafts, limit, offset)
}

func (s *PoemService) UpdatePoem(ctx context.Context, in UpdatePoemInput) (*models.Poem, error) {
	poem, err := s.poemRepo.GetByID(ctx, in.PoemID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.canManage(ctx, in.UserID, poem)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("You can only update your own poems")
	}

	if in.Title != nil {
		poem.Title = in.Title
	}
	if in.Slug != nil {
		poem.Slug = in.Slug
	}
	if in.Content != nil {
		poem.Content = in.Content
	}
	if in.Topics != nil {
		poem.Topics = models.StringList(in.Topics)
	}
	if in.Category != "" {
		poem.Category = in.Category
	}
	if in.CoverImage != nil {
		poem.CoverImage = in.CoverImage
	}

	if err := s.validatePoemFields(poem.Title, poem.Slug, poem.Content, poem.Topics, poem.Category); err != nil {
		return nil, err
	}
	if err := s.poemRepo.Update(ctx, poem); err != nil {
		return nil, err
	}
	return poem, nil
}

// PublishPoem transitions a draft to published and fans the event out to the
// poet's followers.
func (s *PoemService) PublishPoem(ctx context.Context, userID, poemID uint) (*models.Poem, error) {
	poem, err := s.poemRepo.GetByID(ctx, poemID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.canManage(ctx, userID, poem)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("You can only publish your own poems")
	}
	if poem.IsPublished() {
		return nil, models.NewConflictError("Poem is already published")
	}
	if len(poem.Content.NonEmpty()) == 0 {
		return nil, models.NewValidationError("Cannot publish a poem with no content")
	}

	poem.Status = models.StatusPublished
	if err := s.poemRepo.Update(ctx, poem); err != nil {
		return nil, err
	}
	if s.onPublish != nil {
		s.onPublish(ctx, poem)
	}
	return poem, nil
}

// UnpublishPoem moves a published poem back to draft.
func (s *PoemService) UnpublishPoem(ctx context.Context, userID, poemID uint) (*models.Poem, error) {
	poem, err := s.poemRepo.GetByID(ctx, poemID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.canManage(ctx, userID, poem)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("You can only unpublish your own poems")
	}
	if !poem.IsPublished() {
		return nil, models.NewConflictError("Poem is not published")
	}

	poem.Status = models.StatusDraft
	if err := s.poemRepo.Update(ctx, poem); err != nil {
		return nil, err
	}
	return poem, nil
}

func (s *PoemService) DeletePoem(ctx context.Context, userID, poemID uint) error {
	poem, err := s.poemRepo.GetByID(ctx, poemID)
	if err != nil {
		return err
	}
	allowed, err := s.canManage(ctx, userID, poem)
	if err != nil {
		return err
	}
	if !allowed {
		return models.NewForbiddenError("You can only delete your own poems")
	}
	return s.poemRepo.Delete(ctx, poemID)
}

// canManage reports whether userID is the poem's poet or an admin.
func (s *PoemService) canManage(ctx context.Context, userID uint, poem *models.Poem) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if poem.PoetID == userID {
		return true, nil
	}
	if s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}

// normalizeQuery lowercases and splits a free-text search query into terms.
func normalizeQuery(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, `.,;:!?"'`)
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}
