// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"bayaaz/internal/cache"
	"bayaaz/internal/models"
	"bayaaz/internal/observability"

	"gorm.io/gorm"
)

// PoemRepository defines the interface for poem data operations
type PoemRepository interface {
	Create(ctx context.Context, poem *models.Poem) error
	GetByID(ctx context.Context, id uint) (*models.Poem, error)
	GetBySlug(ctx context.Context, lang, slug string) (*models.Poem, error)
	List(ctx context.Context, limit, offset int, sort string) ([]*models.Poem, error)
	ListByPoet(ctx context.Context, poetID uint, includeDrafts bool, limit, offset int) ([]*models.Poem, error)
	ListDrafts(ctx context.Context, limit, offset int) ([]*models.Poem, error)
	Search(ctx context.Context, terms []string, limit, offset int) ([]*models.Poem, error)
	Update(ctx context.Context, poem *models.Poem) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	CountPublished(ctx context.Context) (int64, error)
	RandomSample(ctx context.Context, limit, offset int) ([]*models.Poem, error)
	PersonalizedCandidates(ctx context.Context, poetIDs []uint, topics []string, excludeIDs []uint, limit, offset int) ([]*models.Poem, error)
	ListRecentExcluding(ctx context.Context, excludeIDs []uint, limit int) ([]*models.Poem, error)
	MetaByIDs(ctx context.Context, ids []uint) ([]models.PoemMeta, error)
}

// poemRepository implements PoemRepository
type poemRepository struct {
	db *gorm.DB
}

// NewPoemRepository creates a new poem repository
func NewPoemRepository(db *gorm.DB) PoemRepository {
	return &poemRepository{db: db}
}

func (r *poemRepository) Create(ctx context.Context, poem *models.Poem) error {
	defer observability.TrackQuery("create", "poems")()
	if err := r.db.WithContext(ctx).Create(poem).Error; err != nil {
		return err
	}
	if poem.IsPublished() {
		cache.InvalidatePublishedCount(ctx)
	}
	return nil
}

func (r *poemRepository) GetByID(ctx context.Context, id uint) (*models.Poem, error) {
	defer observability.TrackQuery("read", "poems")()
	var poem models.Poem
	err := cache.Aside(ctx, cache.PoemKey(id), &poem, cache.PoemTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Poet").First(&poem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Poem", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &poem, nil
}

func (r *poemRepository) GetBySlug(ctx context.Context, lang, slug string) (*models.Poem, error) {
	defer observability.TrackQuery("read", "poems")()
	var poem models.Poem
	err := r.db.WithContext(ctx).
		Preload("Poet").
		Where("slug ->> ? = ?", lang, slug).
		First(&poem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Poem", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &poem, nil
}

func (r *poemRepository) List(ctx context.Context, limit, offset int, sort string) ([]*models.Poem, error) {
	defer observability.TrackQuery("list", "poems")()
	var poems []*models.Poem
	base := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusPublished)
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
func (r *poemRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "popular":
		return db.Order("views_count DESC, created_at DESC")
	case "most_bookmarked":
		return db.Order("bookmark_count DESC, created_at DESC")
	default: // "new" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

func (r *poemRepository) ListByPoet(ctx context.Context, poetID uint, includeDrafts bool, limit, offset int) ([]*models.Poem, error) {
	defer observability.TrackQuery("list", "poems")()
	var poems []*models.Poem
	q := r.db.WithContext(ctx).
		Preload("Poet").
		Where("poet_id = ?", poetID)
	if !includeDrafts {
		q = q.Where("status = ?", models.StatusPublished)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

func (r *poemRepository) ListDrafts(ctx context.Context, limit, offset int) ([]*models.Poem, error) {
	defer observability.TrackQuery("list", "poems")()
	var poems []*models.Poem
	err := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusDraft).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// Search matches any of the (already synonym-expanded) terms against titles
// and topics across all languages.
func (r *poemRepository) Search(ctx context.Context, terms []string, limit, offset int) ([]*models.Poem, error) {
	defer observability.TrackQuery("search", "poems")()
	if len(terms) == 0 {
		return []*models.Poem{}, nil
	}

	cond := r.db.Session(&gorm.Session{NewDB: true})
	for i, term := range terms {
		like := "%" + term + "%"
		topicMatch, _ := json.Marshal([]string{term})
		if i == 0 {
			cond = cond.Where("title::text ILIKE ? OR topics @> ?", like, string(topicMatch))
		} else {
			cond = cond.Or("title::text ILIKE ? OR topics @> ?", like, string(topicMatch))
		}
	}

	var poems []*models.Poem
	err := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusPublished).
		Where(cond).
		Order("views_count DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

func (r *poemRepository) Update(ctx context.Context, poem *models.Poem) error {
	defer observability.TrackQuery("update", "poems")()
	if err := r.db.WithContext(ctx).Save(poem).Error; err != nil {
		return err
	}
	cache.InvalidatePoem(ctx, poem.ID)
	cache.InvalidatePublishedCount(ctx)
	return nil
}

func (r *poemRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "poems")()
	if err := r.db.WithContext(ctx).Delete(&models.Poem{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePoem(ctx, id)
	cache.InvalidatePublishedCount(ctx)
	return nil
}

func (r *poemRepository) IncrementViews(ctx context.Context, id uint) error {
	defer observability.TrackQuery("update", "poems")()
	return r.db.WithContext(ctx).
		Model(&models.Poem{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *poemRepository) CountPublished(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "poems")()
	var total int64
	err := cache.Aside(ctx, cache.PublishedCountKey, &total, cache.PublishedCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Poem{}).
			Where("status = ?", models.StatusPublished).
			Count(&total).Error
	})
	return total, err
}

// RandomSample draws a uniform random sample of published poems using the
// store's ordering primitive. The offset applies within the sampled ordering.
func (r *poemRepository) RandomSample(ctx context.Context, limit, offset int) ([]*models.Poem, error) {
	defer observability.TrackQuery("sample", "poems")()
	var poems []*models.Poem
	err := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusPublished).
		Order("RANDOM()").
		Offset(offset).
		Limit(limit).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// PersonalizedCandidates returns published poems sharing a poet or topic with
// the seed sets, excluding the given poem IDs (the caller's bookmarks).
func (r *poemRepository) PersonalizedCandidates(ctx context.Context, poetIDs []uint, topics []string, excludeIDs []uint, limit, offset int) ([]*models.Poem, error) {
	defer observability.TrackQuery("list", "poems")()
	if len(poetIDs) == 0 && len(topics) == 0 {
		return []*models.Poem{}, nil
	}

	cond := r.db.Session(&gorm.Session{NewDB: true})
	first := true
	if len(poetIDs) > 0 {
		cond = cond.Where("poet_id IN ?", poetIDs)
		first = false
	}
	for _, topic := range topics {
		topicMatch, _ := json.Marshal([]string{topic})
		if first {
			cond = cond.Where("topics @> ?", string(topicMatch))
			first = false
		} else {
			cond = cond.Or("topics @> ?", string(topicMatch))
		}
	}

	q := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusPublished).
		Where(cond)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var poems []*models.Poem
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// ListRecentExcluding fills a personalized-feed shortfall with the most recent
// published poems outside the excluded set.
func (r *poemRepository) ListRecentExcluding(ctx context.Context, excludeIDs []uint, limit int) ([]*models.Poem, error) {
	defer observability.TrackQuery("list", "poems")()
	q := r.db.WithContext(ctx).
		Preload("Poet").
		Where("status = ?", models.StatusPublished)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var poems []*models.Poem
	err := q.Order("created_at DESC").
		Limit(limit).
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// MetaByIDs loads the poet/topic projection used to build personalization seeds.
func (r *poemRepository) MetaByIDs(ctx context.Context, ids []uint) ([]models.PoemMeta, error) {
	defer observability.TrackQuery("read", "poems")()
	if len(ids) == 0 {
		return []models.PoemMeta{}, nil
	}
	var meta []models.PoemMeta
	err := r.db.WithContext(ctx).
		Model(&models.Poem{}).
		Select("id, poet_id, topics, category").
		Where("id IN ?", ids).
		Scan(&meta).Error
	if err != nil {
		return nil, err
	}
	return meta, nil
}
