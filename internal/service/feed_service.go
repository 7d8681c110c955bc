// Package service contains the business logic for the application.
package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"bayaaz/internal/middleware"
	"bayaaz/internal/models"
	"bayaaz/internal/repository"
)

// coverImageProbability is the chance a feed item carries the poem's cover
// image when the poem has one.
const coverImageProbability = 0.3

// FeedService assembles the mixed-language poetry feed. A reader with
// bookmark history gets candidates related to their bookmarks; everyone else
// gets a uniform random sample of published poems.
type FeedService struct {
	poemRepo     repository.PoemRepository
	bookmarkRepo repository.BookmarkRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// FeedInput carries the already-validated request parameters. UserID zero
// means anonymous.
type FeedInput struct {
	Page   int
	Limit  int
	UserID uint
}

// NewFeedService wires the feed assembler. The rng is injected so tests can
// pass a fixed seed and assert exact output.
func NewFeedService(poemRepo repository.PoemRepository, bookmarkRepo repository.BookmarkRepository, rng *rand.Rand) *FeedService {
	return &FeedService{
		poemRepo:     poemRepo,
		bookmarkRepo: bookmarkRepo,
		rng:          rng,
	}
}

// AssembleFeed builds one page of feed items.
//
// The pagination total counts published poems, not derived items; each poem
// expands into up to three per-language items, so the last page may hold
// fewer items than the poem arithmetic suggests. Clients paging to the end
// should stop on an empty items list, not on page == pages.
func (s *FeedService) AssembleFeed(ctx context.Context, in FeedInput) (*models.FeedPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	total, err := s.poemRepo.CountPublished(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var poems []*models.Poem
	branch := "random"
	if in.UserID != 0 {
		bookmarkedIDs, err := s.bookmarkRepo.PoemIDsByUser(ctx, in.UserID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if len(bookmarkedIDs) > 0 {
			branch = "personalized"
			poems, err = s.personalizedCandidates(ctx, bookmarkedIDs, limit, skip)
			if err != nil {
				return nil, err
			}
		}
	}
	if branch == "random" {
		poems, err = s.poemRepo.RandomSample(ctx, limit, skip)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	middleware.FeedRequests.WithLabelValues(branch).Inc()

	items := s.expand(poems)
	s.shuffle(items)
	if len(items) > limit {
		items = items[:limit]
	}
	middleware.FeedItemsReturned.Observe(float64(len(items)))

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &models.FeedPage{
		Items: items,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// personalizedCandidates queries poems sharing a poet or topic with the
// reader's bookmarks, then tops up any shortfall with the most recent
// published poems outside both the bookmarked and already-selected sets.
func (s *FeedService) personalizedCandidates(ctx context.Context, bookmarkedIDs []uint, limit, skip int) ([]*models.Poem, error) {
	meta, err := s.poemRepo.MetaByIDs(ctx, bookmarkedIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	poetSet := make(map[uint]struct{})
	topicSet := make(map[string]struct{})
	var poetIDs []uint
	var topics []string
	for _, m := range meta {
		if _, seen := poetSet[m.PoetID]; !seen {
			poetSet[m.PoetID] = struct{}{}
			poetIDs = append(poetIDs, m.PoetID)
		}
		for _, topic := range m.Topics {
			if _, seen := topicSet[topic]; !seen {
				topicSet[topic] = struct{}{}
				topics = append(topics, topic)
			}
		}
	}

	poems, err := s.poemRepo.PersonalizedCandidates(ctx, poetIDs, topics, bookmarkedIDs, limit, skip)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(poems) < limit {
		exclude := make([]uint, 0, len(bookmarkedIDs)+len(poems))
		exclude = append(exclude, bookmarkedIDs...)
		for _, p := range poems {
			exclude = append(exclude, p.ID)
		}
		fill, err := s.poemRepo.ListRecentExcluding(ctx, exclude, limit-len(poems))
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		poems = append(poems, fill...)
	}
	return poems, nil
}

// expand flattens each poem into per-language feed items. Languages are
// visited in a fixed order; a language with no couplets yields no item. The
// couplet index is drawn uniformly per item, and the cover image is attached
// with a fixed independent probability when the poem has one.
func (s *FeedService) expand(poems []*models.Poem) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(poems)*len(models.Languages()))
	for _, poem := range poems {
		poet := models.FeedPoet{
			ID:             poem.PoetID,
			Name:           poem.Poet.DisplayName(),
			Slug:           poem.Poet.Slug,
			ProfilePicture: poem.Poet.ProfilePicture,
		}
		for _, lang := range poem.Content.NonEmpty() {
			couplets := poem.Content[lang]
			idx := s.intn(len(couplets))

			var cover *models.Image
			if poem.CoverImage != nil && s.float64() < coverImageProbability {
				cover = poem.CoverImage
			}

			items = append(items, models.FeedItem{
				ID:            fmt.Sprintf("%d-%s-%d", poem.ID, lang, idx),
				PoemID:        poem.ID,
				Language:      lang,
				Poet:          poet,
				Slug:          poem.Slug[lang],
				Couplet:       couplets[idx].Couplet,
				CoverImage:    cover,
				ViewsCount:    poem.ViewsCount,
				BookmarkCount: poem.BookmarkCount,
				Topics:        poem.Topics,
				Category:      poem.Category,
				CreatedAt:     poem.CreatedAt,
			})
		}
	}
	return items
}

// shuffle applies a uniform random permutation so no incidental query
// ordering leaks through to the client.
func (s *FeedService) shuffle(items []models.FeedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func (s *FeedService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *FeedService) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
