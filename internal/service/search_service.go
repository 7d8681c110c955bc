package service

import (
	"context"

	"bayaaz/internal/cache"
	"bayaaz/internal/featureflags"
	"bayaaz/internal/models"
	"bayaaz/internal/repository"
)

// synonyms maps a search term to cross-language equivalents so a query in one
// language surfaces poems tagged or titled in another. Keys and values are
// lowercase; expansion is one level deep.
var synonyms = map[string][]string{
	"love":       {"ishq", "mohabbat", "prem", "pyar"},
	"ishq":       {"love", "mohabbat"},
	"mohabbat":   {"love", "ishq"},
	"heart":      {"dil"},
	"dil":        {"heart"},
	"separation": {"judai", "hijr", "viraha"},
	"judai":      {"separation", "hijr"},
	"night":      {"raat", "shab"},
	"raat":       {"night", "shab"},
	"moon":       {"chand", "mahtab"},
	"chand":      {"moon"},
	"rain":       {"baarish", "sawan"},
	"baarish":    {"rain"},
	"sorrow":     {"gham", "dukh"},
	"gham":       {"sorrow", "dukh"},
	"wine":       {"sharab", "mai"},
	"sharab":     {"wine"},
	"beloved":    {"mehboob", "yaar", "sanam"},
	"yaar":       {"beloved", "friend"},
	"world":      {"duniya", "jahan"},
	"duniya":     {"world"},
	"life":       {"zindagi", "jeevan"},
	"zindagi":    {"life"},
	"death":      {"maut", "mrityu"},
	"spring":     {"bahaar", "basant"},
	"bahaar":     {"spring"},
}

type SearchService struct {
	poemRepo repository.PoemRepository
	flags    *featureflags.Manager
}

type SearchInput struct {
	Query  string
	Limit  int
	Offset int
	UserID uint
}

func NewSearchService(poemRepo repository.PoemRepository, flags *featureflags.Manager) *SearchService {
	return &SearchService{poemRepo: poemRepo, flags: flags}
}

// SearchPoems matches the query, synonym-expanded when the flag allows it,
// against poem titles and topics. Results for the same query and page are
// cached briefly.
func (s *SearchService) SearchPoems(ctx context.Context, in SearchInput) ([]*models.Poem, error) {
	terms := normalizeQuery(in.Query)
	if len(terms) == 0 {
		return nil, models.NewValidationError("Search query is required")
	}

	if s.flags == nil || s.flags.Enabled("synonym_search", in.UserID) {
		terms = expandSynonyms(terms)
	}

	var poems []*models.Poem
	key := cache.SearchKey(in.Query, in.Limit, in.Offset)
	err := cache.Aside(ctx, key, &poems, cache.SearchTTL, func() error {
		var fetchErr error
		poems, fetchErr = s.poemRepo.Search(ctx, terms, in.Limit, in.Offset)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return poems, nil
}

// expandSynonyms widens the term list with known equivalents, deduplicated,
// original terms first.
func expandSynonyms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	add := func(term string) {
		if _, dup := seen[term]; !dup {
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	for _, term := range terms {
		add(term)
	}
	for _, term := range terms {
		for _, syn := range synonyms[term] {
			add(syn)
		}
	}
	return out
}
