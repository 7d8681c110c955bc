package validation

import (
	"fmt"
	"regexp"
	"strings"

	"bayaaz/internal/models"
)

var poemSlugRegex = regexp.MustCompile(`^[a-z0-9-]{3,80}$`)

var reservedSlugs = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"search":   {},
	"poems":    {},
	"poets":    {},
	"users":    {},
	"topics":   {},
	"settings": {},
	"ws":       {},
	"swagger":  {},
	"metrics":  {},
	"login":    {},
	"signup":   {},
}

// ValidateSlug validates a language-specific poem or poet slug.
func ValidateSlug(slug string) error {
	if !poemSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-80 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}

// ValidateCategory checks the poem category against the recognized set.
// An empty category is allowed.
func ValidateCategory(category string) error {
	switch category {
	case "", models.CategoryGhazal, models.CategorySher, models.CategoryNazm, models.CategoryRubai:
		return nil
	}
	return fmt.Errorf("unknown category %q", category)
}

// ValidateLocalizedContent checks that every language key is supported, every
// present language has at least one couplet, and no couplet text is blank.
// At least one language must carry content.
func ValidateLocalizedContent(content models.LocalizedVerses) error {
	if len(content) == 0 {
		return fmt.Errorf("content must include at least one language")
	}

	nonEmpty := 0
	for lang, couplets := range content {
		if !models.IsSupportedLanguage(lang) {
			return fmt.Errorf("unsupported language %q", lang)
		}
		for i, entry := range couplets {
			if strings.TrimSpace(entry.Couplet) == "" {
				return fmt.Errorf("couplet %d in language %q is empty", i, lang)
			}
		}
		if len(couplets) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return fmt.Errorf("content must include at least one couplet")
	}

	return nil
}

// ValidateTopics caps the number and length of topic tags.
func ValidateTopics(topics models.StringList) error {
	if len(topics) > 20 {
		return fmt.Errorf("at most 20 topics are allowed")
	}
	for _, topic := range topics {
		trimmed := strings.TrimSpace(topic)
		if trimmed == "" {
			return fmt.Errorf("topics cannot be blank")
		}
		if len(trimmed) > 60 {
			return fmt.Errorf("topic %q exceeds 60 characters", trimmed)
		}
	}
	return nil
}
