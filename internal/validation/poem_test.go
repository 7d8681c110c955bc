package validation

import (
	"strings"
	"testing"

	"bayaaz/internal/models"
)

func TestValidateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		slug string
		ok   bool
	}{
		{name: "valid with number", slug: "dil-e-nadan-2", ok: true},
		{name: "valid simple", slug: "hazaron-khwahishen", ok: true},
		{name: "minimum length", slug: "abc", ok: true},
		{name: "too short", slug: "ab", ok: false},
		{name: "too long", slug: strings.Repeat("a", 81), ok: false},
		{name: "uppercase", slug: "Ghazal", ok: false},
		{name: "underscore", slug: "dil_e_nadan", ok: false},
		{name: "space", slug: "dil e nadan", ok: false},
		{name: "leading hyphen", slug: "-ghazal", ok: false},
		{name: "trailing hyphen", slug: "ghazal-", ok: false},
		{name: "reserved feed", slug: "feed", ok: false},
		{name: "reserved poems", slug: "poems", ok: false},
		{name: "reserved admin", slug: "admin", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSlug(tc.slug)
			if tc.ok && err != nil {
				t.Fatalf("expected valid slug, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid slug, got nil error")
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	for _, category := range []string{"", "ghazal", "sher", "nazm", "rubai"} {
		if err := ValidateCategory(category); err != nil {
			t.Fatalf("expected category %q to be valid, got: %v", category, err)
		}
	}
	if err := ValidateCategory("haiku"); err == nil {
		t.Fatal("expected unknown category to be rejected")
	}
}

func TestValidateLocalizedContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content models.LocalizedVerses
		ok      bool
	}{
		{
			name:    "single language",
			content: models.LocalizedVerses{"en": {{Couplet: "a thousand desires"}}},
			ok:      true,
		},
		{
			name: "all languages",
			content: models.LocalizedVerses{
				"en": {{Couplet: "a"}},
				"hi": {{Couplet: "b"}},
				"ur": {{Couplet: "c", Meaning: "d"}},
			},
			ok: true,
		},
		{name: "empty map", content: models.LocalizedVerses{}, ok: false},
		{
			name:    "unsupported language",
			content: models.LocalizedVerses{"fa": {{Couplet: "x"}}},
			ok:      false,
		},
		{
			name:    "blank couplet",
			content: models.LocalizedVerses{"en": {{Couplet: "   "}}},
			ok:      false,
		},
		{
			name:    "all languages empty",
			content: models.LocalizedVerses{"en": {}, "hi": {}},
			ok:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLocalizedContent(tc.content)
			if tc.ok && err != nil {
				t.Fatalf("expected valid content, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid content, got nil error")
			}
		})
	}
}

func TestValidateTopics(t *testing.T) {
	t.Parallel()

	if err := ValidateTopics(models.StringList{"ishq", "firaq", "wafa"}); err != nil {
		t.Fatalf("expected valid topics, got: %v", err)
	}
	if err := ValidateTopics(models.StringList{" "}); err == nil {
		t.Fatal("expected blank topic to be rejected")
	}
	long := make(models.StringList, 21)
	for i := range long {
		long[i] = "t"
	}
	if err := ValidateTopics(long); err == nil {
		t.Fatal("expected topic count cap to be enforced")
	}
	if err := ValidateTopics(models.StringList{strings.Repeat("x", 61)}); err == nil {
		t.Fatal("expected over-long topic to be rejected")
	}
}
