// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Supported content languages, in the fixed order the feed expands them.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangUrdu    = "ur"
)

// Languages returns the supported language codes in canonical order.
func Languages() []string {
	return []string{LangEnglish, LangHindi, LangUrdu}
}

// IsSupportedLanguage reports whether code is one of the supported languages.
func IsSupportedLanguage(code string) bool {
	switch code {
	case LangEnglish, LangHindi, LangUrdu:
		return true
	}
	return false
}

// Couplet is a single verse entry in a poem's per-language content.
type Couplet struct {
	Couplet string `json:"couplet"`
	Meaning string `json:"meaning,omitempty"`
}

// LocalizedText maps a language code to a language-specific string.
// Stored as a JSONB column.
type LocalizedText map[string]string

// Value implements driver.Valuer for JSONB storage.
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *LocalizedText) Scan(src any) error {
	return scanJSON(src, t)
}

// GormDataType tells GORM which column type to use.
func (LocalizedText) GormDataType() string { return "jsonb" }

// LocalizedVerses maps a language code to an ordered sequence of couplets.
// Stored as a JSONB column.
type LocalizedVerses map[string][]Couplet

// Value implements driver.Valuer for JSONB storage.
func (v LocalizedVerses) Value() (driver.Value, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner.
func (v *LocalizedVerses) Scan(src any) error {
	return scanJSON(src, v)
}

// GormDataType tells GORM which column type to use.
func (LocalizedVerses) GormDataType() string { return "jsonb" }

// NonEmpty returns the language codes (canonical order) that have at least one couplet.
func (v LocalizedVerses) NonEmpty() []string {
	var langs []string
	for _, lang := range Languages() {
		if len(v[lang]) > 0 {
			langs = append(langs, lang)
		}
	}
	return langs
}

// StringList is a JSONB-backed list of free-text tags.
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// GormDataType tells GORM which column type to use.
func (StringList) GormDataType() string { return "jsonb" }

// Image is an externally hosted image reference, stored as JSONB.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Value implements driver.Valuer for JSONB storage.
func (i Image) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner.
func (i *Image) Scan(src any) error {
	return scanJSON(src, i)
}

// GormDataType tells GORM which column type to use.
func (Image) GormDataType() string { return "jsonb" }

func scanJSON(src, dest any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dest)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported source type %T for JSONB scan", src)
	}
}
