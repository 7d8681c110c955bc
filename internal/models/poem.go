package models

import (
	"time"

	"gorm.io/gorm"
)

// Poem publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Poem categories recognized by the platform.
const (
	CategoryGhazal = "ghazal"
	CategorySher   = "sher"
	CategoryNazm   = "nazm"
	CategoryRubai  = "rubai"
)

// Poem represents a multilingual poem. Title, slug and content carry one value
// per language; a language with no couplets is simply absent from the feed.
type Poem struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"not null;default:draft;index" json:"status"`
	PoetID uint   `gorm:"not null;index" json:"poet_id"`
	Poet   User   `gorm:"foreignKey:PoetID" json:"poet"`

	Title   LocalizedText   `gorm:"type:jsonb" json:"title"`
	Slug    LocalizedText   `gorm:"type:jsonb" json:"slug"`
	Content LocalizedVerses `gorm:"type:jsonb" json:"content"`

	Topics     StringList `gorm:"type:jsonb" json:"topics"`
	Category   string     `gorm:"index" json:"category,omitempty"`
	CoverImage *Image     `gorm:"type:jsonb" json:"cover_image,omitempty"`

	// Denormalized counters maintained outside the request hot path.
	ViewsCount    int `gorm:"not null;default:0" json:"views_count"`
	BookmarkCount int `gorm:"not null;default:0" json:"bookmark_count"`

	// Bookmarked is set per request for the signed-in reader; never persisted.
	Bookmarked *bool `gorm:"-" json:"bookmarked,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsPublished reports whether the poem is visible to readers.
func (p *Poem) IsPublished() bool {
	return p.Status == StatusPublished
}

// PoemMeta is the projection of a poem used to derive personalization seeds
// from a user's bookmarks: poet reference plus classification tags.
type PoemMeta struct {
	ID       uint       `json:"id"`
	PoetID   uint       `json:"poet_id"`
	Topics   StringList `json:"topics"`
	Category string     `json:"category"`
}
