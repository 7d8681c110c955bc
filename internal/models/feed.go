package models

import "time"

// FeedItem is a single-language excerpt (one couplet) of a poem, assembled per
// request for display. It is derived view data and is never persisted; the ID
// is only unique within one response.
type FeedItem struct {
	ID            string     `json:"id"`
	PoemID        uint       `json:"poem_id"`
	Language      string     `json:"language"`
	Poet          FeedPoet   `json:"poet"`
	Slug          string     `json:"slug"`
	Couplet       string     `json:"couplet"`
	CoverImage    *Image     `json:"cover_image,omitempty"`
	ViewsCount    int        `json:"views_count"`
	BookmarkCount int        `json:"bookmark_count"`
	Topics        StringList `json:"topics"`
	Category      string     `json:"category,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FeedPoet is the poet display projection embedded in a feed item.
type FeedPoet struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug,omitempty"`
	ProfilePicture *Image `json:"profile_picture,omitempty"`
}

// Pagination is the page summary returned with list responses. For the feed,
// Total counts poems, not derived feed items.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// FeedPage is a single feed response.
type FeedPage struct {
	Items      []FeedItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}
