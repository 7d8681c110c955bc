package models

import "time"

// Bookmark is a user's saved reference to a poem. Besides powering the reading
// list it is the personalization signal for the feed.
type Bookmark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_poem" json:"user_id"`
	PoemID       uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_poem" json:"poem_id"`
	Poem         Poem      `gorm:"foreignKey:PoemID" json:"poem,omitempty"`
	BookmarkedAt time.Time `gorm:"autoCreateTime" json:"bookmarked_at"`
}
