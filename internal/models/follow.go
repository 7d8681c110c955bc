package models

import "time"

// Follow records a reader following a poet.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	PoetID     uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"poet_id"`
	Poet       User      `gorm:"foreignKey:PoetID" json:"poet,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
