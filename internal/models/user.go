// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a reader or poet account on the platform.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	// PenName is the display name shown on published poems; falls back to Username.
	PenName string `json:"pen_name"`
	Bio     string `json:"bio"`
	// Slug is only set for poets; the partial index keeps reader rows out of it.
	Slug           string `gorm:"uniqueIndex:idx_users_slug,where:slug <> ''" json:"slug"`
	ProfilePicture *Image `gorm:"type:jsonb" json:"profile_picture,omitempty"`
	IsPoet         bool   `gorm:"default:false" json:"is_poet"`
	IsAdmin        bool   `gorm:"default:false" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Poems     []Poem     `gorm:"foreignKey:PoetID" json:"poems,omitempty"`
	Bookmarks []Bookmark `gorm:"foreignKey:UserID" json:"bookmarks,omitempty"`
}

// DisplayName returns the pen name when set, otherwise the username.
func (u *User) DisplayName() string {
	if u.PenName != "" {
		return u.PenName
	}
	return u.Username
}
