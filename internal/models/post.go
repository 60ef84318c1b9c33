// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is a forum publication.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int       `gorm:"->;-:migration" json:"repliesCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Reply is a response to a Post. It cannot outlive its post.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite marks a post as favorited by a user. The (UserID, PostID) pair is
// its identity.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"postId"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
