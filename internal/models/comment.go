package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a text reply attached to either a review or a post.
// Exactly one of ReviewID/PostID is set.
type Comment struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"not null;index" json:"user_id"`
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ReviewID *uint `gorm:"index" json:"review_id,omitempty"`
	PostID   *uint `gorm:"index" json:"post_id,omitempty"`
	// ParentID links a nested reply to its parent comment.
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
