package models

import "time"

// Like rows are the persisted liked-by membership set for reviews, posts and
// comments. Counts are derived from cardinality at query time, so the count
// can never drift from the set. Toggling is a single INSERT ... ON CONFLICT
// DO NOTHING or a hard DELETE.

// ReviewLike marks that a user liked a review.
type ReviewLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_like" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_review_like" json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostLike marks that a user liked a post.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike marks that a user liked a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
