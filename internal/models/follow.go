package models

import "time"

// Follow is a directed follower -> following edge between users.
// Existence of the row means "follows"; there are no additional attributes.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following *User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
