package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Review is a per-(user, novel) critique with four category sub-ratings.
// Overall is always the unweighted arithmetic mean of the four, rounded to
// one decimal to match what clients display.
type Review struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;uniqueIndex:idx_review_user_novel,where:deleted_at IS NULL" json:"user_id"`
	User       *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	NovelID    uint    `gorm:"not null;uniqueIndex:idx_review_user_novel" json:"novel_id"`
	Novel      *Novel  `gorm:"foreignKey:NovelID" json:"novel,omitempty"`
	Plot       float64 `gorm:"not null" json:"plot"`
	Characters float64 `gorm:"not null" json:"characters"`
	World      float64 `gorm:"not null" json:"world"`
	Grammar    float64 `gorm:"not null" json:"grammar"`
	Overall    float64 `gorm:"not null" json:"overall"`
	Content    string  `gorm:"type:text" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this review (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ComputeOverall returns the mean of the four category ratings rounded to
// one decimal place.
func (r *Review) ComputeOverall() float64 {
	mean := (r.Plot + r.Characters + r.World + r.Grammar) / 4
	return math.Round(mean*10) / 10
}

// BeforeSave keeps Overall consistent with the category ratings.
func (r *Review) BeforeSave(_ *gorm.DB) error {
	r.Overall = r.ComputeOverall()
	return nil
}
