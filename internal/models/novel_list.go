package models

import "time"

// ReadingStatus is the user's progress state for a novel on their list.
type ReadingStatus string

const (
	// ReadingStatusReading indicates the user is currently reading the novel.
	ReadingStatusReading ReadingStatus = "reading"
	// ReadingStatusPlanning indicates the user plans to read the novel.
	ReadingStatusPlanning ReadingStatus = "planning"
	// ReadingStatusCompleted indicates the user finished the novel.
	ReadingStatusCompleted ReadingStatus = "completed"
)

// ValidReadingStatus reports whether s is a known reading status.
func ValidReadingStatus(s ReadingStatus) bool {
	switch s {
	case ReadingStatusReading, ReadingStatusPlanning, ReadingStatusCompleted:
		return true
	}
	return false
}

// NovelListEntry is a per-(user, novel) reading record. The composite index
// enforces the one-entry-per-novel-per-user invariant; writes go through an
// upsert keyed on it.
type NovelListEntry struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;uniqueIndex:idx_list_user_novel" json:"user_id"`
	NovelID        uint          `gorm:"not null;uniqueIndex:idx_list_user_novel" json:"novel_id"`
	Novel          *Novel        `gorm:"foreignKey:NovelID" json:"novel,omitempty"`
	Status         ReadingStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	CurrentChapter int           `gorm:"default:0" json:"current_chapter"`
	Score          float64       `gorm:"default:0" json:"score"`
	Notes          string        `gorm:"type:text" json:"notes"`
	Favorite       bool          `gorm:"default:false;index" json:"favorite"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (NovelListEntry) TableName() string {
	return "novel_list_entries"
}
