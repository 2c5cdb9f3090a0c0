package models

import (
	"time"

	"github.com/lib/pq"
)

// Novel is a canonical catalog entry. Rows are created either directly by an
// admin or by approving a NovelSubmission; the primary key comes from the
// database sequence so concurrent approvals never collide.
type Novel struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"not null;index" json:"name"`
	AltNames         pq.StringArray `gorm:"type:text[]" json:"alt_names"`
	OriginalLanguage string         `gorm:"size:40;index" json:"original_language"`
	Authors          pq.StringArray `gorm:"type:text[]" json:"authors"`
	Genres           pq.StringArray `gorm:"type:text[]" json:"genres"`
	// Tags are stored case-folded, trimmed and de-duplicated; see validation.NormalizeTags.
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	CoverURL       string         `json:"cover_url"`
	Synopsis       string         `gorm:"type:text" json:"synopsis"`
	Year           int            `json:"year"`
	IsCompleted    bool           `gorm:"default:false;index" json:"is_completed"`
	IsLicensed     bool           `gorm:"default:false" json:"is_licensed"`
	ChapterCount   int            `gorm:"default:0" json:"chapter_count"`
	Rating         float64        `gorm:"default:0" json:"rating"`
	RatingVotes    int            `gorm:"default:0" json:"rating_votes"`
	Popularity     int            `gorm:"default:0;index" json:"popularity"`
	RecommendedIDs pq.Int64Array  `gorm:"type:bigint[]" json:"recommended_ids"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NovelSubmissionStatus defines lifecycle states for user novel submissions.
type NovelSubmissionStatus string

const (
	// NovelSubmissionStatusPending indicates the submission is awaiting review.
	NovelSubmissionStatusPending NovelSubmissionStatus = "pending"
	// NovelSubmissionStatusApproved indicates the submission was accepted.
	NovelSubmissionStatusApproved NovelSubmissionStatus = "approved"
	// NovelSubmissionStatusRejected indicates the submission was denied.
	NovelSubmissionStatusRejected NovelSubmissionStatus = "rejected"
)

// NovelSubmission is a user-proposed novel awaiting admin review.
// Status transitions are monotonic: pending -> approved|rejected.
type NovelSubmission struct {
	ID                uint                  `gorm:"primaryKey" json:"id"`
	Name              string                `gorm:"not null" json:"name"`
	AltNames          pq.StringArray        `gorm:"type:text[]" json:"alt_names"`
	OriginalLanguage  string                `gorm:"size:40" json:"original_language"`
	Authors           pq.StringArray        `gorm:"type:text[]" json:"authors"`
	Genres            pq.StringArray        `gorm:"type:text[]" json:"genres"`
	CoverURL          string                `json:"cover_url"`
	Synopsis          string                `gorm:"type:text" json:"synopsis"`
	Year              int                   `json:"year"`
	IsCompleted       bool                  `json:"is_completed"`
	ChapterCount      int                   `json:"chapter_count"`
	SubmittedByUserID uint                  `gorm:"not null;index" json:"submitted_by_user_id"`
	SubmittedByUser   *User                 `gorm:"foreignKey:SubmittedByUserID" json:"submitted_by_user,omitempty"`
	Status            NovelSubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Feedback          string                `gorm:"type:text" json:"feedback"`
	ReviewedByUserID  *uint                 `json:"reviewed_by_user_id"`
	ReviewedByUser    *User                 `gorm:"foreignKey:ReviewedByUserID" json:"reviewed_by_user,omitempty"`
	ApprovedNovelID   *uint                 `json:"approved_novel_id"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}
