package models

import "time"

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

// Review outcomes / per-word statuses.
const (
	StatusNew      = "new"
	StatusLearning = "learning"
	StatusKnown    = "known"
)

// UserProgress is the per-user rollup of learning activity (denormalized for
// cheap dashboard reads). One row per user, created at signup with zeroes.
type UserProgress struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	WordsLearned      int64 `json:"words_learned" gorm:"default:0"`
	TotalXP           int64 `json:"total_xp" gorm:"default:0"`
	CurrentStreakDays int64 `json:"current_streak_days" gorm:"default:0"`

	// Calendar date of the last "known" review, YYYY-MM-DD.
	LastActiveDate string `json:"last_active_date"`

	Timestamps
}

// WordProgress is a learner's status on one vocabulary entry. Created lazily
// on first review, upserted after that; the (user, entry) pair is unique.
type WordProgress struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string `gorm:"not null;index:idx_user_word,unique" json:"user_id"`
	VocabularyID string `gorm:"not null;index:idx_user_word,unique" json:"vocabulary_id"`

	Status        string    `gorm:"not null" json:"status"` // new | learning | known
	TimesReviewed int64     `json:"times_reviewed" gorm:"default:0"`
	LastReviewed  time.Time `json:"last_reviewed"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
