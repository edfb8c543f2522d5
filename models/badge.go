package models

import "time"

// Badge criteria types. Unknown types are never eligible.
const (
	CriteriaWordsLearned = "words_learned"
	CriteriaStreakDays   = "streak_days"
)

// Badge: static achievement catalog, admin-managed.
type Badge struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // slug of the name, e.g. "word-master"
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`                 // emoji shown inline
	IconURL     string `gorm:"type:text" json:"icon_url"` // optional uploaded image

	CriteriaType  string `gorm:"not null" json:"criteria_type"` // words_learned | streak_days
	CriteriaValue int64  `gorm:"not null" json:"criteria_value"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserBadge: awarded instance. Unique per (user, badge); never revoked.
type UserBadge struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeID   string    `gorm:"not null;index:idx_user_badge,unique" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
}

// DefaultBadges seeds the catalog on first boot.
var DefaultBadges = []Badge{
	{
		Code:          "first-steps",
		Name:          "First Steps",
		Description:   "Learn your first word!",
		Icon:          "🌱",
		CriteriaType:  CriteriaWordsLearned,
		CriteriaValue: 1,
	},
	{
		Code:          "getting-started",
		Name:          "Getting Started",
		Description:   "Learn 10 words",
		Icon:          "📚",
		CriteriaType:  CriteriaWordsLearned,
		CriteriaValue: 10,
	},
	{
		Code:          "word-master",
		Name:          "Word Master",
		Description:   "Learn 50 words",
		Icon:          "🏆",
		CriteriaType:  CriteriaWordsLearned,
		CriteriaValue: 50,
	},
	{
		Code:          "vocabulary-expert",
		Name:          "Vocabulary Expert",
		Description:   "Learn 100 words",
		Icon:          "👑",
		CriteriaType:  CriteriaWordsLearned,
		CriteriaValue: 100,
	},
	{
		Code:          "on-fire",
		Name:          "On Fire!",
		Description:   "Maintain a 3-day streak",
		Icon:          "🔥",
		CriteriaType:  CriteriaStreakDays,
		CriteriaValue: 3,
	},
	{
		Code:          "dedicated-learner",
		Name:          "Dedicated Learner",
		Description:   "Maintain a 7-day streak",
		Icon:          "⭐",
		CriteriaType:  CriteriaStreakDays,
		CriteriaValue: 7,
	},
	{
		Code:          "unstoppable",
		Name:          "Unstoppable",
		Description:   "Maintain a 30-day streak",
		Icon:          "💪",
		CriteriaType:  CriteriaStreakDays,
		CriteriaValue: 30,
	},
}
