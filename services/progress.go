package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vocab-learn-system/models"
	"vocab-learn-system/shared"
)

// XPPerKnownReview is the fixed reward granted for each "known" review.
// No cap, no decay.
const XPPerKnownReview = 10

type ProgressService struct {
	DB *gorm.DB

	// CountRepeatKnown controls whether marking an already-known word as
	// "known" again still increments words_learned and grants XP. The
	// historical behavior is true; set false to count distinct words only.
	CountRepeatKnown bool
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db, CountRepeatKnown: true}
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent).
// New rows start zeroed with last_active_date set to today.
func (s *ProgressService) EnsureProgressRecord(userID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("user_id = ?", userID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.UserProgress{
			ID:             uuid.NewString(),
			UserID:         userID,
			LastActiveDate: time.Now().Format(models.DateLayout),
		}
		if err := s.DB.Create(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// nextStreak applies the consecutive-day rule: same day keeps the streak,
// the immediate next day extends it, any gap resets it to 1.
func nextStreak(lastActive, today string, current int64) int64 {
	if lastActive == today {
		return current
	}
	day, err := time.Parse(models.DateLayout, today)
	if err != nil {
		return 1
	}
	if lastActive == day.AddDate(0, 0, -1).Format(models.DateLayout) {
		return current + 1
	}
	return 1
}

// RecordReview applies one review event: upserts the per-word status and, for
// a "known" outcome, rolls the event into the user's aggregate progress and
// re-evaluates badges. The per-word write is fatal on failure; aggregate and
// badge failures are logged and swallowed so the review itself still succeeds.
func (s *ProgressService) RecordReview(userID, vocabularyID, status string) error {
	if userID == "" || vocabularyID == "" {
		return shared.ErrValidation
	}
	if status != models.StatusLearning && status != models.StatusKnown {
		return shared.ErrValidation
	}

	now := time.Now()
	firstKnown := true

	var wp models.WordProgress
	err := s.DB.Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).First(&wp).Error
	switch {
	case err == nil:
		firstKnown = wp.Status != models.StatusKnown
		wp.Status = status
		wp.LastReviewed = now
		wp.TimesReviewed++
		if err := s.DB.Save(&wp).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		wp = models.WordProgress{
			ID:            uuid.NewString(),
			UserID:        userID,
			VocabularyID:  vocabularyID,
			Status:        status,
			TimesReviewed: 1,
			LastReviewed:  now,
		}
		if err := s.DB.Create(&wp).Error; err != nil {
			return err
		}
	default:
		return err
	}

	if status != models.StatusKnown {
		return nil
	}
	if !s.CountRepeatKnown && !firstKnown {
		return nil
	}

	if err := s.applyKnownReview(userID, now); err != nil {
		log.Printf("⚠️ [PROGRESS] aggregate update failed for %s: %v", userID, err)
		return nil
	}

	badgeSvc := NewBadgeService(s.DB)
	if _, err := badgeSvc.EvaluateBadges(userID); err != nil {
		log.Printf("⚠️ [PROGRESS] badge evaluation failed for %s: %v", userID, err)
	}
	return nil
}

// applyKnownReview rolls a single "known" event into the aggregate record.
// Counters are incremented in SQL so concurrent reviews cannot lose updates.
func (s *ProgressService) applyKnownReview(userID string, now time.Time) error {
	today := now.Format(models.DateLayout)
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var prog models.UserProgress
		if err := tx.Where("user_id = ?", userID).First(&prog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Signup always creates the record; tolerate its absence.
				log.Printf("⚠️ [PROGRESS] no progress record for %s, skipping aggregate update", userID)
				return nil
			}
			return err
		}

		streak := nextStreak(prog.LastActiveDate, today, prog.CurrentStreakDays)

		return tx.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"words_learned":       gorm.Expr("words_learned + 1"),
				"total_xp":            gorm.Expr("total_xp + ?", XPPerKnownReview),
				"current_streak_days": streak,
				"last_active_date":    today,
			}).Error
	})
}

// EarnedBadge is a user's badge joined with its catalog details.
type EarnedBadge struct {
	ID            string    `json:"id"`
	BadgeID       string    `json:"badge_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	IconURL       string    `json:"icon_url"`
	CriteriaType  string    `json:"criteria_type"`
	CriteriaValue int64     `json:"criteria_value"`
	AwardedAt     time.Time `json:"awarded_at"`
}

// ProgressOverview is the dashboard payload: aggregate counters plus badges.
type ProgressOverview struct {
	Progress models.UserProgress `json:"progress"`
	Badges   []EarnedBadge       `json:"badges"`
}

// GetProgress returns the user's aggregate progress (zero-state when no row
// exists yet) together with every badge earned so far.
func (s *ProgressService) GetProgress(userID string) (*ProgressOverview, error) {
	var prog models.UserProgress
	if err := s.DB.Where("user_id = ?", userID).First(&prog).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		prog = models.UserProgress{UserID: userID}
	}

	badges := []EarnedBadge{}
	if err := s.DB.Raw(`
		SELECT ub.id, ub.badge_id, b.code, b.name, b.description, b.icon, b.icon_url,
		       b.criteria_type, b.criteria_value, ub.awarded_at
		FROM user_badges ub
		INNER JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = ?
		ORDER BY ub.awarded_at DESC
	`, userID).Scan(&badges).Error; err != nil {
		return nil, err
	}

	return &ProgressOverview{Progress: prog, Badges: badges}, nil
}

// Flashcard is a vocabulary entry merged with the caller's review state.
type Flashcard struct {
	models.VocabularyEntry
	UserStatus    string     `json:"userStatus"`
	TimesReviewed int64      `json:"timesReviewed"`
	LastReviewed  *time.Time `json:"lastReviewed,omitempty"`
}

// Flashcards returns the vocabulary bank (optionally filtered by category)
// with the user's per-word status merged in, defaulting to "new".
func (s *ProgressService) Flashcards(userID, category string) ([]Flashcard, error) {
	db := s.DB.Model(&models.VocabularyEntry{})
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var entries []models.VocabularyEntry
	if err := db.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	var statuses []models.WordProgress
	if err := s.DB.Where("user_id = ?", userID).Find(&statuses).Error; err != nil {
		return nil, err
	}
	byVocab := make(map[string]models.WordProgress, len(statuses))
	for _, wp := range statuses {
		byVocab[wp.VocabularyID] = wp
	}

	cards := make([]Flashcard, len(entries))
	for i, entry := range entries {
		card := Flashcard{VocabularyEntry: entry, UserStatus: models.StatusNew}
		if wp, ok := byVocab[entry.ID]; ok {
			card.UserStatus = wp.Status
			card.TimesReviewed = wp.TimesReviewed
			last := wp.LastReviewed
			card.LastReviewed = &last
		}
		cards[i] = card
	}
	return cards, nil
}
