package services

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"vocab-learn-system/models"
	"vocab-learn-system/shared"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// EvaluateBadges checks every catalog badge against the user's aggregate
// progress and awards the ones newly satisfied. Returns the ids of badges
// awarded by this call. A concurrent evaluation may race on the same insert;
// the unique (user, badge) constraint makes the loser a no-op.
func (s *BadgeService) EvaluateBadges(userID string) ([]string, error) {
	var prog models.UserProgress
	if err := s.DB.Where("user_id = ?", userID).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var catalog []models.Badge
	if err := s.DB.Find(&catalog).Error; err != nil {
		return nil, err
	}

	var earned []models.UserBadge
	if err := s.DB.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedSet := make(map[string]struct{}, len(earned))
	for _, ub := range earned {
		earnedSet[ub.BadgeID] = struct{}{}
	}

	var awarded []string
	for _, badge := range catalog {
		if _, ok := earnedSet[badge.ID]; ok {
			continue
		}
		if !meetsCriteria(&prog, &badge) {
			continue
		}

		userBadge := models.UserBadge{
			ID:      uuid.NewString(),
			UserID:  userID,
			BadgeID: badge.ID,
		}
		if err := s.DB.Create(&userBadge).Error; err != nil {
			if isDuplicateKey(err) {
				continue // another evaluation got there first
			}
			// Partial success is fine; keep evaluating the rest.
			log.Printf("⚠️ [BADGE] failed to award %s to %s: %v", badge.Code, userID, err)
			continue
		}
		awarded = append(awarded, badge.ID)
		log.Printf("🎖️ Badge awarded: %s → %s", badge.Name, userID)
	}
	return awarded, nil
}

func meetsCriteria(prog *models.UserProgress, badge *models.Badge) bool {
	switch badge.CriteriaType {
	case models.CriteriaWordsLearned:
		return prog.WordsLearned >= badge.CriteriaValue
	case models.CriteriaStreakDays:
		return prog.CurrentStreakDays >= badge.CriteriaValue
	default:
		return false
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// ListBadges returns the full catalog.
func (s *BadgeService) ListBadges() ([]models.Badge, error) {
	var catalog []models.Badge
	err := s.DB.Order("criteria_type, criteria_value").Find(&catalog).Error
	return catalog, err
}

// CreateBadge adds a catalog badge; the code is derived from the name.
func (s *BadgeService) CreateBadge(badge *models.Badge) error {
	if badge.Name == "" || badge.CriteriaType == "" || badge.CriteriaValue <= 0 {
		return shared.ErrValidation
	}
	if badge.CriteriaType != models.CriteriaWordsLearned && badge.CriteriaType != models.CriteriaStreakDays {
		return shared.ErrValidation
	}
	badge.ID = uuid.NewString()
	badge.Code = slug.Make(badge.Name)

	if err := s.DB.Create(badge).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// SeedBadges inserts the default catalog once. Safe to call on every boot.
func (s *BadgeService) SeedBadges() error {
	var count int64
	if err := s.DB.Model(&models.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, badge := range models.DefaultBadges {
		badge.ID = uuid.NewString()
		if err := s.DB.Create(&badge).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d default badges", len(models.DefaultBadges))
	return nil
}
