package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vocab-learn-system/models"
	"vocab-learn-system/shared"
)

type VocabularyService struct {
	DB *gorm.DB
}

func NewVocabularyService(db *gorm.DB) *VocabularyService {
	return &VocabularyService{DB: db}
}

// List returns vocabulary entries newest-first, optionally filtered by category.
func (s *VocabularyService) List(category string) ([]models.VocabularyEntry, error) {
	db := s.DB.Model(&models.VocabularyEntry{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	entries := []models.VocabularyEntry{}
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// Create validates and inserts a new entry. Word, meaning and a whitelisted
// category are required; the example sentence is optional.
func (s *VocabularyService) Create(entry *models.VocabularyEntry) error {
	if entry.Word == "" || entry.Meaning == "" || entry.Category == "" {
		return shared.ErrValidation
	}
	if !models.IsValidCategory(entry.Category) {
		return shared.ErrInvalidCategory
	}
	entry.ID = uuid.NewString()
	return s.DB.Create(entry).Error
}

// Update applies the non-empty fields to an existing entry.
func (s *VocabularyService) Update(id string, word, meaning, example, category *string) (*models.VocabularyEntry, error) {
	if id == "" {
		return nil, shared.ErrValidation
	}

	var entry models.VocabularyEntry
	if err := s.DB.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if word != nil && *word != "" {
		entry.Word = *word
	}
	if meaning != nil && *meaning != "" {
		entry.Meaning = *meaning
	}
	if example != nil {
		entry.ExampleSentence = *example
	}
	if category != nil && *category != "" {
		if !models.IsValidCategory(*category) {
			return nil, shared.ErrInvalidCategory
		}
		entry.Category = *category
	}

	if err := s.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// starterVocabulary seeds an empty bank so a fresh install has cards to study.
var starterVocabulary = []models.VocabularyEntry{
	{Word: "Hallo", Meaning: "Hello", ExampleSentence: "Hallo, wie geht es dir?", Category: "A1"},
	{Word: "Danke", Meaning: "Thank you", ExampleSentence: "Danke schön!", Category: "A1"},
	{Word: "Ja", Meaning: "Yes", ExampleSentence: "Ja, das ist richtig.", Category: "A1"},
	{Word: "Nein", Meaning: "No", ExampleSentence: "Nein, das ist falsch.", Category: "A1"},
	{Word: "Bitte", Meaning: "Please/You're welcome", ExampleSentence: "Bitte sehr!", Category: "A1"},
	{Word: "Tschüss", Meaning: "Goodbye", ExampleSentence: "Tschüss, bis morgen!", Category: "A1"},
	{Word: "Vielleicht", Meaning: "Maybe/Perhaps", ExampleSentence: "Vielleicht komme ich morgen.", Category: "A2"},
	{Word: "Wichtig", Meaning: "Important", ExampleSentence: "Das ist sehr wichtig für mich.", Category: "A2"},
	{Word: "Trotzdem", Meaning: "Nevertheless", ExampleSentence: "Es regnet, trotzdem gehe ich raus.", Category: "B1"},
	{Word: "Erfahrung", Meaning: "Experience", ExampleSentence: "Ich habe viel Erfahrung.", Category: "B1"},
}

// SeedVocabulary inserts the starter set once. Safe to call on every boot.
func (s *VocabularyService) SeedVocabulary() error {
	var count int64
	if err := s.DB.Model(&models.VocabularyEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, entry := range starterVocabulary {
		if err := s.Create(&entry); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an entry from the catalog.
func (s *VocabularyService) Delete(id string) error {
	if id == "" {
		return shared.ErrValidation
	}
	res := s.DB.Where("id = ?", id).Delete(&models.VocabularyEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
