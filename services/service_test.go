package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vocab-learn-system/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.VocabularyEntry{},
		&models.UserProgress{},
		&models.WordProgress{},
		&models.Badge{},
		&models.UserBadge{},
	))
	return db
}

func createVocab(t *testing.T, db *gorm.DB, word, category string) models.VocabularyEntry {
	t.Helper()
	entry := models.VocabularyEntry{Word: word, Meaning: word + " (en)", Category: category}
	require.NoError(t, NewVocabularyService(db).Create(&entry))
	return entry
}
