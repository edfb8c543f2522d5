package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vocab-learn-system/auth"
	"vocab-learn-system/models"
	"vocab-learn-system/services"
)

var testSecret = []byte("test-secret")

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.VocabularyEntry{},
		&models.UserProgress{},
		&models.WordProgress{},
		&models.Badge{},
		&models.UserBadge{},
	))

	badgeService := services.NewBadgeService(db)
	require.NoError(t, badgeService.SeedBadges())

	app := fiber.New()
	SetupAuthRoutes(app, services.NewAuthService(db, testSecret))
	SetupVocabularyRoutes(app, services.NewVocabularyService(db), testSecret)
	SetupProgressRoutes(app, services.NewProgressService(db), testSecret)
	SetupBadgeRoutes(app, badgeService, testSecret)
	SetupImportRoutes(app, services.NewImportService(db), testSecret)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signup(t *testing.T, app *fiber.App, email string) (token, userID string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": email, "password": "hunter2", "name": "Anna",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, resp, &body)
	return body.Token, body.User.ID
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken("admin-1", "admin@example.com", true, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestVocabularyMutation_AuthGate(t *testing.T) {
	app, _ := newTestApp(t)

	payload := fiber.Map{"word": "Hallo", "meaning": "Hello", "category": "A1"}

	t.Run("no credential is unauthorized", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin credential is forbidden, not unauthorized", func(t *testing.T) {
		token, _ := signup(t, app, "learner@example.com")
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary", token, payload)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin credential is allowed", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary", adminToken(t), payload)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestExpiredCredentialRejected(t *testing.T) {
	app, _ := newTestApp(t)

	// Issued more than 7 days ago.
	expired, err := auth.GenerateToken("user-1", "old@example.com", false, testSecret, -time.Hour)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/api/progress", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReviewFlow_EndToEnd(t *testing.T) {
	app, _ := newTestApp(t)

	// Admin seeds a word, the learner reviews it as known.
	resp := doJSON(t, app, http.MethodPost, "/api/vocabulary", adminToken(t), fiber.Map{
		"word": "Hallo", "meaning": "Hello", "category": "Greetings",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry models.VocabularyEntry
	decode(t, resp, &entry)

	token, _ := signup(t, app, "learner@example.com")

	resp = doJSON(t, app, http.MethodPost, "/api/flashcards/progress", token, fiber.Map{
		"vocabularyId": entry.ID, "status": "known",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview services.ProgressOverview
	decode(t, resp, &overview)
	assert.Equal(t, int64(1), overview.Progress.WordsLearned)
	assert.Equal(t, int64(10), overview.Progress.TotalXP)
	require.Len(t, overview.Badges, 1)
	assert.Equal(t, "first-steps", overview.Badges[0].Code)

	resp = doJSON(t, app, http.MethodGet, "/api/flashcards", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []services.Flashcard
	decode(t, resp, &cards)
	require.Len(t, cards, 1)
	assert.Equal(t, "known", cards[0].UserStatus)
}

func TestVocabularyRoundTripOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vocabulary", admin, fiber.Map{
		"word": "Trotzdem", "meaning": "Nevertheless", "category": "B1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry models.VocabularyEntry
	decode(t, resp, &entry)

	resp = doJSON(t, app, http.MethodGet, "/api/vocabulary?category=B1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []models.VocabularyEntry
	decode(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, entry.ID, listed[0].ID)

	resp = doJSON(t, app, http.MethodDelete, "/api/vocabulary", admin, fiber.Map{"id": entry.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/vocabulary", "", nil)
	decode(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestBulkImportOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t)

	t.Run("pipe text all-or-nothing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary/bulk", admin, fiber.Map{
			"text": "X | Y | NotACategory",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("csv partial accept", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary/bulk", admin, fiber.Map{
			"text":   "word,meaning,category\nHallo,Hello,Greetings\nbroken\nDanke,Thanks,A1",
			"format": "csv",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		decode(t, resp, &body)
		assert.Equal(t, "Imported 2 of 2 entries", body.Message)
		assert.Len(t, body.Errors, 1)
	})

	t.Run("import requires admin", func(t *testing.T) {
		token, _ := signup(t, app, "learner@example.com")
		resp := doJSON(t, app, http.MethodPost, "/api/vocabulary/bulk", token, fiber.Map{
			"text": "Hallo | Hello | Greetings",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestForgotPassword_NonRevealing(t *testing.T) {
	app, _ := newTestApp(t)
	signup(t, app, "anna@example.com")

	known := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "anna@example.com"})
	unknown := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "ghost@example.com"})

	require.Equal(t, http.StatusOK, known.StatusCode)
	require.Equal(t, http.StatusOK, unknown.StatusCode)

	var a, b map[string]string
	decode(t, known, &a)
	decode(t, unknown, &b)
	assert.Equal(t, a["message"], b["message"])
}
