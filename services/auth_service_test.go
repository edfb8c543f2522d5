package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab-learn-system/auth"
	"vocab-learn-system/models"
	"vocab-learn-system/shared"
)

var testSecret = []byte("test-secret")

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	res, err := svc.Signup("anna@example.com", "hunter2", "Anna")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "anna@example.com", res.User.Email)
	assert.False(t, res.User.IsAdmin)
	assert.NotEqual(t, "hunter2", res.User.PasswordHash)

	claims, err := auth.ParseToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	// Signup also creates the zeroed progress record.
	var prog models.UserProgress
	require.NoError(t, db.Where("user_id = ?", res.User.ID).First(&prog).Error)
	assert.Zero(t, prog.WordsLearned)
	assert.Zero(t, prog.CurrentStreakDays)
	assert.Equal(t, time.Now().Format(models.DateLayout), prog.LastActiveDate)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Signup("anna@example.com", "other", "Anna 2")
		assert.ErrorIs(t, err, shared.ErrEmailAlreadyExists)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := svc.Signup("", "pw", "Name")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Signup("anna@example.com", "hunter2", "Anna")
	require.NoError(t, err)

	res, err := svc.Login("anna@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	// Unknown email and wrong password are indistinguishable.
	_, errUnknown := svc.Login("nobody@example.com", "hunter2")
	_, errWrongPw := svc.Login("anna@example.com", "wrong")
	assert.ErrorIs(t, errUnknown, shared.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, shared.ErrInvalidCredentials)
}

func TestForgotPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Signup("anna@example.com", "hunter2", "Anna")
	require.NoError(t, err)

	t.Run("known email stores a 6-digit code", func(t *testing.T) {
		code, err := svc.ForgotPassword("anna@example.com")
		require.NoError(t, err)
		assert.Len(t, code, 6)

		var user models.User
		require.NoError(t, db.Where("email = ?", "anna@example.com").First(&user).Error)
		require.NotNil(t, user.ResetCode)
		assert.Equal(t, code, *user.ResetCode)
		require.NotNil(t, user.ResetCodeExpiry)
		assert.WithinDuration(t, time.Now().Add(ResetCodeValidity), *user.ResetCodeExpiry, time.Minute)
	})

	t.Run("unknown email is silent", func(t *testing.T) {
		code, err := svc.ForgotPassword("nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, code)
	})
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Signup("anna@example.com", "hunter2", "Anna")
	require.NoError(t, err)

	code, err := svc.ForgotPassword("anna@example.com")
	require.NoError(t, err)

	t.Run("short password rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword("anna@example.com", code, "abc"), shared.ErrPasswordTooShort)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword("anna@example.com", "000000", "newpassword"), shared.ErrInvalidResetCode)
	})

	t.Run("happy path rotates the password and burns the code", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword("anna@example.com", code, "newpassword"))

		_, err := svc.Login("anna@example.com", "newpassword")
		require.NoError(t, err)
		_, err = svc.Login("anna@example.com", "hunter2")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

		// Code is single-use.
		assert.ErrorIs(t, svc.ResetPassword("anna@example.com", code, "anotherpw"), shared.ErrInvalidResetCode)
	})

	t.Run("expired code rejected", func(t *testing.T) {
		code, err := svc.ForgotPassword("anna@example.com")
		require.NoError(t, err)

		expired := time.Now().Add(-time.Minute)
		require.NoError(t, db.Model(&models.User{}).
			Where("email = ?", "anna@example.com").
			Update("reset_code_expiry", expired).Error)

		assert.ErrorIs(t, svc.ResetPassword("anna@example.com", code, "newpassword"), shared.ErrInvalidResetCode)
	})
}
