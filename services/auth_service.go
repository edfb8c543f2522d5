package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vocab-learn-system/auth"
	"vocab-learn-system/models"
	"vocab-learn-system/shared"
)

const (
	MinPasswordLength = 6
	ResetCodeValidity = time.Hour
)

type AuthService struct {
	DB        *gorm.DB
	SecretKey []byte
	Progress  *ProgressService
}

func NewAuthService(db *gorm.DB, secretKey []byte) *AuthService {
	return &AuthService{
		DB:        db,
		SecretKey: secretKey,
		Progress:  NewProgressService(db),
	}
}

// AuthResult is a freshly issued credential plus the profile it asserts.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup registers a new account, creates its zeroed progress record and
// issues a credential. Duplicate emails are rejected.
func (s *AuthService) Signup(email, password, name string) (*AuthResult, error) {
	if email == "" || password == "" || name == "" {
		return nil, shared.ErrValidation
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, shared.ErrEmailAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, shared.ErrEmailAlreadyExists
		}
		return nil, err
	}

	if _, err := s.Progress.EnsureProgressRecord(user.ID); err != nil {
		log.Printf("⚠️ [AUTH] failed to create progress record for %s: %v", user.ID, err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin, s.SecretKey, auth.TokenValidity)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies email+password and issues a credential. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, shared.ErrValidation
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin, s.SecretKey, auth.TokenValidity)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// GetUser loads the profile behind a verified credential.
func (s *AuthService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword stores a time-limited 6-digit reset code when the account
// exists. The returned code is empty for unknown emails; callers must answer
// with the same message either way so account existence is never revealed.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	if email == "" {
		return "", shared.ErrValidation
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	code := fmt.Sprintf("%06d", rand.Intn(900000)+100000)
	expiry := time.Now().Add(ResetCodeValidity)
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"reset_code":        code,
		"reset_code_expiry": expiry,
	}).Error; err != nil {
		return "", err
	}

	// TODO: deliver via the mail service instead of logging once SMTP creds land.
	log.Printf("🔑 Reset code for %s: %s", email, code)
	return code, nil
}

// ResetPassword validates the code and expiry, enforces the minimum password
// length and invalidates the code after use.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return shared.ErrValidation
	}
	if len(newPassword) < MinPasswordLength {
		return shared.ErrPasswordTooShort
	}

	var user models.User
	err := s.DB.Where("email = ? AND reset_code = ?", email, code).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrInvalidResetCode
		}
		return err
	}
	if user.ResetCodeExpiry == nil || user.ResetCodeExpiry.Before(time.Now()) {
		return shared.ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash":     string(hash),
		"reset_code":        nil,
		"reset_code_expiry": nil,
	}).Error
}
