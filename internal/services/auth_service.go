package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/skyventures/tasks-api/internal/constants"
	"github.com/skyventures/tasks-api/internal/models"
	"github.com/skyventures/tasks-api/internal/repository"
	"github.com/skyventures/tasks-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sentinel errors double as the API-visible messages of the ported contract.
var (
	ErrUsernameTooShort  = errors.New("Your username needs to be at least 2 characters long")
	ErrUsernameTaken     = errors.New("This username is already in use")
	ErrEmailTaken        = errors.New("This email address is already in use")
	ErrInvalidEmail      = errors.New("The email address you entered is not valid")
	ErrWeakPassword      = errors.New("Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, and one digit")
	ErrNoAccount         = errors.New("No account found with this email address")
	ErrIncorrectPassword = errors.New("Incorrect password")
)

var validate = validator.New()

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates the input, persists the user with a hashed password, and
// returns the user together with a freshly issued credential token.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if utf8.RuneCountInString(username) < constants.MinUsernameLength {
		return nil, "", ErrUsernameTooShort
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Uniqueness is checked before the email format so multi-invalid input
	// reports the conflict first.
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if err := validate.Var(email, "required,email"); err != nil {
		return nil, "", ErrInvalidEmail
	}

	if !validPassword(input.Password) {
		return nil, "", ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := token.Issue(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, signed, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNoAccount
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrIncorrectPassword
	}

	signed, err := token.Issue(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, signed, nil
}

// validPassword enforces the password policy: at least 8 characters with one
// lowercase letter, one uppercase letter, and one digit.
func validPassword(password string) bool {
	if len(password) < constants.MinPasswordLength {
		return false
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLower && hasUpper && hasDigit
}
