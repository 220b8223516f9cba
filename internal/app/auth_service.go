package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"employee-directory/internal/model"
	"employee-directory/internal/pkg/jwtutil"
	"employee-directory/internal/repository"
)

var (
	ErrEmailPasswordRequired      = errors.New("Email and password are required")
	ErrIdentifierPasswordRequired = errors.New("Identifier and password are required")
	ErrUserExists                 = errors.New("User already exists")
	// ErrInvalidCredential covers both "no such user" and "wrong password" so a
	// caller cannot probe which identifiers exist.
	ErrInvalidCredential = errors.New("Invalid credentials")
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Identifier string
	Password   string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing == nil && username != "" {
		existing, err = s.users.GetByUsername(username)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if username != "" {
		user.Username = &username
	}
	if err := s.users.Create(user); err != nil {
		// Two concurrent registrations can both pass the lookups above; the
		// store's unique index decides the loser.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.issue(user)
}

// Login resolves the identifier against the lowercased email first, then the
// raw username, as the directory client sends either interchangeably.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	password := input.Password

	if identifier == "" || password == "" {
		return nil, ErrIdentifierPasswordRequired
	}

	user, err := s.users.GetByEmail(strings.ToLower(identifier))
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.GetByUsername(identifier)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	username := ""
	if user.Username != nil {
		username = *user.Username
	}
	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email, username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
