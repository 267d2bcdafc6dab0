package services

import (
	"strings"
	"time"

	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
	"github.com/slidedeckhq/slidedeck-be/internal/auth"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Signup(username, password string) error
	Authenticate(username, password string) error
}

// UserService provides signup and credential checks over the datastore.
type UserService struct {
	store *datastore.Store
}

// NewUserService creates a new UserService.
func NewUserService(store *datastore.Store) *UserService {
	return &UserService{store: store}
}

// Signup validates and creates a new account.
func (s *UserService) Signup(username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if len(username) < 3 {
		return apperr.Validation("Username must be at least 3 characters")
	}
	if len(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}

	return s.store.Update(func(st *datastore.State) error {
		if _, exists := st.Users[username]; exists {
			return apperr.Conflict("User already exists")
		}
		st.Users[username] = models.User{
			PasswordHash: auth.HashPassword(password),
			CreatedAt:    time.Now().UTC(),
		}
		return nil
	})
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperr.Validation("Username and password required")
	}

	st := s.store.Load()
	user, ok := st.Users[username]
	if !ok || !auth.VerifyPassword(password, user.PasswordHash) {
		return apperr.Unauthorized("Invalid credentials")
	}
	return nil
}
