package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrAdminExists  = errors.New("admin user already exists")
)

type User struct {
	ID       string
	Email    string
	Name     string
	PassHash string // argon2id encoded string
	Role     Role
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	// Add creates a regular user; fails with ErrEmailTaken on duplicate email.
	Add(ctx context.Context, u *User) error
	// AddAdmin creates the one admin record. It fails with ErrAdminExists if
	// an admin already exists; concurrent callers see at most one winner.
	AddAdmin(ctx context.Context, u *User) error
	CountAdmins(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id, newHash string) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemoryUserStore backs tests and local development.
type MemoryUserStore struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]*User
	admins  int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    map[string]*User{},
		byEmail: map[string]*User{},
	}
}

func (s *MemoryUserStore) Add(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(u)
}

func (s *MemoryUserStore) AddAdmin(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admins > 0 {
		return ErrAdminExists
	}
	u.Role = RoleAdmin
	return s.addLocked(u)
}

func (s *MemoryUserStore) addLocked(u *User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	email := normalizeEmail(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	clone := *u
	clone.Email = email
	s.byID[clone.ID] = &clone
	s.byEmail[email] = &clone
	if clone.Role == RoleAdmin {
		s.admins++
	}
	return nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byEmail[normalizeEmail(email)]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) CountAdmins(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admins, nil
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, id, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PassHash = newHash
	return nil
}
