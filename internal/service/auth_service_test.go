package service

import (
	"errors"
	"sync"
	"testing"

	"bikerental/internal/db"
)

type fakeUserStore struct {
	mu    sync.Mutex
	seq   int
	users map[int]db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]db.User)}
}

func (s *fakeUserStore) GetByEmail(email string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(id int) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *fakeUserStore) CreateUser(u *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	u.ID = s.seq
	s.users[u.ID] = *u
	return nil
}

func TestAuthService(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("register then login", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore())

		token, user, err := svc.Register("John Doe", "john@example.com", "password", "123-456-7890")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if token == "" {
			t.Error("expected a token")
		}
		if user.Role != "user" {
			t.Errorf("expected role user, got %q", user.Role)
		}
		if user.PasswordHash == "password" {
			t.Error("password must not be stored in plain text")
		}

		token, user, err = svc.Login("john@example.com", "password")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" || user.ID == 0 {
			t.Error("expected token and user from login")
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore())

		if _, _, err := svc.Register("John", "john@example.com", "password", ""); err != nil {
			t.Fatalf("register: %v", err)
		}
		if _, _, err := svc.Register("Johnny", "john@example.com", "other", ""); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore())

		if _, _, err := svc.Register("John", "john@example.com", "password", ""); err != nil {
			t.Fatalf("register: %v", err)
		}
		if _, _, err := svc.Login("john@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, _, err := svc.Login("nobody@example.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
