package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[string]*models.User)} }

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email: %w", apperr.ErrConflict)
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func newTestAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(newMemUsers())
	a.cost = bcrypt.MinCost
	return a
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()
	nick := "  Nana "

	user, err := a.Register(ctx, " Alice@Example.COM ", "Alice", &nick, "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email should be lower-cased, got %q", user.Email)
	}
	if user.DisplayName() != "Nana" {
		t.Errorf("display name: expected Nana, got %q", user.DisplayName())
	}
	if user.PasswordHash == "password123" || user.Membership != nil {
		t.Errorf("unexpected user: %+v", user)
	}

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		want     error
	}{
		{"duplicate email any case", "ALICE@example.com", "Other", "password123", ErrEmailExists},
		{"short password", "bob@example.com", "Bob", "short", ErrWeakPassword},
		{"bad email", "not-an-email", "Bob", "password123", ErrInvalidEmail},
		{"blank name", "bob@example.com", "  ", "password123", ErrNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.email, tt.userName, nil, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()
	registered, err := a.Register(ctx, "alice@example.com", "Alice", nil, "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := a.Authenticate(ctx, "ALICE@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("wrong user: %s", user.ID)
	}

	if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id: expected user-1, got %s", claims.UserID)
	}

	t.Run("other secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		old, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unsigned", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
		s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("failed to build token: %v", err)
		}
		if _, err := m.Validate(s); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
