package models

import (
	"strings"

	"github.com/google/uuid"
)

// Role is a user's position inside their family.
type Role string

const (
	RoleKeeper Role = "keeper"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleKeeper || r == RoleMember
}

// Membership ties a user to a family. A user has either no membership or
// exactly one family together with one role.
type Membership struct {
	FamilyID string
	Role     Role
}

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the full name given at registration.
	Name string

	// Nickname, when set, takes precedence over Name for display.
	Nickname *string

	// Email is the user's lower-cased email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Avatar is an optional encoded image.
	Avatar *string

	// Membership is nil for users without a family, including every account
	// created before families existed.
	Membership *Membership

	// CreatedAt is the registration timestamp.
	CreatedAt string
}

// NewUser creates a user without a family.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    Now(),
	}
}

// DisplayName returns the nickname when set, otherwise the name.
func (u *User) DisplayName() string {
	if u.Nickname != nil && strings.TrimSpace(*u.Nickname) != "" {
		return *u.Nickname
	}
	return u.Name
}

// FamilyID returns the user's family id, or nil when ungrouped.
func (u *User) FamilyID() *string {
	if u == nil || u.Membership == nil {
		return nil
	}
	id := u.Membership.FamilyID
	return &id
}

// InFamily reports whether the user currently belongs to familyID.
func (u *User) InFamily(familyID string) bool {
	return u != nil && u.Membership != nil && u.Membership.FamilyID == familyID
}

// IsKeeperOf reports whether the user is the keeper of familyID.
func (u *User) IsKeeperOf(familyID string) bool {
	return u.InFamily(familyID) && u.Membership.Role == RoleKeeper
}

// SameFamily reports whether familyID (possibly nil) equals the user's
// family. A nil familyID never matches.
func (u *User) SameFamily(familyID *string) bool {
	return familyID != nil && u.InFamily(*familyID)
}
