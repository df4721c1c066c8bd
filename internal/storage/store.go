// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/familytable/internal/models"
)

// UserStore persists accounts and their family membership.
//
// Lookups return apperr.ErrNotFound when the user does not exist. The
// membership writes are compare-and-set: when the precondition does not
// hold they change nothing and return apperr.ErrConflict.
type UserStore interface {
	// CreateUser inserts a new user. A duplicate email returns apperr.ErrConflict.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUserProfile overwrites nickname and avatar.
	UpdateUserProfile(ctx context.Context, id string, nickname, avatar *string) error

	// JoinFamily sets the user's family and role. Requires the user to have
	// no family.
	JoinFamily(ctx context.Context, userID, familyID string, role models.Role) error

	// ClearMembership removes the user's family and role. Requires the user
	// to be in familyID.
	ClearMembership(ctx context.Context, userID, familyID string) error

	// SetRole changes the user's role. Requires the user to be in familyID.
	SetRole(ctx context.Context, userID, familyID string, role models.Role) error
}

// FamilyStore persists families.
type FamilyStore interface {
	// CreateFamily inserts a family. An invite code already in use returns
	// apperr.ErrConflict.
	CreateFamily(ctx context.Context, family *models.Family) error

	GetFamily(ctx context.Context, id string) (*models.Family, error)

	// GetFamilyByInviteCode matches the code case-insensitively.
	GetFamilyByInviteCode(ctx context.Context, code string) (*models.Family, error)

	// UpdateFamily writes name and metadata.
	UpdateFamily(ctx context.Context, family *models.Family) error

	// SetFamilyOwner moves ownership. Requires the current owner to be
	// expectedOwner.
	SetFamilyOwner(ctx context.Context, familyID, expectedOwner, newOwner string) error

	// DeleteFamily clears the membership of every member and removes the
	// family record.
	DeleteFamily(ctx context.Context, id string) error

	CountMembers(ctx context.Context, familyID string) (int, error)

	// ListMembers returns the family's members, keeper first.
	ListMembers(ctx context.Context, familyID string) ([]*models.User, error)
}

// RecipeStore persists recipes.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)

	// ListRecipes returns matching recipes, newest first.
	ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error)

	// UpdateRecipe writes the content fields. FamilyID and AuthorID are
	// never written.
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error

	DeleteRecipe(ctx context.Context, id string) error

	// ListCategories returns the distinct categories in use.
	ListCategories(ctx context.Context) ([]string, error)
}

// CommentStore persists comments.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)

	// ListComments returns a recipe's comments, newest first.
	ListComments(ctx context.Context, recipeID string, limit int) ([]*models.Comment, error)

	DeleteComment(ctx context.Context, id string) error
}

// NotificationStore persists notifications.
type NotificationStore interface {
	// InsertNotifications stores one row per notification.
	InsertNotifications(ctx context.Context, notifications []*models.Notification) error

	// ListNotifications returns a user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)

	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead flags one notification. Returns apperr.ErrNotFound when id
	// does not belong to userID.
	MarkRead(ctx context.Context, id, userID string) error

	MarkAllRead(ctx context.Context, userID string) error
}

// Store defines the complete storage boundary.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the domain layer.
type Store interface {
	UserStore
	FamilyStore
	RecipeStore
	CommentStore
	NotificationStore

	// WithTx runs fn against a Store whose writes commit together or not at
	// all. Calling WithTx on the Store passed to fn runs in the same
	// transaction.
	WithTx(ctx context.Context, fn func(Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
