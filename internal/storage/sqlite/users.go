package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
)

const userColumns = `id, name, nickname, email, password_hash, avatar, family_id, role, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var nickname, avatar, familyID, role sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&nickname,
		&user.Email,
		&user.PasswordHash,
		&avatar,
		&familyID,
		&role,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Nickname = fromNull(nickname)
	user.Avatar = fromNull(avatar)
	if familyID.Valid && role.Valid {
		user.Membership = &models.Membership{FamilyID: familyID.String, Role: models.Role(role.String)}
	}
	return user, nil
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, nickname, email, password_hash, avatar, family_id, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var familyID, role any
	if user.Membership != nil {
		familyID = user.Membership.FamilyID
		role = string(user.Membership.Role)
	}

	_, err := s.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		nullable(user.Nickname),
		strings.ToLower(user.Email),
		user.PasswordHash,
		nullable(user.Avatar),
		familyID,
		role,
		user.CreatedAt,
	)
	if err != nil {
		return wrap("failed to create user", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		strings.ToLower(email),
	)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`,
		id,
	)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// UpdateUserProfile overwrites the nickname and avatar of a user.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, id string, nickname, avatar *string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET nickname = ?, avatar = ? WHERE id = ?`,
		nullable(nickname), nullable(avatar), id,
	)
	if err != nil {
		return wrap("failed to update user profile", err)
	}
	return requireOne(res, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound))
}

// JoinFamily sets the membership of a user who currently has none.
func (s *SQLiteStore) JoinFamily(ctx context.Context, userID, familyID string, role models.Role) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET family_id = ?, role = ? WHERE id = ? AND family_id IS NULL`,
		familyID, string(role), userID,
	)
	if err != nil {
		return wrap("failed to join family", err)
	}
	return requireOne(res, fmt.Errorf("user %s already has a family: %w", userID, apperr.ErrConflict))
}

// ClearMembership removes a user from familyID.
func (s *SQLiteStore) ClearMembership(ctx context.Context, userID, familyID string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET family_id = NULL, role = NULL WHERE id = ? AND family_id = ?`,
		userID, familyID,
	)
	if err != nil {
		return wrap("failed to clear membership", err)
	}
	return requireOne(res, fmt.Errorf("user %s is not in family %s: %w", userID, familyID, apperr.ErrConflict))
}

// SetRole changes the role of a member of familyID.
func (s *SQLiteStore) SetRole(ctx context.Context, userID, familyID string, role models.Role) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ? AND family_id = ?`,
		string(role), userID, familyID,
	)
	if err != nil {
		return wrap("failed to set role", err)
	}
	return requireOne(res, fmt.Errorf("user %s is not in family %s: %w", userID, familyID, apperr.ErrConflict))
}
