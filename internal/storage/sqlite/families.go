package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/storage"
)

func encodeMetadata(meta map[string]string) (any, error) {
	if meta == nil {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(b), nil
}

func scanFamily(row rowScanner) (*models.Family, error) {
	family := &models.Family{}
	var meta sql.NullString
	if err := row.Scan(&family.ID, &family.Name, &family.OwnerID, &family.InviteCode, &meta, &family.CreatedAt); err != nil {
		return nil, err
	}
	if meta.Valid {
		if err := json.Unmarshal([]byte(meta.String), &family.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}
	return family, nil
}

// CreateFamily persists a new family.
func (s *SQLiteStore) CreateFamily(ctx context.Context, family *models.Family) error {
	meta, err := encodeMetadata(family.Metadata)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx,
		`INSERT INTO families (id, name, owner_id, invite_code, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		family.ID, family.Name, family.OwnerID, strings.ToUpper(family.InviteCode), meta, family.CreatedAt,
	)
	if err != nil {
		return wrap("failed to insert family", err)
	}
	return nil
}

// GetFamily retrieves a family by ID.
func (s *SQLiteStore) GetFamily(ctx context.Context, id string) (*models.Family, error) {
	family, err := scanFamily(s.q.QueryRowContext(ctx,
		`SELECT id, name, owner_id, invite_code, metadata, created_at FROM families WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("family %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// GetFamilyByInviteCode retrieves a family by its invite code.
func (s *SQLiteStore) GetFamilyByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	family, err := scanFamily(s.q.QueryRowContext(ctx,
		`SELECT id, name, owner_id, invite_code, metadata, created_at FROM families WHERE invite_code = ?`,
		strings.ToUpper(strings.TrimSpace(code)),
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invite code %q: %w", code, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family by invite code: %w", err)
	}
	return family, nil
}

// UpdateFamily writes the name and metadata of an existing family.
func (s *SQLiteStore) UpdateFamily(ctx context.Context, family *models.Family) error {
	meta, err := encodeMetadata(family.Metadata)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE families SET name = ?, metadata = ? WHERE id = ?`,
		family.Name, meta, family.ID,
	)
	if err != nil {
		return wrap("failed to update family", err)
	}
	return requireOne(res, fmt.Errorf("family %s: %w", family.ID, apperr.ErrNotFound))
}

// SetFamilyOwner moves ownership from expectedOwner to newOwner.
func (s *SQLiteStore) SetFamilyOwner(ctx context.Context, familyID, expectedOwner, newOwner string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE families SET owner_id = ? WHERE id = ? AND owner_id = ?`,
		newOwner, familyID, expectedOwner,
	)
	if err != nil {
		return wrap("failed to set family owner", err)
	}
	return requireOne(res, fmt.Errorf("family %s is not owned by %s: %w", familyID, expectedOwner, apperr.ErrConflict))
}

// DeleteFamily clears every membership of the family and removes it.
// Both statements share one transaction.
func (s *SQLiteStore) DeleteFamily(ctx context.Context, id string) error {
	return s.WithTx(ctx, func(st storage.Store) error {
		tx := st.(*SQLiteStore)
		if _, err := tx.q.ExecContext(ctx,
			`UPDATE users SET family_id = NULL, role = NULL WHERE family_id = ?`, id,
		); err != nil {
			return wrap("failed to clear family members", err)
		}

		res, err := tx.q.ExecContext(ctx, `DELETE FROM families WHERE id = ?`, id)
		if err != nil {
			return wrap("failed to delete family", err)
		}
		return requireOne(res, fmt.Errorf("family %s: %w", id, apperr.ErrNotFound))
	})
}

// CountMembers returns the number of users in a family.
func (s *SQLiteStore) CountMembers(ctx context.Context, familyID string) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE family_id = ?`, familyID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}

// ListMembers returns the users of a family, keeper first.
func (s *SQLiteStore) ListMembers(ctx context.Context, familyID string) ([]*models.User, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE family_id = ?
		 ORDER BY CASE role WHEN 'keeper' THEN 0 ELSE 1 END, created_at, id`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
