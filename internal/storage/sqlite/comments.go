package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
)

// CreateComment persists a new comment.
func (s *SQLiteStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt == "" {
		comment.CreatedAt = models.Now()
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO comments (id, recipe_id, user_id, user_name, text, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.RecipeID, comment.AuthorID, comment.AuthorName, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return wrap("failed to insert comment", err)
	}
	return nil
}

// GetComment retrieves a comment by ID.
func (s *SQLiteStore) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	comment := &models.Comment{}
	err := s.q.QueryRowContext(ctx,
		`SELECT id, recipe_id, user_id, user_name, text, created_at FROM comments WHERE id = ?`, id,
	).Scan(&comment.ID, &comment.RecipeID, &comment.AuthorID, &comment.AuthorName, &comment.Text, &comment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comment %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the comments of a recipe, newest first.
func (s *SQLiteStore) ListComments(ctx context.Context, recipeID string, limit int) ([]*models.Comment, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, recipe_id, user_id, user_name, text, created_at FROM comments
		 WHERE recipe_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		recipeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		if err := rows.Scan(&comment.ID, &comment.RecipeID, &comment.AuthorID, &comment.AuthorName,
			&comment.Text, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment by ID.
func (s *SQLiteStore) DeleteComment(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return wrap("failed to delete comment", err)
	}
	return requireOne(res, fmt.Errorf("comment %s: %w", id, apperr.ErrNotFound))
}
