package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
)

const recipeColumns = `id, family_id, title, ingredients, instructions, story, photos,
	cooking_time, servings, category, difficulty, author_id, author_name, created_at`

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	var familyID, story sql.NullString
	var ingredients, photos string
	if err := row.Scan(
		&recipe.ID, &familyID, &recipe.Title, &ingredients, &recipe.Instructions, &story, &photos,
		&recipe.CookingTime, &recipe.Servings, &recipe.Category, &recipe.Difficulty,
		&recipe.AuthorID, &recipe.AuthorName, &recipe.CreatedAt,
	); err != nil {
		return nil, err
	}
	recipe.FamilyID = fromNull(familyID)
	recipe.Story = fromNull(story)
	if err := json.Unmarshal([]byte(ingredients), &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(photos), &recipe.Photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}
	return recipe, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

// CreateRecipe persists a new recipe.
func (s *SQLiteStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.CreatedAt == "" {
		recipe.CreatedAt = models.Now()
	}

	ingredients, err := encodeList(recipe.Ingredients)
	if err != nil {
		return err
	}
	photos, err := encodeList(recipe.Photos)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx,
		`INSERT INTO recipes (`+recipeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID, nullable(recipe.FamilyID), recipe.Title, ingredients, recipe.Instructions,
		nullable(recipe.Story), photos, recipe.CookingTime, recipe.Servings, recipe.Category,
		recipe.Difficulty, recipe.AuthorID, recipe.AuthorName, recipe.CreatedAt,
	)
	if err != nil {
		return wrap("failed to insert recipe", err)
	}
	return nil
}

// GetRecipe retrieves a recipe by ID.
func (s *SQLiteStore) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := scanRecipe(s.q.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// ListRecipes returns the legacy recipes plus, when filter.FamilyID is set,
// that family's recipes, newest first.
func (s *SQLiteStore) ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	var (
		where []string
		args  []any
	)
	if filter.FamilyID != nil {
		where = append(where, "(family_id IS NULL OR family_id = ?)")
		args = append(args, *filter.FamilyID)
	} else {
		where = append(where, "family_id IS NULL")
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.AuthorID != "" {
		where = append(where, "author_id = ?")
		args = append(args, filter.AuthorID)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe writes the content fields of a recipe.
func (s *SQLiteStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	ingredients, err := encodeList(recipe.Ingredients)
	if err != nil {
		return err
	}
	photos, err := encodeList(recipe.Photos)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE recipes SET title = ?, ingredients = ?, instructions = ?, story = ?, photos = ?,
		 cooking_time = ?, servings = ?, category = ?, difficulty = ? WHERE id = ?`,
		recipe.Title, ingredients, recipe.Instructions, nullable(recipe.Story), photos,
		recipe.CookingTime, recipe.Servings, recipe.Category, recipe.Difficulty, recipe.ID,
	)
	if err != nil {
		return wrap("failed to update recipe", err)
	}
	return requireOne(res, fmt.Errorf("recipe %s: %w", recipe.ID, apperr.ErrNotFound))
}

// DeleteRecipe removes a recipe and, through the foreign key, its comments.
func (s *SQLiteStore) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return wrap("failed to delete recipe", err)
	}
	return requireOne(res, fmt.Errorf("recipe %s: %w", id, apperr.ErrNotFound))
}

// ListCategories returns the distinct categories used by stored recipes.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT DISTINCT category FROM recipes ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
