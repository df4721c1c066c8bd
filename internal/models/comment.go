package models

// Comment is a note left on a recipe.
type Comment struct {
	ID       string
	RecipeID string

	// AuthorID is the commenting user; AuthorName their display name at the
	// time of writing.
	AuthorID   string
	AuthorName string

	Text      string
	CreatedAt string
}
