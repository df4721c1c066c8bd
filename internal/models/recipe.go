package models

// Recipe is a dish shared by its author.
type Recipe struct {
	// ID is the unique identifier for the recipe (UUID format).
	ID string

	// FamilyID is copied from the author's membership at creation and never
	// changes afterward. Nil marks a legacy recipe readable by everyone.
	FamilyID *string

	Title        string
	Ingredients  []string
	Instructions string
	Story        *string
	Photos       []string
	CookingTime  int // minutes
	Servings     int
	Category     string
	Difficulty   string // easy, medium, hard

	// AuthorID is the user who created the recipe.
	AuthorID string

	// AuthorName is the author's display name at creation time.
	AuthorName string

	CreatedAt string
}

// RecipeUpdate is a partial edit; nil fields are left untouched.
type RecipeUpdate struct {
	Title        *string
	Ingredients  []string
	Instructions *string
	Story        *string
	Photos       []string
	CookingTime  *int
	Servings     *int
	Category     *string
	Difficulty   *string
}

// Apply copies the set fields of u onto r. FamilyID and AuthorID are never
// touched.
func (u RecipeUpdate) Apply(r *Recipe) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Ingredients != nil {
		r.Ingredients = u.Ingredients
	}
	if u.Instructions != nil {
		r.Instructions = *u.Instructions
	}
	if u.Story != nil {
		r.Story = u.Story
	}
	if u.Photos != nil {
		r.Photos = u.Photos
	}
	if u.CookingTime != nil {
		r.CookingTime = *u.CookingTime
	}
	if u.Servings != nil {
		r.Servings = *u.Servings
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Difficulty != nil {
		r.Difficulty = *u.Difficulty
	}
}

// RecipeFilter selects recipes for listing.
type RecipeFilter struct {
	// FamilyID limits results to legacy recipes plus this family's recipes.
	// Nil limits results to legacy recipes only.
	FamilyID *string

	Category string
	AuthorID string
	Limit    int
}

// DefaultCategories are always offered, even before any recipe uses them.
var DefaultCategories = []string{
	"Main Course", "Appetizer", "Dessert", "Soup", "Salad", "Breakfast", "Snack", "Beverage",
}
