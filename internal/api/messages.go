package api

// User is an account as returned to clients. FamilyID and Role are both
// set or both empty.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Nickname  *string `json:"nickname,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	FamilyID  *string `json:"family_id,omitempty"`
	Role      string  `json:"role,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Family is a family as seen by its members.
type Family struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	OwnerID    string            `json:"owner_id"`
	InviteCode string            `json:"invite_code"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

// Recipe is a stored recipe. FamilyID is empty for legacy recipes.
type Recipe struct {
	ID           string   `json:"id"`
	FamilyID     *string  `json:"family_id,omitempty"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Story        *string  `json:"story,omitempty"`
	Photos       []string `json:"photos"`
	CookingTime  int      `json:"cooking_time"`
	Servings     int      `json:"servings"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	AuthorID     string   `json:"author_id"`
	AuthorName   string   `json:"author_name"`
	CreatedAt    string   `json:"created_at"`
}

// Comment is a comment on a recipe.
type Comment struct {
	ID        string `json:"id"`
	RecipeID  string `json:"recipe_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Notification is one entry of a user's inbox.
type Notification struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Type         string  `json:"type"`
	Message      string  `json:"message"`
	RecipeID     *string `json:"recipe_id,omitempty"`
	FromUserName string  `json:"from_user_name"`
	IsRead       bool    `json:"is_read"`
	CreatedAt    string  `json:"created_at"`
}

// Empty is the response of operations that return nothing.
type Empty struct{}

// Auth

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Nickname *string `json:"nickname,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token and the signed-in user.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type MeRequest struct{}

// UpdateProfileRequest edits the caller's profile. A nil field is left
// unchanged; an empty string clears it.
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type UserResponse struct {
	User *User `json:"user"`
}

// Families

type CreateFamilyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code"`
}

type GetFamilyRequest struct {
	FamilyID string `json:"family_id"`
}

// UpdateFamilyRequest renames the family when Name is set and merges
// Metadata into the stored metadata.
type UpdateFamilyRequest struct {
	FamilyID string            `json:"family_id"`
	Name     *string           `json:"name,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type FamilyResponse struct {
	Family *Family `json:"family"`
}

type ListMembersRequest struct {
	FamilyID string `json:"family_id"`
}

type ListMembersResponse struct {
	Members []*User `json:"members"`
}

type DeleteFamilyRequest struct {
	FamilyID string `json:"family_id"`
}

type LeaveFamilyRequest struct {
	FamilyID string `json:"family_id"`
}

type RemoveMemberRequest struct {
	FamilyID string `json:"family_id"`
	UserID   string `json:"user_id"`
}

type TransferKeeperRequest struct {
	FamilyID    string `json:"family_id"`
	NewKeeperID string `json:"new_keeper_id"`
}

type TransferKeeperResponse struct {
	NewKeeper *User `json:"new_keeper"`
}

// Recipes

type CreateRecipeRequest struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Story        *string  `json:"story,omitempty"`
	Photos       []string `json:"photos,omitempty"`
	CookingTime  int      `json:"cooking_time"`
	Servings     int      `json:"servings"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
}

type GetRecipeRequest struct {
	RecipeID string `json:"recipe_id"`
}

type RecipeResponse struct {
	Recipe *Recipe `json:"recipe"`
}

// ListRecipesRequest filters by category and author; empty fields match
// everything.
type ListRecipesRequest struct {
	Category string `json:"category,omitempty"`
	AuthorID string `json:"author_id,omitempty"`
}

type ListRecipesResponse struct {
	Recipes []*Recipe `json:"recipes"`
}

// UpdateRecipeRequest is a partial edit; omitted fields stay unchanged.
type UpdateRecipeRequest struct {
	RecipeID     string   `json:"recipe_id"`
	Title        *string  `json:"title,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	Story        *string  `json:"story,omitempty"`
	Photos       []string `json:"photos,omitempty"`
	CookingTime  *int     `json:"cooking_time,omitempty"`
	Servings     *int     `json:"servings,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Difficulty   *string  `json:"difficulty,omitempty"`
}

type DeleteRecipeRequest struct {
	RecipeID string `json:"recipe_id"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Comments

type CreateCommentRequest struct {
	RecipeID string `json:"recipe_id"`
	Text     string `json:"text"`
}

type CommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ListCommentsRequest struct {
	RecipeID string `json:"recipe_id"`
}

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
}

type DeleteCommentRequest struct {
	CommentID string `json:"comment_id"`
}

// Notifications

type ListNotificationsRequest struct{}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type UnreadCountRequest struct{}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkReadRequest struct {
	NotificationID string `json:"notification_id"`
}

type MarkAllReadRequest struct{}
