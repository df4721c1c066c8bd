package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/recipe"
)

// RecipeService implements the Connect RecipeService.
type RecipeService struct {
	book *recipe.Book
}

var _ api.RecipeServiceHandler = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService backed by book.
func NewRecipeService(book *recipe.Book) *RecipeService {
	return &RecipeService{book: book}
}

// CreateRecipe publishes a recipe in the caller's family, if any.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *connect.Request[api.CreateRecipeRequest]) (*connect.Response[api.RecipeResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateRecipe request received",
		"user_id", userID,
		"title", req.Msg.Title,
		"ingredients_count", len(req.Msg.Ingredients),
	)

	r, err := s.book.Create(ctx, userID, &models.Recipe{
		Title:        req.Msg.Title,
		Ingredients:  req.Msg.Ingredients,
		Instructions: req.Msg.Instructions,
		Story:        req.Msg.Story,
		Photos:       req.Msg.Photos,
		CookingTime:  req.Msg.CookingTime,
		Servings:     req.Msg.Servings,
		Category:     req.Msg.Category,
		Difficulty:   req.Msg.Difficulty,
	})
	if err != nil {
		return nil, fail("CreateRecipe", err, "user_id", userID)
	}
	return connect.NewResponse(&api.RecipeResponse{Recipe: toRecipe(r)}), nil
}

// GetRecipe returns a recipe the caller may read.
func (s *RecipeService) GetRecipe(ctx context.Context, req *connect.Request[api.GetRecipeRequest]) (*connect.Response[api.RecipeResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetRecipe request received", "user_id", userID, "recipe_id", req.Msg.RecipeID)

	r, err := s.book.Get(ctx, userID, req.Msg.RecipeID)
	if err != nil {
		return nil, fail("GetRecipe", err, "user_id", userID, "recipe_id", req.Msg.RecipeID)
	}
	return connect.NewResponse(&api.RecipeResponse{Recipe: toRecipe(r)}), nil
}

// ListRecipes lists the recipes the caller may read, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, req *connect.Request[api.ListRecipesRequest]) (*connect.Response[api.ListRecipesResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListRecipes request received",
		"user_id", userID,
		"category", req.Msg.Category,
		"author_id", req.Msg.AuthorID,
	)

	recipes, err := s.book.List(ctx, userID, req.Msg.Category, req.Msg.AuthorID)
	if err != nil {
		return nil, fail("ListRecipes", err, "user_id", userID)
	}

	out := make([]*api.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = toRecipe(r)
	}
	slog.Info("ListRecipes successful", "count", len(out))
	return connect.NewResponse(&api.ListRecipesResponse{Recipes: out}), nil
}

// UpdateRecipe applies a partial edit. Author only.
func (s *RecipeService) UpdateRecipe(ctx context.Context, req *connect.Request[api.UpdateRecipeRequest]) (*connect.Response[api.RecipeResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateRecipe request received", "user_id", userID, "recipe_id", req.Msg.RecipeID)

	r, err := s.book.Update(ctx, userID, req.Msg.RecipeID, models.RecipeUpdate{
		Title:        req.Msg.Title,
		Ingredients:  req.Msg.Ingredients,
		Instructions: req.Msg.Instructions,
		Story:        req.Msg.Story,
		Photos:       req.Msg.Photos,
		CookingTime:  req.Msg.CookingTime,
		Servings:     req.Msg.Servings,
		Category:     req.Msg.Category,
		Difficulty:   req.Msg.Difficulty,
	})
	if err != nil {
		return nil, fail("UpdateRecipe", err, "user_id", userID, "recipe_id", req.Msg.RecipeID)
	}
	return connect.NewResponse(&api.RecipeResponse{Recipe: toRecipe(r)}), nil
}

// DeleteRecipe removes a recipe and its comments.
func (s *RecipeService) DeleteRecipe(ctx context.Context, req *connect.Request[api.DeleteRecipeRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteRecipe request received", "user_id", userID, "recipe_id", req.Msg.RecipeID)

	if err := s.book.Delete(ctx, userID, req.Msg.RecipeID); err != nil {
		return nil, fail("DeleteRecipe", err, "user_id", userID, "recipe_id", req.Msg.RecipeID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListCategories returns the known recipe categories.
func (s *RecipeService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.book.Categories(ctx)
	if err != nil {
		return nil, fail("ListCategories", err)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: categories}), nil
}

// CreateComment comments on a recipe.
func (s *RecipeService) CreateComment(ctx context.Context, req *connect.Request[api.CreateCommentRequest]) (*connect.Response[api.CommentResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateComment request received", "user_id", userID, "recipe_id", req.Msg.RecipeID)

	c, err := s.book.Comment(ctx, userID, req.Msg.RecipeID, req.Msg.Text)
	if err != nil {
		return nil, fail("CreateComment", err, "user_id", userID, "recipe_id", req.Msg.RecipeID)
	}
	return connect.NewResponse(&api.CommentResponse{Comment: toComment(c)}), nil
}

// ListComments lists a recipe's comments, newest first.
func (s *RecipeService) ListComments(ctx context.Context, req *connect.Request[api.ListCommentsRequest]) (*connect.Response[api.ListCommentsResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := s.book.Comments(ctx, userID, req.Msg.RecipeID)
	if err != nil {
		return nil, fail("ListComments", err, "user_id", userID, "recipe_id", req.Msg.RecipeID)
	}

	out := make([]*api.Comment, len(comments))
	for i, c := range comments {
		out[i] = toComment(c)
	}
	return connect.NewResponse(&api.ListCommentsResponse{Comments: out}), nil
}

// DeleteComment removes one of the caller's comments.
func (s *RecipeService) DeleteComment(ctx context.Context, req *connect.Request[api.DeleteCommentRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteComment request received", "user_id", userID, "comment_id", req.Msg.CommentID)

	if err := s.book.DeleteComment(ctx, userID, req.Msg.CommentID); err != nil {
		return nil, fail("DeleteComment", err, "user_id", userID, "comment_id", req.Msg.CommentID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
