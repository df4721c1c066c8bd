package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// RecipeServiceName is the fully-qualified name of the RecipeService.
const RecipeServiceName = "familytable.v1.RecipeService"

// Procedure paths of the RecipeService.
const (
	RecipeServiceCreateRecipeProcedure   = "/" + RecipeServiceName + "/CreateRecipe"
	RecipeServiceGetRecipeProcedure      = "/" + RecipeServiceName + "/GetRecipe"
	RecipeServiceListRecipesProcedure    = "/" + RecipeServiceName + "/ListRecipes"
	RecipeServiceUpdateRecipeProcedure   = "/" + RecipeServiceName + "/UpdateRecipe"
	RecipeServiceDeleteRecipeProcedure   = "/" + RecipeServiceName + "/DeleteRecipe"
	RecipeServiceListCategoriesProcedure = "/" + RecipeServiceName + "/ListCategories"
	RecipeServiceCreateCommentProcedure  = "/" + RecipeServiceName + "/CreateComment"
	RecipeServiceListCommentsProcedure   = "/" + RecipeServiceName + "/ListComments"
	RecipeServiceDeleteCommentProcedure  = "/" + RecipeServiceName + "/DeleteComment"
)

// RecipeServiceHandler is the server side of the RecipeService, which serves recipes, categories and comments.
type RecipeServiceHandler interface {
	CreateRecipe(context.Context, *connect.Request[CreateRecipeRequest]) (*connect.Response[RecipeResponse], error)
	GetRecipe(context.Context, *connect.Request[GetRecipeRequest]) (*connect.Response[RecipeResponse], error)
	ListRecipes(context.Context, *connect.Request[ListRecipesRequest]) (*connect.Response[ListRecipesResponse], error)
	UpdateRecipe(context.Context, *connect.Request[UpdateRecipeRequest]) (*connect.Response[RecipeResponse], error)
	DeleteRecipe(context.Context, *connect.Request[DeleteRecipeRequest]) (*connect.Response[Empty], error)
	ListCategories(context.Context, *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error)
	CreateComment(context.Context, *connect.Request[CreateCommentRequest]) (*connect.Response[CommentResponse], error)
	ListComments(context.Context, *connect.Request[ListCommentsRequest]) (*connect.Response[ListCommentsResponse], error)
	DeleteComment(context.Context, *connect.Request[DeleteCommentRequest]) (*connect.Response[Empty], error)
}

// NewRecipeServiceHandler builds an HTTP handler for every procedure of svc.
// It returns the path prefix to mount the handler on.
func NewRecipeServiceHandler(svc RecipeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(RecipeServiceCreateRecipeProcedure, connect.NewUnaryHandler(RecipeServiceCreateRecipeProcedure, svc.CreateRecipe, opts...))
	mux.Handle(RecipeServiceGetRecipeProcedure, connect.NewUnaryHandler(RecipeServiceGetRecipeProcedure, svc.GetRecipe, opts...))
	mux.Handle(RecipeServiceListRecipesProcedure, connect.NewUnaryHandler(RecipeServiceListRecipesProcedure, svc.ListRecipes, opts...))
	mux.Handle(RecipeServiceUpdateRecipeProcedure, connect.NewUnaryHandler(RecipeServiceUpdateRecipeProcedure, svc.UpdateRecipe, opts...))
	mux.Handle(RecipeServiceDeleteRecipeProcedure, connect.NewUnaryHandler(RecipeServiceDeleteRecipeProcedure, svc.DeleteRecipe, opts...))
	mux.Handle(RecipeServiceListCategoriesProcedure, connect.NewUnaryHandler(RecipeServiceListCategoriesProcedure, svc.ListCategories, opts...))
	mux.Handle(RecipeServiceCreateCommentProcedure, connect.NewUnaryHandler(RecipeServiceCreateCommentProcedure, svc.CreateComment, opts...))
	mux.Handle(RecipeServiceListCommentsProcedure, connect.NewUnaryHandler(RecipeServiceListCommentsProcedure, svc.ListComments, opts...))
	mux.Handle(RecipeServiceDeleteCommentProcedure, connect.NewUnaryHandler(RecipeServiceDeleteCommentProcedure, svc.DeleteComment, opts...))
	return "/" + RecipeServiceName + "/", mux
}

// RecipeServiceClient is a client for the RecipeService.
type RecipeServiceClient interface {
	CreateRecipe(context.Context, *connect.Request[CreateRecipeRequest]) (*connect.Response[RecipeResponse], error)
	GetRecipe(context.Context, *connect.Request[GetRecipeRequest]) (*connect.Response[RecipeResponse], error)
	ListRecipes(context.Context, *connect.Request[ListRecipesRequest]) (*connect.Response[ListRecipesResponse], error)
	UpdateRecipe(context.Context, *connect.Request[UpdateRecipeRequest]) (*connect.Response[RecipeResponse], error)
	DeleteRecipe(context.Context, *connect.Request[DeleteRecipeRequest]) (*connect.Response[Empty], error)
	ListCategories(context.Context, *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error)
	CreateComment(context.Context, *connect.Request[CreateCommentRequest]) (*connect.Response[CommentResponse], error)
	ListComments(context.Context, *connect.Request[ListCommentsRequest]) (*connect.Response[ListCommentsResponse], error)
	DeleteComment(context.Context, *connect.Request[DeleteCommentRequest]) (*connect.Response[Empty], error)
}

// NewRecipeServiceClient constructs a client for the RecipeService. baseURL is the
// server address, e.g. http://localhost:8080.
func NewRecipeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RecipeServiceClient {
	opts = clientOptions(opts)
	return &recipeServiceClient{
		createRecipe:   connect.NewClient[CreateRecipeRequest, RecipeResponse](httpClient, baseURL+RecipeServiceCreateRecipeProcedure, opts...),
		getRecipe:      connect.NewClient[GetRecipeRequest, RecipeResponse](httpClient, baseURL+RecipeServiceGetRecipeProcedure, opts...),
		listRecipes:    connect.NewClient[ListRecipesRequest, ListRecipesResponse](httpClient, baseURL+RecipeServiceListRecipesProcedure, opts...),
		updateRecipe:   connect.NewClient[UpdateRecipeRequest, RecipeResponse](httpClient, baseURL+RecipeServiceUpdateRecipeProcedure, opts...),
		deleteRecipe:   connect.NewClient[DeleteRecipeRequest, Empty](httpClient, baseURL+RecipeServiceDeleteRecipeProcedure, opts...),
		listCategories: connect.NewClient[ListCategoriesRequest, ListCategoriesResponse](httpClient, baseURL+RecipeServiceListCategoriesProcedure, opts...),
		createComment:  connect.NewClient[CreateCommentRequest, CommentResponse](httpClient, baseURL+RecipeServiceCreateCommentProcedure, opts...),
		listComments:   connect.NewClient[ListCommentsRequest, ListCommentsResponse](httpClient, baseURL+RecipeServiceListCommentsProcedure, opts...),
		deleteComment:  connect.NewClient[DeleteCommentRequest, Empty](httpClient, baseURL+RecipeServiceDeleteCommentProcedure, opts...),
	}
}

type recipeServiceClient struct {
	createRecipe   *connect.Client[CreateRecipeRequest, RecipeResponse]
	getRecipe      *connect.Client[GetRecipeRequest, RecipeResponse]
	listRecipes    *connect.Client[ListRecipesRequest, ListRecipesResponse]
	updateRecipe   *connect.Client[UpdateRecipeRequest, RecipeResponse]
	deleteRecipe   *connect.Client[DeleteRecipeRequest, Empty]
	listCategories *connect.Client[ListCategoriesRequest, ListCategoriesResponse]
	createComment  *connect.Client[CreateCommentRequest, CommentResponse]
	listComments   *connect.Client[ListCommentsRequest, ListCommentsResponse]
	deleteComment  *connect.Client[DeleteCommentRequest, Empty]
}

func (c *recipeServiceClient) CreateRecipe(ctx context.Context, req *connect.Request[CreateRecipeRequest]) (*connect.Response[RecipeResponse], error) {
	return c.createRecipe.CallUnary(ctx, req)
}

func (c *recipeServiceClient) GetRecipe(ctx context.Context, req *connect.Request[GetRecipeRequest]) (*connect.Response[RecipeResponse], error) {
	return c.getRecipe.CallUnary(ctx, req)
}

func (c *recipeServiceClient) ListRecipes(ctx context.Context, req *connect.Request[ListRecipesRequest]) (*connect.Response[ListRecipesResponse], error) {
	return c.listRecipes.CallUnary(ctx, req)
}

func (c *recipeServiceClient) UpdateRecipe(ctx context.Context, req *connect.Request[UpdateRecipeRequest]) (*connect.Response[RecipeResponse], error) {
	return c.updateRecipe.CallUnary(ctx, req)
}

func (c *recipeServiceClient) DeleteRecipe(ctx context.Context, req *connect.Request[DeleteRecipeRequest]) (*connect.Response[Empty], error) {
	return c.deleteRecipe.CallUnary(ctx, req)
}

func (c *recipeServiceClient) ListCategories(ctx context.Context, req *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *recipeServiceClient) CreateComment(ctx context.Context, req *connect.Request[CreateCommentRequest]) (*connect.Response[CommentResponse], error) {
	return c.createComment.CallUnary(ctx, req)
}

func (c *recipeServiceClient) ListComments(ctx context.Context, req *connect.Request[ListCommentsRequest]) (*connect.Response[ListCommentsResponse], error) {
	return c.listComments.CallUnary(ctx, req)
}

func (c *recipeServiceClient) DeleteComment(ctx context.Context, req *connect.Request[DeleteCommentRequest]) (*connect.Response[Empty], error) {
	return c.deleteComment.CallUnary(ctx, req)
}
