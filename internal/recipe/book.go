// Package recipe implements recipes and their comments on top of the
// access predicates and the notification dispatcher.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/access"
	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/metrics"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/notify"
	"github.com/mmynk/familytable/internal/storage"
)

// DefaultFetchLimit caps list results when no limit is configured.
const DefaultFetchLimit = 100

// Book serves recipe and comment operations.
type Book struct {
	store      storage.Store
	notifier   *notify.Dispatcher
	fetchLimit int
}

// NewBook creates a Book. A non-positive fetchLimit uses DefaultFetchLimit.
func NewBook(store storage.Store, notifier *notify.Dispatcher, fetchLimit int) *Book {
	if fetchLimit <= 0 {
		fetchLimit = DefaultFetchLimit
	}
	return &Book{store: store, notifier: notifier, fetchLimit: fetchLimit}
}

func deny(action string) error {
	metrics.AccessDenied.WithLabelValues(action).Inc()
	return fmt.Errorf("%w: not allowed to %s", apperr.ErrForbidden, action)
}

// Create stores a new recipe by requesterID. The recipe is scoped to the
// author's family at this moment; the other members are notified.
func (b *Book) Create(ctx context.Context, requesterID string, draft *models.Recipe) (*models.Recipe, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, apperr.Invalid("recipe title is required")
	}

	recipe := *draft
	recipe.ID = uuid.New().String()
	recipe.Title = title
	recipe.CreatedAt = models.Now()

	var (
		ev    notify.Event
		notes []*models.Notification
	)
	err := b.store.WithTx(ctx, func(st storage.Store) error {
		author, err := st.GetUserByID(ctx, requesterID)
		if err != nil {
			return err
		}
		if !access.CanCreateRecipe(author) {
			return deny("create recipes")
		}
		recipe.FamilyID = author.FamilyID()
		recipe.AuthorID = author.ID
		recipe.AuthorName = author.DisplayName()

		if err := st.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		if recipe.FamilyID == nil {
			return nil
		}

		members, err := st.ListMembers(ctx, *recipe.FamilyID)
		if err != nil {
			return err
		}
		ev = notify.RecipePublished{Author: author, Recipe: &recipe, Members: members}
		notes, err = b.notifier.Record(ctx, st, ev)
		return err
	})
	if err != nil {
		return nil, err
	}

	if ev != nil {
		b.notifier.Announce(ctx, ev, notes)
	}
	slog.Info("Recipe created", "recipe_id", recipe.ID, "author_id", recipe.AuthorID, "notified", len(notes))
	return &recipe, nil
}

// load returns the requester and the recipe, both read fresh.
func load(ctx context.Context, st storage.Store, requesterID, recipeID string) (*models.User, *models.Recipe, error) {
	user, err := st.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, nil, err
	}
	recipe, err := st.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, nil, err
	}
	return user, recipe, nil
}

// Get returns a recipe the requester may read.
func (b *Book) Get(ctx context.Context, requesterID, recipeID string) (*models.Recipe, error) {
	user, recipe, err := load(ctx, b.store, requesterID, recipeID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(recipe, user) {
		return nil, deny("read this recipe")
	}
	return recipe, nil
}

// List returns the recipes the requester may read, newest first. Empty
// category or authorID match everything.
func (b *Book) List(ctx context.Context, requesterID, category, authorID string) ([]*models.Recipe, error) {
	user, err := b.store.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	recipes, err := b.store.ListRecipes(ctx, models.RecipeFilter{
		FamilyID: user.FamilyID(),
		Category: category,
		AuthorID: authorID,
		Limit:    b.fetchLimit,
	})
	if err != nil {
		return nil, err
	}

	readable := recipes[:0]
	for _, r := range recipes {
		if access.CanRead(r, user) {
			readable = append(readable, r)
		}
	}
	return readable, nil
}

// Update applies a partial edit. Only the author may edit, and only while
// still in the recipe's family.
func (b *Book) Update(ctx context.Context, requesterID, recipeID string, upd models.RecipeUpdate) (*models.Recipe, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, apperr.Invalid("recipe title must not be empty")
		}
		upd.Title = &title
	}

	var recipe *models.Recipe
	err := b.store.WithTx(ctx, func(st storage.Store) error {
		user, r, err := load(ctx, st, requesterID, recipeID)
		if err != nil {
			return err
		}
		if !access.CanModify(r, user) {
			return deny("edit this recipe")
		}
		upd.Apply(r)
		if err := st.UpdateRecipe(ctx, r); err != nil {
			return err
		}
		recipe = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Recipe updated", "recipe_id", recipeID, "user_id", requesterID)
	return recipe, nil
}

// Delete removes a recipe and its comments.
func (b *Book) Delete(ctx context.Context, requesterID, recipeID string) error {
	err := b.store.WithTx(ctx, func(st storage.Store) error {
		user, r, err := load(ctx, st, requesterID, recipeID)
		if err != nil {
			return err
		}
		if !access.CanDelete(r, user) {
			return deny("delete this recipe")
		}
		return st.DeleteRecipe(ctx, r.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Recipe deleted", "recipe_id", recipeID, "user_id", requesterID)
	return nil
}

// Categories returns the built-in categories plus every category in use,
// sorted and without duplicates.
func (b *Book) Categories(ctx context.Context) ([]string, error) {
	stored, err := b.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(models.DefaultCategories)+len(stored))
	var out []string
	for _, c := range append(append([]string{}, models.DefaultCategories...), stored...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Comment adds a comment to an existing recipe and notifies its author when
// they are still in the recipe's family.
func (b *Book) Comment(ctx context.Context, requesterID, recipeID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Invalid("comment text is required")
	}

	var (
		comment *models.Comment
		ev      notify.Event
		notes   []*models.Notification
	)
	err := b.store.WithTx(ctx, func(st storage.Store) error {
		commenter, r, err := load(ctx, st, requesterID, recipeID)
		if err != nil {
			return err
		}
		if !access.CanComment(r, commenter) {
			return deny("comment on this recipe")
		}

		c := &models.Comment{
			ID:         uuid.New().String(),
			RecipeID:   r.ID,
			AuthorID:   commenter.ID,
			AuthorName: commenter.DisplayName(),
			Text:       text,
			CreatedAt:  models.Now(),
		}
		if err := st.CreateComment(ctx, c); err != nil {
			return err
		}

		author, err := st.GetUserByID(ctx, r.AuthorID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		ev = notify.CommentPosted{Commenter: commenter, Recipe: r, RecipeAuthor: author}
		notes, err = b.notifier.Record(ctx, st, ev)
		if err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.notifier.Announce(ctx, ev, notes)
	slog.Info("Comment created", "comment_id", comment.ID, "recipe_id", recipeID, "user_id", requesterID)
	return comment, nil
}

// Comments lists a recipe's comments, newest first.
func (b *Book) Comments(ctx context.Context, requesterID, recipeID string) ([]*models.Comment, error) {
	user, r, err := load(ctx, b.store, requesterID, recipeID)
	if err != nil {
		return nil, err
	}
	if !access.CanListComments(r, user) {
		return nil, deny("list comments")
	}
	return b.store.ListComments(ctx, r.ID, b.fetchLimit)
}

// DeleteComment removes a comment. Only its author may.
func (b *Book) DeleteComment(ctx context.Context, requesterID, commentID string) error {
	err := b.store.WithTx(ctx, func(st storage.Store) error {
		user, err := st.GetUserByID(ctx, requesterID)
		if err != nil {
			return err
		}
		c, err := st.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if !access.CanDeleteComment(c, user) {
			return deny("delete this comment")
		}
		return st.DeleteComment(ctx, c.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Comment deleted", "comment_id", commentID, "user_id", requesterID)
	return nil
}
