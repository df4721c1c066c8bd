package recipe

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/family"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/notify"
	"github.com/mmynk/familytable/internal/storage/sqlite"
)

type fixture struct {
	book  *Book
	dir   *family.Directory
	store *sqlite.SQLiteStore
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	notifier := notify.NewDispatcher(nil)
	return &fixture{
		book:  NewBook(store, notifier, 0),
		dir:   family.NewDirectory(store, notifier),
		store: store,
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := models.NewUser(name+"@example.com", name, "hash")
	if err := f.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return u
}

// family creates a family kept by keeper and joined by members.
func (f *fixture) family(t *testing.T, name string, keeper *models.User, members ...*models.User) *models.Family {
	t.Helper()
	ctx := context.Background()
	fam, err := f.dir.Create(ctx, keeper.ID, name, "")
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", name, err)
	}
	for _, m := range members {
		if _, err := f.dir.Join(ctx, m.ID, fam.InviteCode); err != nil {
			t.Fatalf("Join(%s) failed: %v", m.Name, err)
		}
	}
	return fam
}

func (f *fixture) publish(t *testing.T, author *models.User, title string) *models.Recipe {
	t.Helper()
	r, err := f.book.Create(context.Background(), author.ID, &models.Recipe{
		Title:        title,
		Ingredients:  []string{"water", "salt"},
		Instructions: "Boil.",
		CookingTime:  30,
		Servings:     4,
		Category:     "Soup",
		Difficulty:   "easy",
	})
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", title, err)
	}
	return r
}

func (f *fixture) inbox(t *testing.T, userID string, typ models.NotificationType) []*models.Notification {
	t.Helper()
	all, err := f.store.ListNotifications(context.Background(), userID, 50)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	var out []*models.Notification
	for _, n := range all {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestCreate_LegacyRecipeIsOpen(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	loner := f.user(t, "loner")

	legacy := f.publish(t, alice, "Bread")
	if legacy.FamilyID != nil {
		t.Fatalf("recipe by an ungrouped author must be legacy, got family %s", *legacy.FamilyID)
	}

	// The author and a reader later join families; the recipe stays legacy.
	f.family(t, "Smiths", alice)
	f.family(t, "Joneses", bob)

	for _, u := range []*models.User{alice, bob, loner} {
		got, err := f.book.Get(ctx, u.ID, legacy.ID)
		if err != nil {
			t.Errorf("%s should read the legacy recipe: %v", u.Name, err)
			continue
		}
		if got.FamilyID != nil {
			t.Errorf("legacy recipe gained a family: %s", *got.FamilyID)
		}
	}
}

func TestCreate_FamilyRecipeIsScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	outsider := f.user(t, "dave")
	loner := f.user(t, "loner")

	smiths := f.family(t, "Smiths", alice, bob)
	f.family(t, "Joneses", outsider)

	soup := f.publish(t, alice, "Soup")
	if soup.FamilyID == nil || *soup.FamilyID != smiths.ID {
		t.Fatalf("recipe should be scoped to Smiths, got %v", soup.FamilyID)
	}
	if soup.AuthorName != "alice" {
		t.Errorf("author name: expected alice, got %s", soup.AuthorName)
	}

	if _, err := f.book.Get(ctx, bob.ID, soup.ID); err != nil {
		t.Errorf("family member should read: %v", err)
	}
	_, err := f.book.Get(ctx, outsider.ID, soup.ID)
	expectErr(t, err, apperr.ErrForbidden)
	_, err = f.book.Get(ctx, loner.ID, soup.ID)
	expectErr(t, err, apperr.ErrForbidden)

	_, err = f.book.Get(ctx, bob.ID, "missing")
	expectErr(t, err, apperr.ErrNotFound)

	t.Run("family never changes after the author leaves", func(t *testing.T) {
		if err := f.dir.Leave(ctx, bob.ID, smiths.ID); err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		bobs := f.publish(t, bob, "Chili")
		if bobs.FamilyID != nil {
			t.Fatalf("bob is ungrouped now; recipe should be legacy")
		}

		stored, err := f.store.GetRecipe(ctx, soup.ID)
		if err != nil {
			t.Fatalf("GetRecipe failed: %v", err)
		}
		if stored.FamilyID == nil || *stored.FamilyID != smiths.ID {
			t.Errorf("family id changed: %v", stored.FamilyID)
		}
		_, err = f.book.Get(ctx, bob.ID, soup.ID)
		expectErr(t, err, apperr.ErrForbidden)
	})
}

func TestCreate_NotifiesOtherMembers(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	nick := "Grandma"
	if err := f.store.UpdateUserProfile(context.Background(), alice.ID, &nick, nil); err != nil {
		t.Fatalf("UpdateUserProfile failed: %v", err)
	}
	others := []*models.User{f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dan")}
	f.family(t, "Smiths", alice, others...)
	stranger := f.user(t, "eve")
	f.family(t, "Joneses", stranger)

	soup := f.publish(t, alice, "Soup")
	if soup.AuthorName != "Grandma" {
		t.Errorf("author name should use the nickname, got %s", soup.AuthorName)
	}

	for _, u := range others {
		notes := f.inbox(t, u.ID, models.NotificationNewRecipe)
		if len(notes) != 1 {
			t.Fatalf("%s: expected 1 new_recipe notification, got %d", u.Name, len(notes))
		}
		n := notes[0]
		if n.Message != "Grandma shared a new recipe: Soup" {
			t.Errorf("unexpected message %q", n.Message)
		}
		if n.RecipeID == nil || *n.RecipeID != soup.ID {
			t.Errorf("notification should link the recipe, got %v", n.RecipeID)
		}
	}
	if n := f.inbox(t, alice.ID, models.NotificationNewRecipe); len(n) != 0 {
		t.Errorf("author must not be notified, got %d", len(n))
	}
	if n := f.inbox(t, stranger.ID, models.NotificationNewRecipe); len(n) != 0 {
		t.Errorf("other family must not be notified, got %d", len(n))
	}
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")

	_, err := f.book.Create(context.Background(), alice.ID, &models.Recipe{Title: "  "})
	expectErr(t, err, apperr.ErrInvalidArgument)

	_, err = f.book.Create(context.Background(), "ghost", &models.Recipe{Title: "Soup"})
	expectErr(t, err, apperr.ErrNotFound)
}

func TestList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	dave := f.user(t, "dave")

	legacy := f.publish(t, alice, "Bread")
	f.family(t, "Smiths", alice, bob)
	f.family(t, "Joneses", dave)
	soup := f.publish(t, alice, "Soup")
	stew := f.publish(t, bob, "Stew")
	jones := f.publish(t, dave, "Pie")

	ids := func(recipes []*models.Recipe) []string {
		out := make([]string, len(recipes))
		for i, r := range recipes {
			out[i] = r.ID
		}
		return out
	}
	equal := func(got, want []string) bool {
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}

	tests := []struct {
		name     string
		user     *models.User
		category string
		author   string
		want     []string
	}{
		{"member sees family and legacy newest first", bob, "", "", []string{stew.ID, soup.ID, legacy.ID}},
		{"other family", dave, "", "", []string{jones.ID, legacy.ID}},
		{"author filter", bob, "", alice.ID, []string{soup.ID, legacy.ID}},
		{"category filter", bob, "Dessert", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.book.List(ctx, tt.user.ID, tt.category, tt.author)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if !equal(ids(got), tt.want) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}
		})
	}

	t.Run("fetch limit", func(t *testing.T) {
		limited := NewBook(f.store, notify.NewDispatcher(nil), 2)
		got, err := limited.List(ctx, bob.ID, "", "")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !equal(ids(got), []string{stew.ID, soup.ID}) {
			t.Errorf("got %v", ids(got))
		}
	})
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	smiths := f.family(t, "Smiths", alice, bob)
	soup := f.publish(t, bob, "Soup")

	title := "Tomato Soup"
	servings := 6
	updated, err := f.book.Update(ctx, bob.ID, soup.ID, models.RecipeUpdate{Title: &title, Servings: &servings})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != title || updated.Servings != 6 || updated.Instructions != "Boil." {
		t.Errorf("partial update wrong: %+v", updated)
	}
	if updated.FamilyID == nil || *updated.FamilyID != smiths.ID {
		t.Errorf("family must not change: %v", updated.FamilyID)
	}

	// The keeper is not the author.
	_, err = f.book.Update(ctx, alice.ID, soup.ID, models.RecipeUpdate{Title: &title})
	expectErr(t, err, apperr.ErrForbidden)

	empty := " "
	_, err = f.book.Update(ctx, bob.ID, soup.ID, models.RecipeUpdate{Title: &empty})
	expectErr(t, err, apperr.ErrInvalidArgument)

	// The author outside the recipe's family may not edit it.
	if err := f.dir.RemoveMember(ctx, alice.ID, smiths.ID, bob.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	_, err = f.book.Update(ctx, bob.ID, soup.ID, models.RecipeUpdate{Title: &title})
	expectErr(t, err, apperr.ErrForbidden)

	// Back in the same family, editing works again.
	if _, err := f.dir.Join(ctx, bob.ID, smiths.InviteCode); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if _, err := f.book.Update(ctx, bob.ID, soup.ID, models.RecipeUpdate{Title: &title}); err != nil {
		t.Errorf("author back in family should edit: %v", err)
	}
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	dave := f.user(t, "dave")

	legacy := f.publish(t, bob, "Bread")
	f.family(t, "Smiths", alice, bob, carol)
	f.family(t, "Joneses", dave)
	soup := f.publish(t, bob, "Soup")
	stew := f.publish(t, bob, "Stew")

	comment, err := f.book.Comment(ctx, carol.ID, soup.ID, "Yum")
	if err != nil {
		t.Fatalf("Comment failed: %v", err)
	}

	tests := []struct {
		name   string
		user   *models.User
		recipe *models.Recipe
		want   error
	}{
		{"plain member not author", carol, soup, apperr.ErrForbidden},
		{"other family", dave, soup, apperr.ErrForbidden},
		{"keeper on legacy recipe", alice, legacy, apperr.ErrForbidden},
		{"keeper on family recipe", alice, soup, nil},
		{"author on family recipe", bob, stew, nil},
		{"author on legacy recipe", bob, legacy, nil},
		{"already gone", bob, legacy, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.book.Delete(ctx, tt.user.ID, tt.recipe.ID)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Delete failed: %v", err)
				}
				return
			}
			expectErr(t, err, tt.want)
		})
	}

	if _, err := f.store.GetComment(ctx, comment.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("comments should go with their recipe, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	if _, err := f.book.Create(context.Background(), alice.ID, &models.Recipe{Title: "Pickles", Category: "Preserves"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.publish(t, alice, "Soup")

	got, err := f.book.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("categories not sorted: %v", got)
	}
	if len(got) != len(models.DefaultCategories)+1 {
		t.Errorf("expected defaults plus Preserves without duplicates, got %v", got)
	}
	found := false
	for _, c := range got {
		if c == "Preserves" {
			found = true
		}
	}
	if !found {
		t.Errorf("stored category missing: %v", got)
	}
}

func TestComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	dave := f.user(t, "dave")
	smiths := f.family(t, "Smiths", alice, bob)
	f.family(t, "Joneses", dave)
	soup := f.publish(t, alice, "Soup")

	t.Run("member comment notifies the author", func(t *testing.T) {
		c, err := f.book.Comment(ctx, bob.ID, soup.ID, "  Delicious  ")
		if err != nil {
			t.Fatalf("Comment failed: %v", err)
		}
		if c.Text != "Delicious" || c.AuthorName != "bob" {
			t.Errorf("unexpected comment: %+v", c)
		}
		notes := f.inbox(t, alice.ID, models.NotificationComment)
		if len(notes) != 1 || notes[0].Message != "bob commented on your recipe: Soup" {
			t.Fatalf("unexpected notifications: %+v", notes)
		}
	})

	t.Run("own comment notifies nobody", func(t *testing.T) {
		if _, err := f.book.Comment(ctx, alice.ID, soup.ID, "Thanks!"); err != nil {
			t.Fatalf("Comment failed: %v", err)
		}
		if n := f.inbox(t, alice.ID, models.NotificationComment); len(n) != 1 {
			t.Errorf("expected still 1 comment notification, got %d", len(n))
		}
	})

	// Comments are not family-scoped: an outsider may comment and list.
	t.Run("outsider may comment and list", func(t *testing.T) {
		if _, err := f.book.Comment(ctx, dave.ID, soup.ID, "Looks good"); err != nil {
			t.Fatalf("outsider Comment failed: %v", err)
		}
		list, err := f.book.Comments(ctx, dave.ID, soup.ID)
		if err != nil {
			t.Fatalf("outsider Comments failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 comments, got %d", len(list))
		}
		if list[0].Text != "Looks good" || list[2].Text != "Delicious" {
			t.Errorf("comments should be newest first: %q ... %q", list[0].Text, list[2].Text)
		}
	})

	t.Run("author outside the family is not notified", func(t *testing.T) {
		bobs := f.publish(t, bob, "Stew")
		if err := f.dir.Leave(ctx, bob.ID, smiths.ID); err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if _, err := f.book.Comment(ctx, alice.ID, bobs.ID, "Miss you"); err != nil {
			t.Fatalf("Comment failed: %v", err)
		}
		if n := f.inbox(t, bob.ID, models.NotificationComment); len(n) != 0 {
			t.Errorf("bob left the family and must not be notified, got %d", len(n))
		}
	})

	t.Run("errors", func(t *testing.T) {
		_, err := f.book.Comment(ctx, bob.ID, "missing", "hi")
		expectErr(t, err, apperr.ErrNotFound)
		_, err = f.book.Comment(ctx, bob.ID, soup.ID, "   ")
		expectErr(t, err, apperr.ErrInvalidArgument)
		_, err = f.book.Comments(ctx, bob.ID, "missing")
		expectErr(t, err, apperr.ErrNotFound)
	})

	t.Run("only the comment author deletes", func(t *testing.T) {
		list, err := f.book.Comments(ctx, alice.ID, soup.ID)
		if err != nil {
			t.Fatalf("Comments failed: %v", err)
		}
		daves := list[0]
		// Not even the recipe author or the keeper.
		expectErr(t, f.book.DeleteComment(ctx, alice.ID, daves.ID), apperr.ErrForbidden)
		if err := f.book.DeleteComment(ctx, dave.ID, daves.ID); err != nil {
			t.Fatalf("DeleteComment failed: %v", err)
		}
		expectErr(t, f.book.DeleteComment(ctx, dave.ID, daves.ID), apperr.ErrNotFound)
	})
}

// TestFamilyScenario walks the Smiths through publishing, commenting,
// handing over the keeper role and splitting up.
func TestFamilyScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	b := f.user(t, "bob")

	smiths, err := f.dir.Create(ctx, a.ID, "Smiths", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !family.ValidInviteCode(smiths.InviteCode) {
		t.Fatalf("bad invite code %q", smiths.InviteCode)
	}
	if _, err := f.dir.Join(ctx, b.ID, smiths.InviteCode); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	soup := f.publish(t, a, "Soup")
	if n := f.inbox(t, b.ID, models.NotificationNewRecipe); len(n) != 1 {
		t.Fatalf("B should have 1 new_recipe notification, got %d", len(n))
	}

	if _, err := f.book.Comment(ctx, b.ID, soup.ID, "Lovely"); err != nil {
		t.Fatalf("Comment failed: %v", err)
	}
	if n := f.inbox(t, a.ID, models.NotificationComment); len(n) != 1 {
		t.Fatalf("A should have 1 comment notification, got %d", len(n))
	}

	if _, err := f.dir.TransferKeeper(ctx, a.ID, smiths.ID, b.ID); err != nil {
		t.Fatalf("TransferKeeper failed: %v", err)
	}
	newKeeper, _ := f.store.GetUserByID(ctx, b.ID)
	oldKeeper, _ := f.store.GetUserByID(ctx, a.ID)
	if !newKeeper.IsKeeperOf(smiths.ID) || oldKeeper.IsKeeperOf(smiths.ID) || !oldKeeper.InFamily(smiths.ID) {
		t.Fatalf("roles not swapped: A=%+v B=%+v", oldKeeper.Membership, newKeeper.Membership)
	}
	transfer := f.inbox(t, b.ID, models.NotificationFamilyInvite)
	if len(transfer) != 1 || transfer[0].Message != "You are now the keeper of Smiths" {
		t.Fatalf("B should get the transfer notification, got %+v", transfer)
	}

	expectErr(t, f.dir.Leave(ctx, b.ID, smiths.ID), apperr.ErrKeeperBlocked)

	if err := f.dir.RemoveMember(ctx, b.ID, smiths.ID, a.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	removedA, _ := f.store.GetUserByID(ctx, a.ID)
	if removedA.Membership != nil {
		t.Fatalf("A should have no family, got %+v", removedA.Membership)
	}
	removal := f.inbox(t, a.ID, models.NotificationFamilyInvite)
	if len(removal) == 0 || removal[0].Message != "You have been removed from Smiths by bob" {
		t.Fatalf("A should get the removal notification, got %+v", removal)
	}

	if err := f.dir.Leave(ctx, b.ID, smiths.ID); err != nil {
		t.Fatalf("sole keeper Leave failed: %v", err)
	}
	leftB, _ := f.store.GetUserByID(ctx, b.ID)
	if leftB.Membership != nil {
		t.Fatalf("B should have no family, got %+v", leftB.Membership)
	}
}
