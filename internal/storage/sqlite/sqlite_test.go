package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "familytable-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()
	user := models.NewUser(name+"@Example.com", name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createFamily(t *testing.T, store *SQLiteStore, owner *models.User, code string) *models.Family {
	t.Helper()
	ctx := context.Background()
	family := &models.Family{
		ID:         "fam-" + code,
		Name:       "Smiths",
		OwnerID:    owner.ID,
		InviteCode: code,
		Metadata:   map[string]string{models.MetaDescription: "Sunday dinners"},
		CreatedAt:  models.Now(),
	}
	if err := store.CreateFamily(ctx, family); err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}
	if err := store.JoinFamily(ctx, owner.ID, family.ID, models.RoleKeeper); err != nil {
		t.Fatalf("JoinFamily failed: %v", err)
	}
	return family
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")

	t.Run("lookup by email is case-insensitive", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "ALICE@example.COM")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID || got.Membership != nil {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other", "hash")
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("profile update", func(t *testing.T) {
		nick, avatar := "Al", "data:image/png;base64,AA"
		if err := store.UpdateUserProfile(ctx, alice.ID, &nick, &avatar); err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}
		got, _ := store.GetUserByID(ctx, alice.ID)
		if got.DisplayName() != "Al" || got.Avatar == nil || *got.Avatar != avatar {
			t.Errorf("profile not stored: %+v", got)
		}
		if err := store.UpdateUserProfile(ctx, alice.ID, nil, nil); err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}
		got, _ = store.GetUserByID(ctx, alice.ID)
		if got.Nickname != nil || got.Avatar != nil {
			t.Errorf("profile not cleared: %+v", got)
		}
	})
}

func TestMembershipCompareAndSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	family := createFamily(t, store, alice, "ABCD1234")

	t.Run("join requires no family", func(t *testing.T) {
		if err := store.JoinFamily(ctx, bob.ID, family.ID, models.RoleMember); err != nil {
			t.Fatalf("JoinFamily failed: %v", err)
		}
		err := store.JoinFamily(ctx, bob.ID, family.ID, models.RoleMember)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("expected ErrConflict on second join, got %v", err)
		}
	})

	t.Run("join of a missing family conflicts", func(t *testing.T) {
		carol := createUser(t, store, "carol")
		err := store.JoinFamily(ctx, carol.ID, "gone", models.RoleMember)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("role and clear require the family", func(t *testing.T) {
		if err := store.SetRole(ctx, bob.ID, "other", models.RoleKeeper); !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("SetRole: expected ErrConflict, got %v", err)
		}
		if err := store.ClearMembership(ctx, bob.ID, "other"); !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("ClearMembership: expected ErrConflict, got %v", err)
		}
		got, _ := store.GetUserByID(ctx, bob.ID)
		if !got.InFamily(family.ID) || got.Membership.Role != models.RoleMember {
			t.Errorf("failed writes must not change membership: %+v", got.Membership)
		}
	})

	t.Run("owner moves only from the expected owner", func(t *testing.T) {
		if err := store.SetFamilyOwner(ctx, family.ID, bob.ID, bob.ID); !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
		if err := store.SetFamilyOwner(ctx, family.ID, alice.ID, bob.ID); err != nil {
			t.Fatalf("SetFamilyOwner failed: %v", err)
		}
		got, _ := store.GetFamily(ctx, family.ID)
		if got.OwnerID != bob.ID {
			t.Errorf("owner: expected bob, got %s", got.OwnerID)
		}
	})

	t.Run("members list keeper first", func(t *testing.T) {
		if err := store.SetRole(ctx, alice.ID, family.ID, models.RoleMember); err != nil {
			t.Fatalf("SetRole failed: %v", err)
		}
		if err := store.SetRole(ctx, bob.ID, family.ID, models.RoleKeeper); err != nil {
			t.Fatalf("SetRole failed: %v", err)
		}
		members, err := store.ListMembers(ctx, family.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 || members[0].ID != bob.ID {
			t.Errorf("expected bob first, got %+v", members)
		}
	})
}

func TestFamilies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	family := createFamily(t, store, alice, "SMTH0001")

	t.Run("invite code lookup ignores case", func(t *testing.T) {
		got, err := store.GetFamilyByInviteCode(ctx, " smth0001 ")
		if err != nil {
			t.Fatalf("GetFamilyByInviteCode failed: %v", err)
		}
		if got.ID != family.ID || got.Metadata[models.MetaDescription] != "Sunday dinners" {
			t.Errorf("unexpected family: %+v", got)
		}
	})

	t.Run("duplicate invite code conflicts", func(t *testing.T) {
		dup := &models.Family{ID: "other", Name: "Joneses", OwnerID: bob.ID, InviteCode: "smth0001", CreatedAt: models.Now()}
		err := store.CreateFamily(ctx, dup)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("update writes name and metadata", func(t *testing.T) {
		family.Name = "Smith Clan"
		family.Metadata[models.MetaCoverImage] = "img"
		if err := store.UpdateFamily(ctx, family); err != nil {
			t.Fatalf("UpdateFamily failed: %v", err)
		}
		got, _ := store.GetFamily(ctx, family.ID)
		if got.Name != "Smith Clan" || got.Metadata[models.MetaCoverImage] != "img" {
			t.Errorf("update not stored: %+v", got)
		}
	})

	t.Run("delete clears every member", func(t *testing.T) {
		if err := store.JoinFamily(ctx, bob.ID, family.ID, models.RoleMember); err != nil {
			t.Fatalf("JoinFamily failed: %v", err)
		}
		if n, _ := store.CountMembers(ctx, family.ID); n != 2 {
			t.Fatalf("expected 2 members, got %d", n)
		}
		if err := store.DeleteFamily(ctx, family.ID); err != nil {
			t.Fatalf("DeleteFamily failed: %v", err)
		}
		for _, id := range []string{alice.ID, bob.ID} {
			u, _ := store.GetUserByID(ctx, id)
			if u.Membership != nil {
				t.Errorf("%s still in a family: %+v", u.Name, u.Membership)
			}
		}
		if _, err := store.GetFamily(ctx, family.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteFamily(ctx, family.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func TestWithTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createUser(t, store, "alice")

	t.Run("failure rolls back every write", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTx(ctx, func(st storage.Store) error {
			f := &models.Family{ID: "f1", Name: "Smiths", OwnerID: alice.ID, InviteCode: "ROLLBACK", CreatedAt: models.Now()}
			if err := st.CreateFamily(ctx, f); err != nil {
				return err
			}
			if err := st.JoinFamily(ctx, alice.ID, f.ID, models.RoleKeeper); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := store.GetFamily(ctx, "f1"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("family should be rolled back, got %v", err)
		}
		u, _ := store.GetUserByID(ctx, alice.ID)
		if u.Membership != nil {
			t.Errorf("membership should be rolled back: %+v", u.Membership)
		}
	})

	t.Run("nested calls share the transaction", func(t *testing.T) {
		err := store.WithTx(ctx, func(st storage.Store) error {
			return st.WithTx(ctx, func(inner storage.Store) error {
				if inner != st {
					t.Error("nested WithTx should reuse the outer store")
				}
				return nil
			})
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
	})
}

func TestRecipesAndComments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	familyID := "smiths"
	story := "Grandma's"

	legacy := &models.Recipe{Title: "Bread", Ingredients: []string{"flour"}, Category: "Breakfast", AuthorID: "a", AuthorName: "A"}
	scoped := &models.Recipe{Title: "Soup", FamilyID: &familyID, Story: &story, Category: "Soup", AuthorID: "a", AuthorName: "A"}
	other := &models.Recipe{Title: "Pie", FamilyID: strPtr("joneses"), Category: "Dessert", AuthorID: "b", AuthorName: "B"}
	for _, r := range []*models.Recipe{legacy, scoped, other} {
		if err := store.CreateRecipe(ctx, r); err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}
	}

	t.Run("round trip keeps optional fields", func(t *testing.T) {
		got, err := store.GetRecipe(ctx, scoped.ID)
		if err != nil {
			t.Fatalf("GetRecipe failed: %v", err)
		}
		if got.FamilyID == nil || *got.FamilyID != familyID || got.Story == nil || *got.Story != story {
			t.Errorf("optional fields lost: %+v", got)
		}
		if got.Photos == nil || len(got.Photos) != 0 {
			t.Errorf("photos should decode to an empty list, got %v", got.Photos)
		}
		got, _ = store.GetRecipe(ctx, legacy.ID)
		if got.FamilyID != nil {
			t.Errorf("legacy recipe has family %s", *got.FamilyID)
		}
	})

	t.Run("list scopes by family", func(t *testing.T) {
		withFamily, err := store.ListRecipes(ctx, models.RecipeFilter{FamilyID: &familyID})
		if err != nil {
			t.Fatalf("ListRecipes failed: %v", err)
		}
		if len(withFamily) != 2 || withFamily[0].ID != scoped.ID || withFamily[1].ID != legacy.ID {
			t.Errorf("expected [soup bread], got %d recipes", len(withFamily))
		}
		ungrouped, _ := store.ListRecipes(ctx, models.RecipeFilter{})
		if len(ungrouped) != 1 || ungrouped[0].ID != legacy.ID {
			t.Errorf("ungrouped should see only legacy recipes, got %d", len(ungrouped))
		}
	})

	t.Run("update never touches family or author", func(t *testing.T) {
		changed := *scoped
		changed.Title = "Stew"
		changed.FamilyID = nil
		changed.AuthorID = "someone"
		if err := store.UpdateRecipe(ctx, &changed); err != nil {
			t.Fatalf("UpdateRecipe failed: %v", err)
		}
		got, _ := store.GetRecipe(ctx, scoped.ID)
		if got.Title != "Stew" || got.FamilyID == nil || got.AuthorID != "a" {
			t.Errorf("unexpected recipe after update: %+v", got)
		}
	})

	t.Run("categories are distinct", func(t *testing.T) {
		cats, err := store.ListCategories(ctx)
		if err != nil {
			t.Fatalf("ListCategories failed: %v", err)
		}
		if len(cats) != 3 {
			t.Errorf("expected 3 categories, got %v", cats)
		}
	})

	t.Run("comments newest first and cascade", func(t *testing.T) {
		for _, text := range []string{"first", "second"} {
			if err := store.CreateComment(ctx, &models.Comment{RecipeID: scoped.ID, AuthorID: "b", AuthorName: "B", Text: text}); err != nil {
				t.Fatalf("CreateComment failed: %v", err)
			}
		}
		comments, err := store.ListComments(ctx, scoped.ID, 10)
		if err != nil {
			t.Fatalf("ListComments failed: %v", err)
		}
		if len(comments) != 2 || comments[0].Text != "second" {
			t.Fatalf("unexpected comments: %+v", comments)
		}
		err = store.CreateComment(ctx, &models.Comment{RecipeID: "missing", AuthorID: "b", Text: "x"})
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("comment on a missing recipe: expected ErrConflict, got %v", err)
		}

		if err := store.DeleteRecipe(ctx, scoped.ID); err != nil {
			t.Fatalf("DeleteRecipe failed: %v", err)
		}
		if _, err := store.GetComment(ctx, comments[0].ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("comment should be deleted with its recipe, got %v", err)
		}
	})
}

func strPtr(s string) *string { return &s }

func TestNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var notes []*models.Notification
	for i := 0; i < 3; i++ {
		notes = append(notes, &models.Notification{
			UserID:       "alice",
			Type:         models.NotificationNewRecipe,
			Message:      "msg",
			FromUserName: "Bob",
			CreatedAt:    models.Timestamp(base.Add(time.Duration(i) * time.Second)),
		})
	}
	notes = append(notes, &models.Notification{UserID: "bob", Type: models.NotificationComment, Message: "other", FromUserName: "Alice"})
	if err := store.InsertNotifications(ctx, notes); err != nil {
		t.Fatalf("InsertNotifications failed: %v", err)
	}

	t.Run("list newest first with limit", func(t *testing.T) {
		got, err := store.ListNotifications(ctx, "alice", 2)
		if err != nil {
			t.Fatalf("ListNotifications failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != notes[2].ID || got[1].ID != notes[1].ID {
			t.Errorf("unexpected order")
		}
	})

	t.Run("mark read", func(t *testing.T) {
		if n, _ := store.CountUnread(ctx, "alice"); n != 3 {
			t.Fatalf("expected 3 unread, got %d", n)
		}
		if err := store.MarkRead(ctx, notes[0].ID, "alice"); err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}
		if n, _ := store.CountUnread(ctx, "alice"); n != 2 {
			t.Errorf("expected 2 unread, got %d", n)
		}

		// Another user's notification is not found.
		if err := store.MarkRead(ctx, notes[3].ID, "alice"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		if err := store.MarkAllRead(ctx, "alice"); err != nil {
			t.Fatalf("MarkAllRead failed: %v", err)
		}
		if n, _ := store.CountUnread(ctx, "alice"); n != 0 {
			t.Errorf("expected 0 unread, got %d", n)
		}
		if n, _ := store.CountUnread(ctx, "bob"); n != 1 {
			t.Errorf("bob's notifications must be untouched, got %d unread", n)
		}
	})
}
