// Package access decides who may read, change or delete recipes and
// comments, based on family membership and role.
//
// Every function is a pure predicate over the current state of the user and
// the resource. Callers load both fresh for each request and never cache a
// decision.
package access

import "github.com/mmynk/familytable/internal/models"

// CanRead reports whether user may see recipe. Legacy recipes (no family) are
// readable by everyone; family recipes only by current members.
func CanRead(recipe *models.Recipe, user *models.User) bool {
	if recipe.FamilyID == nil {
		return true
	}
	return user.SameFamily(recipe.FamilyID)
}

// CanCreateRecipe reports whether user may publish a recipe. Anyone may; the
// recipe inherits the author's family, if any.
func CanCreateRecipe(user *models.User) bool {
	return user != nil
}

// CanModify reports whether user may edit recipe: only the author, and for a
// family recipe only while still in that family.
func CanModify(recipe *models.Recipe, user *models.User) bool {
	if recipe.AuthorID != user.ID {
		return false
	}
	return recipe.FamilyID == nil || user.SameFamily(recipe.FamilyID)
}

// CanDelete reports whether user may delete recipe. Legacy recipes: author
// only. Family recipes: members of that family who are the author or the
// keeper.
func CanDelete(recipe *models.Recipe, user *models.User) bool {
	if recipe.FamilyID == nil {
		return recipe.AuthorID == user.ID
	}
	if !user.SameFamily(recipe.FamilyID) {
		return false
	}
	return recipe.AuthorID == user.ID || user.IsKeeperOf(*recipe.FamilyID)
}

// CanComment reports whether user may comment on recipe. Comments are not
// family-scoped: any authenticated user may comment on any existing recipe.
func CanComment(recipe *models.Recipe, user *models.User) bool {
	return recipe != nil && user != nil
}

// CanListComments reports whether user may list the comments of recipe.
// Like CanComment this is open regardless of the recipe's family.
func CanListComments(recipe *models.Recipe, user *models.User) bool {
	return recipe != nil && user != nil
}

// CanDeleteComment reports whether user may delete comment: its author only.
func CanDeleteComment(comment *models.Comment, user *models.User) bool {
	return comment.AuthorID == user.ID
}
