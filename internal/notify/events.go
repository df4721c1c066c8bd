package notify

import "github.com/mmynk/familytable/internal/models"

// Event kinds, also used as broker routing keys.
const (
	KindRecipePublished   = "recipe.published"
	KindCommentPosted     = "comment.posted"
	KindMemberJoined      = "family.member_joined"
	KindMemberRemoved     = "family.member_removed"
	KindMemberLeft        = "family.member_left"
	KindKeeperTransferred = "family.keeper_transferred"
)

// Event is a domain event that may produce notifications. Every event
// carries the state the audience is computed from, loaded at send time.
type Event interface {
	Kind() string
}

// RecipePublished is raised after a recipe is stored. Members is the
// author's family at publish time.
type RecipePublished struct {
	Author  *models.User
	Recipe  *models.Recipe
	Members []*models.User
}

// CommentPosted is raised after a comment is stored. RecipeAuthor is the
// current state of the recipe's author, nil when the account is gone.
type CommentPosted struct {
	Commenter    *models.User
	Recipe       *models.Recipe
	RecipeAuthor *models.User
}

// MemberJoined is raised after a user joins a family by invite code.
type MemberJoined struct {
	Member *models.User
	Family *models.Family
}

// MemberRemoved is raised after a keeper removes a member.
type MemberRemoved struct {
	Keeper  *models.User
	Removed *models.User
	Family  *models.Family
}

// MemberLeft is raised after a user leaves a family on their own.
type MemberLeft struct {
	Member *models.User
	Family *models.Family
}

// KeeperTransferred is raised after the keeper role moves. Members is the
// family after the transfer.
type KeeperTransferred struct {
	OldKeeper *models.User
	NewKeeper *models.User
	Family    *models.Family
	Members   []*models.User
}

func (RecipePublished) Kind() string   { return KindRecipePublished }
func (CommentPosted) Kind() string     { return KindCommentPosted }
func (MemberJoined) Kind() string      { return KindMemberJoined }
func (MemberRemoved) Kind() string     { return KindMemberRemoved }
func (MemberLeft) Kind() string        { return KindMemberLeft }
func (KeeperTransferred) Kind() string { return KindKeeperTransferred }
