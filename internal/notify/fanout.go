// Package notify computes who must hear about an activity and records one
// notification per recipient.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/models"
)

// Fanout returns the notifications ev produces, one per recipient, stamped
// with at. It reads nothing beyond ev, so the audience is fixed at the
// moment the caller loaded the event's state.
func Fanout(ev Event, at time.Time) []*models.Notification {
	b := builder{at: models.Timestamp(at)}

	switch e := ev.(type) {
	case RecipePublished:
		if e.Recipe.FamilyID == nil {
			return nil
		}
		from := e.Author.DisplayName()
		msg := fmt.Sprintf("%s shared a new recipe: %s", from, e.Recipe.Title)
		for _, m := range e.Members {
			if m.ID == e.Author.ID || !m.SameFamily(e.Recipe.FamilyID) {
				continue
			}
			b.add(m.ID, models.NotificationNewRecipe, msg, &e.Recipe.ID, from)
		}

	case CommentPosted:
		author := e.RecipeAuthor
		if author == nil || author.ID == e.Commenter.ID || !author.SameFamily(e.Recipe.FamilyID) {
			return nil
		}
		from := e.Commenter.DisplayName()
		b.add(author.ID, models.NotificationComment,
			fmt.Sprintf("%s commented on your recipe: %s", from, e.Recipe.Title),
			&e.Recipe.ID, from)

	case MemberJoined:
		if e.Family.OwnerID == e.Member.ID {
			return nil
		}
		from := e.Member.DisplayName()
		b.add(e.Family.OwnerID, models.NotificationFamilyInvite,
			fmt.Sprintf("%s joined your family: %s", from, e.Family.Name),
			nil, from)

	case MemberRemoved:
		from := e.Keeper.DisplayName()
		b.add(e.Removed.ID, models.NotificationFamilyInvite,
			fmt.Sprintf("You have been removed from %s by %s", e.Family.Name, from),
			nil, from)

	case MemberLeft:
		if e.Family.OwnerID == e.Member.ID {
			return nil
		}
		from := e.Member.DisplayName()
		b.add(e.Family.OwnerID, models.NotificationFamilyInvite,
			fmt.Sprintf("%s left your family: %s", from, e.Family.Name),
			nil, from)

	case KeeperTransferred:
		from := e.OldKeeper.DisplayName()
		b.add(e.NewKeeper.ID, models.NotificationFamilyInvite,
			fmt.Sprintf("You are now the keeper of %s", e.Family.Name),
			nil, from)
		broadcast := fmt.Sprintf("%s is now the keeper of %s", e.NewKeeper.DisplayName(), e.Family.Name)
		for _, m := range e.Members {
			if m.ID == e.OldKeeper.ID || m.ID == e.NewKeeper.ID || !m.InFamily(e.Family.ID) {
				continue
			}
			b.add(m.ID, models.NotificationFamilyInvite, broadcast, nil, from)
		}
	}

	return b.out
}

type builder struct {
	at  string
	out []*models.Notification
}

func (b *builder) add(to string, typ models.NotificationType, msg string, recipeID *string, from string) {
	var rid *string
	if recipeID != nil {
		id := *recipeID
		rid = &id
	}
	b.out = append(b.out, &models.Notification{
		ID:           uuid.New().String(),
		UserID:       to,
		Type:         typ,
		Message:      msg,
		RecipeID:     rid,
		FromUserName: from,
		CreatedAt:    b.at,
	})
}
