package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/familytable/internal/events"
	"github.com/mmynk/familytable/internal/metrics"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/storage"
)

// Dispatcher stores fan-out results and announces them to the broker.
type Dispatcher struct {
	publisher events.Publisher
	now       func() time.Time
}

// NewDispatcher creates a Dispatcher. A nil publisher disables announcing.
func NewDispatcher(publisher events.Publisher) *Dispatcher {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Dispatcher{publisher: publisher, now: time.Now}
}

// Record fans ev out and stores the notifications through st, which is
// usually the transaction that performed the triggering mutation.
func (d *Dispatcher) Record(ctx context.Context, st storage.NotificationStore, ev Event) ([]*models.Notification, error) {
	notes := Fanout(ev, d.now())
	if len(notes) == 0 {
		return nil, nil
	}
	if err := st.InsertNotifications(ctx, notes); err != nil {
		return nil, fmt.Errorf("failed to store %s notifications: %w", ev.Kind(), err)
	}
	for _, n := range notes {
		metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	}
	return notes, nil
}

// Announce publishes what Record stored. Call it after the surrounding
// transaction committed. Nothing is published when Record stored nothing.
// Broker failures are logged and never fail the request.
func (d *Dispatcher) Announce(ctx context.Context, ev Event, notes []*models.Notification) {
	if len(notes) == 0 {
		return
	}
	activity := activityOf(ev, notes, d.now())
	if err := d.publisher.Publish(ctx, ev.Kind(), activity); err != nil {
		slog.Warn("Failed to publish activity", "kind", ev.Kind(), "error", err)
	}
}

func activityOf(ev Event, notes []*models.Notification, at time.Time) events.Activity {
	a := events.Activity{
		Kind:       ev.Kind(),
		Recipients: make([]string, 0, len(notes)),
		At:         models.Timestamp(at),
	}
	for _, n := range notes {
		a.Recipients = append(a.Recipients, n.UserID)
	}

	switch e := ev.(type) {
	case RecipePublished:
		a.ActorID = e.Author.ID
		a.RecipeID = e.Recipe.ID
		if e.Recipe.FamilyID != nil {
			a.FamilyID = *e.Recipe.FamilyID
		}
	case CommentPosted:
		a.ActorID = e.Commenter.ID
		a.RecipeID = e.Recipe.ID
		if e.Recipe.FamilyID != nil {
			a.FamilyID = *e.Recipe.FamilyID
		}
	case MemberJoined:
		a.ActorID, a.FamilyID = e.Member.ID, e.Family.ID
	case MemberRemoved:
		a.ActorID, a.FamilyID = e.Keeper.ID, e.Family.ID
	case MemberLeft:
		a.ActorID, a.FamilyID = e.Member.ID, e.Family.ID
	case KeeperTransferred:
		a.ActorID, a.FamilyID = e.OldKeeper.ID, e.Family.ID
	}
	return a
}
