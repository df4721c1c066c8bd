// Package family manages families: creation, invite codes, membership,
// the keeper role and dissolution.
//
// Every operation that writes more than one record runs inside a single
// store transaction and re-reads the requester and the family there, so a
// decision is never based on state loaded before the transaction began.
// Transactions that lose a race (apperr.ErrConflict) are retried a bounded
// number of times.
package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/metrics"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/notify"
	"github.com/mmynk/familytable/internal/storage"
)

// DefaultMaxAttempts bounds the retries of a conflicting operation.
const DefaultMaxAttempts = 5

// Directory implements the family operations.
type Directory struct {
	store    storage.Store
	notifier *notify.Dispatcher
	newCode  func() (string, error)
	attempts int
}

// Option configures a Directory.
type Option func(*Directory)

// WithInviteCodes replaces the invite code generator.
func WithInviteCodes(gen func() (string, error)) Option {
	return func(d *Directory) { d.newCode = gen }
}

// WithMaxAttempts sets how often a conflicting operation is tried.
func WithMaxAttempts(n int) Option {
	return func(d *Directory) {
		if n > 0 {
			d.attempts = n
		}
	}
}

// NewDirectory creates a Directory backed by store.
func NewDirectory(store storage.Store, notifier *notify.Dispatcher, opts ...Option) *Directory {
	d := &Directory{
		store:    store,
		notifier: notifier,
		newCode:  NewInviteCode,
		attempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type announcement struct {
	ev    notify.Event
	notes []*models.Notification
}

// atomic runs fn in a transaction, retrying on conflict. fn returns the
// announcements to publish once the transaction committed.
func (d *Directory) atomic(ctx context.Context, op string, fn func(st storage.Store) ([]announcement, error)) error {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		var pending []announcement
		err = d.store.WithTx(ctx, func(st storage.Store) error {
			var ferr error
			pending, ferr = fn(st)
			return ferr
		})
		if err == nil {
			for _, a := range pending {
				d.notifier.Announce(ctx, a.ev, a.notes)
			}
			return nil
		}
		if !errors.Is(err, apperr.ErrConflict) || ctx.Err() != nil {
			return err
		}
		if attempt < d.attempts {
			metrics.TxRetries.WithLabelValues(op).Inc()
			slog.Warn("Family operation conflicted, retrying", "op", op, "attempt", attempt, "error", err)
		}
	}
	return err
}

// record fans ev out inside the transaction.
func (d *Directory) record(ctx context.Context, st storage.Store, ev notify.Event) ([]announcement, error) {
	notes, err := d.notifier.Record(ctx, st, ev)
	if err != nil {
		return nil, err
	}
	return []announcement{{ev: ev, notes: notes}}, nil
}

func deny(action string, err error) error {
	metrics.AccessDenied.WithLabelValues(action).Inc()
	return err
}

// member loads the requester and checks they belong to familyID.
func member(ctx context.Context, st storage.UserStore, requesterID, familyID, action string) (*models.User, error) {
	user, err := st.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !user.InFamily(familyID) {
		return nil, deny(action, apperr.ErrNotMember)
	}
	return user, nil
}

// keeper loads the requester and the family and checks the requester is its
// keeper.
func keeper(ctx context.Context, st storage.Store, requesterID, familyID, action string) (*models.User, *models.Family, error) {
	user, err := member(ctx, st, requesterID, familyID, action)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsKeeperOf(familyID) {
		return nil, nil, deny(action, fmt.Errorf("%w: only the family keeper can %s", apperr.ErrForbidden, action))
	}
	family, err := st.GetFamily(ctx, familyID)
	if err != nil {
		return nil, nil, err
	}
	return user, family, nil
}

// Create makes a new family with the requester as keeper.
func (d *Directory) Create(ctx context.Context, requesterID, name, description string) (*models.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("family name is required")
	}

	var family *models.Family
	err := d.atomic(ctx, "create", func(st storage.Store) ([]announcement, error) {
		user, err := st.GetUserByID(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if user.Membership != nil {
			return nil, apperr.ErrAlreadyGrouped
		}

		code, err := d.newCode()
		if err != nil {
			return nil, err
		}
		f := &models.Family{
			ID:         uuid.New().String(),
			Name:       name,
			OwnerID:    user.ID,
			InviteCode: code,
			CreatedAt:  models.Now(),
		}
		if description != "" {
			f.Metadata = map[string]string{models.MetaDescription: description}
		}

		// A taken invite code surfaces as ErrConflict and the attempt is
		// retried with a fresh code.
		if err := st.CreateFamily(ctx, f); err != nil {
			return nil, err
		}
		if err := st.JoinFamily(ctx, user.ID, f.ID, models.RoleKeeper); err != nil {
			return nil, err
		}
		family = f
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Family created", "family_id", family.ID, "owner_id", family.OwnerID)
	return family, nil
}

// Join adds the requester to the family holding code, as a member.
func (d *Directory) Join(ctx context.Context, requesterID, code string) (*models.Family, error) {
	code = NormalizeInviteCode(code)

	var family *models.Family
	err := d.atomic(ctx, "join", func(st storage.Store) ([]announcement, error) {
		user, err := st.GetUserByID(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if user.Membership != nil {
			return nil, apperr.ErrAlreadyGrouped
		}

		if !ValidInviteCode(code) {
			return nil, fmt.Errorf("invalid invite code: %w", apperr.ErrNotFound)
		}
		f, err := st.GetFamilyByInviteCode(ctx, code)
		if err != nil {
			return nil, err
		}

		if err := st.JoinFamily(ctx, user.ID, f.ID, models.RoleMember); err != nil {
			return nil, err
		}
		user.Membership = &models.Membership{FamilyID: f.ID, Role: models.RoleMember}
		family = f
		return d.record(ctx, st, notify.MemberJoined{Member: user, Family: f})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Family joined", "family_id", family.ID, "user_id", requesterID)
	return family, nil
}

// Get returns a family to one of its members.
func (d *Directory) Get(ctx context.Context, requesterID, familyID string) (*models.Family, error) {
	if _, err := member(ctx, d.store, requesterID, familyID, "view the family"); err != nil {
		return nil, err
	}
	return d.store.GetFamily(ctx, familyID)
}

// Members lists a family's members to one of its members.
func (d *Directory) Members(ctx context.Context, requesterID, familyID string) ([]*models.User, error) {
	if _, err := member(ctx, d.store, requesterID, familyID, "list members"); err != nil {
		return nil, err
	}
	if _, err := d.store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	return d.store.ListMembers(ctx, familyID)
}

// Update renames the family and merges metadata. Keeper only.
func (d *Directory) Update(ctx context.Context, requesterID, familyID string, upd models.FamilyUpdate) (*models.Family, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Invalid("family name must not be empty")
		}
		upd.Name = &name
	}

	var family *models.Family
	err := d.atomic(ctx, "update", func(st storage.Store) ([]announcement, error) {
		_, f, err := keeper(ctx, st, requesterID, familyID, "update the family")
		if err != nil {
			return nil, err
		}
		upd.Apply(f)
		if err := st.UpdateFamily(ctx, f); err != nil {
			return nil, err
		}
		family = f
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Family updated", "family_id", familyID)
	return family, nil
}

// Delete dissolves the family, removing every member from it. Keeper only.
func (d *Directory) Delete(ctx context.Context, requesterID, familyID string) error {
	var cleared int
	err := d.atomic(ctx, "delete", func(st storage.Store) ([]announcement, error) {
		if _, _, err := keeper(ctx, st, requesterID, familyID, "delete the family"); err != nil {
			return nil, err
		}
		n, err := st.CountMembers(ctx, familyID)
		if err != nil {
			return nil, err
		}
		cleared = n
		return nil, st.DeleteFamily(ctx, familyID)
	})
	if err != nil {
		return err
	}

	slog.Info("Family deleted", "family_id", familyID, "members_removed", cleared)
	return nil
}

// Leave removes the requester from the family. A keeper may only leave as
// the last member; the family record and its invite code stay in place.
func (d *Directory) Leave(ctx context.Context, requesterID, familyID string) error {
	err := d.atomic(ctx, "leave", func(st storage.Store) ([]announcement, error) {
		user, err := member(ctx, st, requesterID, familyID, "leave the family")
		if err != nil {
			return nil, err
		}
		f, err := st.GetFamily(ctx, familyID)
		if err != nil {
			return nil, err
		}

		if user.IsKeeperOf(familyID) {
			n, err := st.CountMembers(ctx, familyID)
			if err != nil {
				return nil, err
			}
			if n > 1 {
				return nil, apperr.ErrKeeperBlocked
			}
			return nil, st.ClearMembership(ctx, user.ID, familyID)
		}

		if err := st.ClearMembership(ctx, user.ID, familyID); err != nil {
			return nil, err
		}
		return d.record(ctx, st, notify.MemberLeft{Member: user, Family: f})
	})
	if err != nil {
		return err
	}

	slog.Info("Family left", "family_id", familyID, "user_id", requesterID)
	return nil
}

// RemoveMember takes targetID out of the family. Keeper only.
func (d *Directory) RemoveMember(ctx context.Context, requesterID, familyID, targetID string) error {
	err := d.atomic(ctx, "remove_member", func(st storage.Store) ([]announcement, error) {
		k, f, err := keeper(ctx, st, requesterID, familyID, "remove members")
		if err != nil {
			return nil, err
		}
		if targetID == k.ID {
			return nil, apperr.ErrSelfRemoval
		}

		target, err := st.GetUserByID(ctx, targetID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		if target == nil || !target.InFamily(familyID) {
			return nil, fmt.Errorf("member not found or does not belong to this family: %w", apperr.ErrNotFound)
		}

		if err := st.ClearMembership(ctx, target.ID, familyID); err != nil {
			return nil, err
		}
		target.Membership = nil
		return d.record(ctx, st, notify.MemberRemoved{Keeper: k, Removed: target, Family: f})
	})
	if err != nil {
		return err
	}

	slog.Info("Family member removed", "family_id", familyID, "user_id", targetID, "by", requesterID)
	return nil
}

// TransferKeeper hands the keeper role to another member and makes the
// requester a plain member. Keeper only. Returns the new keeper.
func (d *Directory) TransferKeeper(ctx context.Context, requesterID, familyID, newKeeperID string) (*models.User, error) {
	var newKeeper *models.User
	err := d.atomic(ctx, "transfer_keeper", func(st storage.Store) ([]announcement, error) {
		old, f, err := keeper(ctx, st, requesterID, familyID, "transfer the keeper role")
		if err != nil {
			return nil, err
		}
		if newKeeperID == old.ID {
			return nil, apperr.ErrSelfTransfer
		}

		target, err := st.GetUserByID(ctx, newKeeperID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		if target == nil || !target.InFamily(familyID) {
			return nil, fmt.Errorf("new keeper not found or is not a member of this family: %w", apperr.ErrNotFound)
		}

		if err := st.SetFamilyOwner(ctx, f.ID, f.OwnerID, target.ID); err != nil {
			return nil, err
		}
		if err := st.SetRole(ctx, target.ID, f.ID, models.RoleKeeper); err != nil {
			return nil, err
		}
		if err := st.SetRole(ctx, old.ID, f.ID, models.RoleMember); err != nil {
			return nil, err
		}

		members, err := st.ListMembers(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		f.OwnerID = target.ID
		target.Membership.Role = models.RoleKeeper
		old.Membership.Role = models.RoleMember
		newKeeper = target
		return d.record(ctx, st, notify.KeeperTransferred{OldKeeper: old, NewKeeper: target, Family: f, Members: members})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Keeper transferred", "family_id", familyID, "from", requesterID, "to", newKeeperID)
	return newKeeper, nil
}
