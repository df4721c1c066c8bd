package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/family"
	"github.com/mmynk/familytable/internal/models"
)

// FamilyService implements the Connect FamilyService.
type FamilyService struct {
	dir *family.Directory
}

var _ api.FamilyServiceHandler = (*FamilyService)(nil)

// NewFamilyService creates a new FamilyService backed by dir.
func NewFamilyService(dir *family.Directory) *FamilyService {
	return &FamilyService{dir: dir}
}

// CreateFamily creates a family with the caller as keeper.
func (s *FamilyService) CreateFamily(ctx context.Context, req *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.FamilyResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateFamily request received", "user_id", userID, "name", req.Msg.Name)

	f, err := s.dir.Create(ctx, userID, req.Msg.Name, req.Msg.Description)
	if err != nil {
		return nil, fail("CreateFamily", err, "user_id", userID)
	}
	return connect.NewResponse(&api.FamilyResponse{Family: toFamily(f)}), nil
}

// JoinFamily adds the caller to the family holding the invite code.
func (s *FamilyService) JoinFamily(ctx context.Context, req *connect.Request[api.JoinFamilyRequest]) (*connect.Response[api.FamilyResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinFamily request received", "user_id", userID)

	f, err := s.dir.Join(ctx, userID, req.Msg.InviteCode)
	if err != nil {
		return nil, fail("JoinFamily", err, "user_id", userID)
	}
	return connect.NewResponse(&api.FamilyResponse{Family: toFamily(f)}), nil
}

// GetFamily returns the caller's family.
func (s *FamilyService) GetFamily(ctx context.Context, req *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.FamilyResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetFamily request received", "user_id", userID, "family_id", req.Msg.FamilyID)

	f, err := s.dir.Get(ctx, userID, req.Msg.FamilyID)
	if err != nil {
		return nil, fail("GetFamily", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.FamilyResponse{Family: toFamily(f)}), nil
}

// ListMembers lists the members of the caller's family with their roles.
func (s *FamilyService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListMembers request received", "user_id", userID, "family_id", req.Msg.FamilyID)

	members, err := s.dir.Members(ctx, userID, req.Msg.FamilyID)
	if err != nil {
		return nil, fail("ListMembers", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}

	out := make([]*api.User, len(members))
	for i, m := range members {
		out[i] = toUser(m)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: out}), nil
}

// UpdateFamily renames the family and merges metadata. Keeper only.
func (s *FamilyService) UpdateFamily(ctx context.Context, req *connect.Request[api.UpdateFamilyRequest]) (*connect.Response[api.FamilyResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateFamily request received",
		"user_id", userID,
		"family_id", req.Msg.FamilyID,
		"metadata_keys", len(req.Msg.Metadata),
	)

	f, err := s.dir.Update(ctx, userID, req.Msg.FamilyID, models.FamilyUpdate{
		Name:     req.Msg.Name,
		Metadata: req.Msg.Metadata,
	})
	if err != nil {
		return nil, fail("UpdateFamily", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.FamilyResponse{Family: toFamily(f)}), nil
}

// DeleteFamily dissolves the family. Keeper only.
func (s *FamilyService) DeleteFamily(ctx context.Context, req *connect.Request[api.DeleteFamilyRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteFamily request received", "user_id", userID, "family_id", req.Msg.FamilyID)

	if err := s.dir.Delete(ctx, userID, req.Msg.FamilyID); err != nil {
		return nil, fail("DeleteFamily", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// LeaveFamily removes the caller from the family.
func (s *FamilyService) LeaveFamily(ctx context.Context, req *connect.Request[api.LeaveFamilyRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("LeaveFamily request received", "user_id", userID, "family_id", req.Msg.FamilyID)

	if err := s.dir.Leave(ctx, userID, req.Msg.FamilyID); err != nil {
		return nil, fail("LeaveFamily", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RemoveMember takes a member out of the family. Keeper only.
func (s *FamilyService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received",
		"user_id", userID,
		"family_id", req.Msg.FamilyID,
		"target_id", req.Msg.UserID,
	)

	if err := s.dir.RemoveMember(ctx, userID, req.Msg.FamilyID, req.Msg.UserID); err != nil {
		return nil, fail("RemoveMember", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// TransferKeeper hands the keeper role to another member. Keeper only.
func (s *FamilyService) TransferKeeper(ctx context.Context, req *connect.Request[api.TransferKeeperRequest]) (*connect.Response[api.TransferKeeperResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("TransferKeeper request received",
		"user_id", userID,
		"family_id", req.Msg.FamilyID,
		"new_keeper_id", req.Msg.NewKeeperID,
	)

	keeper, err := s.dir.TransferKeeper(ctx, userID, req.Msg.FamilyID, req.Msg.NewKeeperID)
	if err != nil {
		return nil, fail("TransferKeeper", err, "user_id", userID, "family_id", req.Msg.FamilyID)
	}
	return connect.NewResponse(&api.TransferKeeperResponse{NewKeeper: toUser(keeper)}), nil
}
