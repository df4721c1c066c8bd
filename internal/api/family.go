package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// FamilyServiceName is the fully-qualified name of the FamilyService.
const FamilyServiceName = "familytable.v1.FamilyService"

// Procedure paths of the FamilyService.
const (
	FamilyServiceCreateFamilyProcedure   = "/" + FamilyServiceName + "/CreateFamily"
	FamilyServiceJoinFamilyProcedure     = "/" + FamilyServiceName + "/JoinFamily"
	FamilyServiceGetFamilyProcedure      = "/" + FamilyServiceName + "/GetFamily"
	FamilyServiceListMembersProcedure    = "/" + FamilyServiceName + "/ListMembers"
	FamilyServiceUpdateFamilyProcedure   = "/" + FamilyServiceName + "/UpdateFamily"
	FamilyServiceDeleteFamilyProcedure   = "/" + FamilyServiceName + "/DeleteFamily"
	FamilyServiceLeaveFamilyProcedure    = "/" + FamilyServiceName + "/LeaveFamily"
	FamilyServiceRemoveMemberProcedure   = "/" + FamilyServiceName + "/RemoveMember"
	FamilyServiceTransferKeeperProcedure = "/" + FamilyServiceName + "/TransferKeeper"
)

// FamilyServiceHandler is the server side of the FamilyService, which manages families and their membership.
type FamilyServiceHandler interface {
	CreateFamily(context.Context, *connect.Request[CreateFamilyRequest]) (*connect.Response[FamilyResponse], error)
	JoinFamily(context.Context, *connect.Request[JoinFamilyRequest]) (*connect.Response[FamilyResponse], error)
	GetFamily(context.Context, *connect.Request[GetFamilyRequest]) (*connect.Response[FamilyResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	UpdateFamily(context.Context, *connect.Request[UpdateFamilyRequest]) (*connect.Response[FamilyResponse], error)
	DeleteFamily(context.Context, *connect.Request[DeleteFamilyRequest]) (*connect.Response[Empty], error)
	LeaveFamily(context.Context, *connect.Request[LeaveFamilyRequest]) (*connect.Response[Empty], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[Empty], error)
	TransferKeeper(context.Context, *connect.Request[TransferKeeperRequest]) (*connect.Response[TransferKeeperResponse], error)
}

// NewFamilyServiceHandler builds an HTTP handler for every procedure of svc.
// It returns the path prefix to mount the handler on.
func NewFamilyServiceHandler(svc FamilyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(FamilyServiceCreateFamilyProcedure, connect.NewUnaryHandler(FamilyServiceCreateFamilyProcedure, svc.CreateFamily, opts...))
	mux.Handle(FamilyServiceJoinFamilyProcedure, connect.NewUnaryHandler(FamilyServiceJoinFamilyProcedure, svc.JoinFamily, opts...))
	mux.Handle(FamilyServiceGetFamilyProcedure, connect.NewUnaryHandler(FamilyServiceGetFamilyProcedure, svc.GetFamily, opts...))
	mux.Handle(FamilyServiceListMembersProcedure, connect.NewUnaryHandler(FamilyServiceListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(FamilyServiceUpdateFamilyProcedure, connect.NewUnaryHandler(FamilyServiceUpdateFamilyProcedure, svc.UpdateFamily, opts...))
	mux.Handle(FamilyServiceDeleteFamilyProcedure, connect.NewUnaryHandler(FamilyServiceDeleteFamilyProcedure, svc.DeleteFamily, opts...))
	mux.Handle(FamilyServiceLeaveFamilyProcedure, connect.NewUnaryHandler(FamilyServiceLeaveFamilyProcedure, svc.LeaveFamily, opts...))
	mux.Handle(FamilyServiceRemoveMemberProcedure, connect.NewUnaryHandler(FamilyServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(FamilyServiceTransferKeeperProcedure, connect.NewUnaryHandler(FamilyServiceTransferKeeperProcedure, svc.TransferKeeper, opts...))
	return "/" + FamilyServiceName + "/", mux
}

// FamilyServiceClient is a client for the FamilyService.
type FamilyServiceClient interface {
	CreateFamily(context.Context, *connect.Request[CreateFamilyRequest]) (*connect.Response[FamilyResponse], error)
	JoinFamily(context.Context, *connect.Request[JoinFamilyRequest]) (*connect.Response[FamilyResponse], error)
	GetFamily(context.Context, *connect.Request[GetFamilyRequest]) (*connect.Response[FamilyResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	UpdateFamily(context.Context, *connect.Request[UpdateFamilyRequest]) (*connect.Response[FamilyResponse], error)
	DeleteFamily(context.Context, *connect.Request[DeleteFamilyRequest]) (*connect.Response[Empty], error)
	LeaveFamily(context.Context, *connect.Request[LeaveFamilyRequest]) (*connect.Response[Empty], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[Empty], error)
	TransferKeeper(context.Context, *connect.Request[TransferKeeperRequest]) (*connect.Response[TransferKeeperResponse], error)
}

// NewFamilyServiceClient constructs a client for the FamilyService. baseURL is the
// server address, e.g. http://localhost:8080.
func NewFamilyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FamilyServiceClient {
	opts = clientOptions(opts)
	return &familyServiceClient{
		createFamily:   connect.NewClient[CreateFamilyRequest, FamilyResponse](httpClient, baseURL+FamilyServiceCreateFamilyProcedure, opts...),
		joinFamily:     connect.NewClient[JoinFamilyRequest, FamilyResponse](httpClient, baseURL+FamilyServiceJoinFamilyProcedure, opts...),
		getFamily:      connect.NewClient[GetFamilyRequest, FamilyResponse](httpClient, baseURL+FamilyServiceGetFamilyProcedure, opts...),
		listMembers:    connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+FamilyServiceListMembersProcedure, opts...),
		updateFamily:   connect.NewClient[UpdateFamilyRequest, FamilyResponse](httpClient, baseURL+FamilyServiceUpdateFamilyProcedure, opts...),
		deleteFamily:   connect.NewClient[DeleteFamilyRequest, Empty](httpClient, baseURL+FamilyServiceDeleteFamilyProcedure, opts...),
		leaveFamily:    connect.NewClient[LeaveFamilyRequest, Empty](httpClient, baseURL+FamilyServiceLeaveFamilyProcedure, opts...),
		removeMember:   connect.NewClient[RemoveMemberRequest, Empty](httpClient, baseURL+FamilyServiceRemoveMemberProcedure, opts...),
		transferKeeper: connect.NewClient[TransferKeeperRequest, TransferKeeperResponse](httpClient, baseURL+FamilyServiceTransferKeeperProcedure, opts...),
	}
}

type familyServiceClient struct {
	createFamily   *connect.Client[CreateFamilyRequest, FamilyResponse]
	joinFamily     *connect.Client[JoinFamilyRequest, FamilyResponse]
	getFamily      *connect.Client[GetFamilyRequest, FamilyResponse]
	listMembers    *connect.Client[ListMembersRequest, ListMembersResponse]
	updateFamily   *connect.Client[UpdateFamilyRequest, FamilyResponse]
	deleteFamily   *connect.Client[DeleteFamilyRequest, Empty]
	leaveFamily    *connect.Client[LeaveFamilyRequest, Empty]
	removeMember   *connect.Client[RemoveMemberRequest, Empty]
	transferKeeper *connect.Client[TransferKeeperRequest, TransferKeeperResponse]
}

func (c *familyServiceClient) CreateFamily(ctx context.Context, req *connect.Request[CreateFamilyRequest]) (*connect.Response[FamilyResponse], error) {
	return c.createFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) JoinFamily(ctx context.Context, req *connect.Request[JoinFamilyRequest]) (*connect.Response[FamilyResponse], error) {
	return c.joinFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) GetFamily(ctx context.Context, req *connect.Request[GetFamilyRequest]) (*connect.Response[FamilyResponse], error) {
	return c.getFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *familyServiceClient) UpdateFamily(ctx context.Context, req *connect.Request[UpdateFamilyRequest]) (*connect.Response[FamilyResponse], error) {
	return c.updateFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) DeleteFamily(ctx context.Context, req *connect.Request[DeleteFamilyRequest]) (*connect.Response[Empty], error) {
	return c.deleteFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) LeaveFamily(ctx context.Context, req *connect.Request[LeaveFamilyRequest]) (*connect.Response[Empty], error) {
	return c.leaveFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[Empty], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *familyServiceClient) TransferKeeper(ctx context.Context, req *connect.Request[TransferKeeperRequest]) (*connect.Response[TransferKeeperResponse], error) {
	return c.transferKeeper.CallUnary(ctx, req)
}
