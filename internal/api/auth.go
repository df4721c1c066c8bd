package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceName is the fully-qualified name of the AuthService.
const AuthServiceName = "familytable.v1.AuthService"

// Procedure paths of the AuthService.
const (
	AuthServiceRegisterProcedure      = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure         = "/" + AuthServiceName + "/Login"
	AuthServiceMeProcedure            = "/" + AuthServiceName + "/Me"
	AuthServiceUpdateProfileProcedure = "/" + AuthServiceName + "/UpdateProfile"
)

// AuthServiceHandler is the server side of the AuthService, which handles accounts and sessions.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	Me(context.Context, *connect.Request[MeRequest]) (*connect.Response[UserResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[UserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for every procedure of svc.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceMeProcedure, connect.NewUnaryHandler(AuthServiceMeProcedure, svc.Me, opts...))
	mux.Handle(AuthServiceUpdateProfileProcedure, connect.NewUnaryHandler(AuthServiceUpdateProfileProcedure, svc.UpdateProfile, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	Me(context.Context, *connect.Request[MeRequest]) (*connect.Response[UserResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[UserResponse], error)
}

// NewAuthServiceClient constructs a client for the AuthService. baseURL is the
// server address, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	opts = clientOptions(opts)
	return &authServiceClient{
		register:      connect.NewClient[RegisterRequest, AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:         connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		me:            connect.NewClient[MeRequest, UserResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),
		updateProfile: connect.NewClient[UpdateProfileRequest, UserResponse](httpClient, baseURL+AuthServiceUpdateProfileProcedure, opts...),
	}
}

type authServiceClient struct {
	register      *connect.Client[RegisterRequest, AuthResponse]
	login         *connect.Client[LoginRequest, AuthResponse]
	me            *connect.Client[MeRequest, UserResponse]
	updateProfile *connect.Client[UpdateProfileRequest, UserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) Me(ctx context.Context, req *connect.Request[MeRequest]) (*connect.Response[UserResponse], error) {
	return c.me.CallUnary(ctx, req)
}

func (c *authServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UserResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}
