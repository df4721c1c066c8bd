package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/auth"
	"github.com/mmynk/familytable/internal/storage"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// PublicProcedures lists the procedures callable without a token.
func PublicProcedures() []string {
	return []string{api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Nickname, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrNameRequired):
			s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{Token: token, User: toUser(user)}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.AuthResponse{Token: token, User: toUser(user)}), nil
}

// Me returns the authenticated user as currently stored.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.UserResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fail("Me", err, "user_id", userID)
	}
	return connect.NewResponse(&api.UserResponse{User: toUser(user)}), nil
}

// UpdateProfile sets or clears the caller's nickname and avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UserResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateProfile request", "user_id", userID)

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fail("UpdateProfile", err, "user_id", userID)
	}
	user.Nickname = patch(user.Nickname, req.Msg.Nickname)
	user.Avatar = patch(user.Avatar, req.Msg.Avatar)

	if err := s.users.UpdateUserProfile(ctx, user.ID, user.Nickname, user.Avatar); err != nil {
		return nil, fail("UpdateProfile", err, "user_id", userID)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return connect.NewResponse(&api.UserResponse{User: toUser(user)}), nil
}

// patch keeps current when next is nil and clears it when next is empty.
func patch(current, next *string) *string {
	switch {
	case next == nil:
		return current
	case *next == "":
		return nil
	default:
		return next
	}
}
