package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// AuthService defines login and registration operations.
type AuthService interface {
	Login(ctx context.Context, phone, password string) (model.LoginResult, error)
	SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error)
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

var _ bookbitespb.AuthServer = (*Auth)(nil)

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Login signs a reader in with phone and password.
func (h *Auth) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := bookbitespb.ParseLoginRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	h.logger.Debug("Auth handler: processing login request",
		"phone", in.Phone)

	result, err := h.authService.Login(ctx, in.Phone, in.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"phone", in.Phone,
			"error", err.Error())
		return nil, handleError(err)
	}

	return loginResponse(result).Struct(), nil
}

// SignUp registers a reader and signs them in.
func (h *Auth) SignUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := bookbitespb.ParseSignUpRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	h.logger.Debug("Auth handler: processing sign up request",
		"phone", in.Phone)

	result, err := h.authService.SignUp(ctx, model.SignUpParams{
		Phone:    in.Phone,
		Password: in.Password,
		Name:     in.Name,
		Avatar:   in.Avatar,
	})
	if err != nil {
		h.logger.Info("Auth handler: sign up failed",
			"phone", in.Phone,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: sign up completed",
		"user_id", result.User.ID)

	return loginResponse(result).Struct(), nil
}

func loginResponse(r model.LoginResult) bookbitespb.LoginResponse {
	return bookbitespb.LoginResponse{
		UserID:      r.User.ID.String(),
		Name:        r.User.Name,
		Phone:       r.User.Phone,
		Email:       r.User.Email,
		Avatar:      r.User.Avatar,
		Type:        r.User.Type,
		Plan:        r.User.Plan,
		AccessToken: r.AccessToken,
	}
}
