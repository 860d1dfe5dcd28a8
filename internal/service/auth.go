package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Auth signs readers in with phone and password.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
		now:          time.Now,
	}
}

// Login checks credentials, records the login time and issues an access token.
func (a *Auth) Login(ctx context.Context, phone, password string) (model.LoginResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return model.LoginResult{}, fmt.Errorf("%w: phone and password are required", model.ErrInvalidArgument)
	}

	a.logger.Debug("Auth service: starting user login",
		"phone", phone)

	user, err := a.userStore.Authenticate(ctx, phone, password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		a.logger.Info("Auth service: invalid credentials",
			"phone", phone)
		return model.LoginResult{}, err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to authenticate user",
			"phone", phone,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to authenticate user: %w", err)
	}

	return a.startSession(ctx, user)
}

// SignUp registers a reader and signs them in.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error) {
	params.Phone = strings.TrimSpace(params.Phone)
	params.Name = strings.TrimSpace(params.Name)
	if params.Phone == "" || params.Password == "" || params.Name == "" {
		return model.LoginResult{}, fmt.Errorf("%w: phone, password and name are required", model.ErrInvalidArgument)
	}

	a.logger.Debug("Auth service: starting user registration",
		"phone", params.Phone)

	userID, err := a.userStore.Create(ctx, params)
	if errors.Is(err, model.ErrAlreadyExists) {
		a.logger.Info("Auth service: phone already registered",
			"phone", params.Phone)
		return model.LoginResult{}, err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"phone", params.Phone,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", userID)

	return a.startSession(ctx, user)
}

func (a *Auth) startSession(ctx context.Context, user model.User) (model.LoginResult, error) {
	accessToken, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	now := a.now()
	if err := a.userStore.TouchLastLogin(ctx, user.ID, now); err != nil {
		a.logger.Warn("Auth service: failed to update last login",
			"user_id", user.ID,
			"error", err.Error())
	} else {
		user.LastLogin = &now
	}

	a.logger.Info("Auth service: user signed in",
		"user_id", user.ID)

	return model.LoginResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}
