package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the reader behind an access token.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate resolves bearer tokens of collection and catalog calls to
// the reader id those calls act for.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc is an auth.AuthFunc. The scheme match is case-insensitive.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	userID, err := m.resolve(ctx)
	if err != nil {
		m.logger.Debug("Authenticate middleware: request rejected",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return m.contextManager.WithReader(ctx, userID), nil
}

func (m *Authenticate) resolve(ctx context.Context) (uuid.UUID, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || token == "" {
		return uuid.Nil, errMissingToken
	}

	userID, err := m.tokenService.GetUserID(ctx, token)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}
	return userID, nil
}
