package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// TokenService issues access tokens and resolves them back to user IDs.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

func (s *TokenService) Issue(_ context.Context, userID uuid.UUID) (string, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}
	return access, nil
}

// GetUserID validates an access token and returns its subject.
func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("Token service: rejected access token",
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("parse access: %w", err)
	}
	return userID, nil
}
