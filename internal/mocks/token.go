package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (_m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

// TokenService is a mock of the token resolver used by the authenticate middleware.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t testingT) *TokenService {
	m := &TokenService{}
	register(&m.Mock, t)
	return m
}

func (_m *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}
