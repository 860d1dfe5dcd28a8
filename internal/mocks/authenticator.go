package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Authenticator is a mock of the client-side auth.Authenticator.
type Authenticator struct {
	mock.Mock
}

func NewAuthenticator(t testingT) *Authenticator {
	m := &Authenticator{}
	register(&m.Mock, t)
	return m
}

func (_m *Authenticator) Login(ctx context.Context, phone string, password string) (model.LoginResult, error) {
	ret := _m.Called(ctx, phone, password)
	return ret.Get(0).(model.LoginResult), ret.Error(1)
}

func (_m *Authenticator) SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.LoginResult), ret.Error(1)
}
