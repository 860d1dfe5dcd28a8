package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

var _ model.UserStore = (*UserStore)(nil)

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (_m *UserStore) Authenticate(ctx context.Context, phone string, password string) (model.User, error) {
	ret := _m.Called(ctx, phone, password)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) Create(ctx context.Context, params model.SignUpParams) (uuid.UUID, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, id, at)
	return ret.Error(0)
}
