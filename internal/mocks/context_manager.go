package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

var _ model.ContextManager = (*ContextManager)(nil)

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (_m *ContextManager) WithReader(ctx context.Context, userID uuid.UUID) context.Context {
	ret := _m.Called(ctx, userID)
	if fn, ok := ret.Get(0).(func(context.Context, uuid.UUID) context.Context); ok {
		return fn(ctx, userID)
	}
	return ret.Get(0).(context.Context)
}

func (_m *ContextManager) ReaderFromContext(ctx context.Context) (uuid.UUID, bool) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uuid.UUID), ret.Bool(1)
}
