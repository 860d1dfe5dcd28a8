package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// CoverStorage is a mock of model.CoverStorage.
type CoverStorage struct {
	mock.Mock
}

var _ model.CoverStorage = (*CoverStorage)(nil)

func NewCoverStorage(t testingT) *CoverStorage {
	m := &CoverStorage{}
	register(&m.Mock, t)
	return m
}

func (_m *CoverStorage) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	ret := _m.Called(ctx, key, ttl)
	return ret.String(0), ret.Error(1)
}

func (_m *CoverStorage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}
