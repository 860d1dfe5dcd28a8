package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// BookStore is a mock of model.BookStore.
type BookStore struct {
	mock.Mock
}

var _ model.BookStore = (*BookStore)(nil)

func NewBookStore(t testingT) *BookStore {
	m := &BookStore{}
	register(&m.Mock, t)
	return m
}

func (_m *BookStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	ret := _m.Called(ctx, ids)
	var r0 []model.Book
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Book)
	}
	return r0, ret.Error(1)
}
