package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// MembershipStore is a mock of model.MembershipStore.
type MembershipStore struct {
	mock.Mock
}

var _ model.MembershipStore = (*MembershipStore)(nil)

func NewMembershipStore(t testingT) *MembershipStore {
	m := &MembershipStore{}
	register(&m.Mock, t)
	return m
}

func (_m *MembershipStore) ListMembers(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	ret := _m.Called(ctx, userID)
	var r0 []model.Membership
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Membership)
	}
	return r0, ret.Error(1)
}

func (_m *MembershipStore) Add(ctx context.Context, userID uuid.UUID, memberID uuid.UUID) error {
	ret := _m.Called(ctx, userID, memberID)
	return ret.Error(0)
}

func (_m *MembershipStore) Remove(ctx context.Context, userID uuid.UUID, memberID uuid.UUID) error {
	ret := _m.Called(ctx, userID, memberID)
	return ret.Error(0)
}
