package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// AuthService is a mock of the gRPC handler's auth dependency.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (_m *AuthService) Login(ctx context.Context, phone string, password string) (model.LoginResult, error) {
	ret := _m.Called(ctx, phone, password)
	return ret.Get(0).(model.LoginResult), ret.Error(1)
}

func (_m *AuthService) SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.LoginResult), ret.Error(1)
}

// MembershipService is a mock of the gRPC handler's collections dependency.
type MembershipService struct {
	mock.Mock
}

func NewMembershipService(t testingT) *MembershipService {
	m := &MembershipService{}
	register(&m.Mock, t)
	return m
}

func (_m *MembershipService) ListMembers(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, userID, kind)
	var r0 []uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.([]uuid.UUID)
	}
	return r0, ret.Error(1)
}

func (_m *MembershipService) AddMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error {
	ret := _m.Called(ctx, userID, kind, memberID)
	return ret.Error(0)
}

func (_m *MembershipService) RemoveMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error {
	ret := _m.Called(ctx, userID, kind, memberID)
	return ret.Error(0)
}

// CatalogService is a mock of the gRPC handler's books dependency.
type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t testingT) *CatalogService {
	m := &CatalogService{}
	register(&m.Mock, t)
	return m
}

func (_m *CatalogService) GetBooks(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	ret := _m.Called(ctx, ids)
	var r0 []model.Book
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Book)
	}
	return r0, ret.Error(1)
}
