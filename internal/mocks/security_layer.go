package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

var _ model.SecurityLayer = (*SecurityLayer)(nil)

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (_m *SecurityLayer) Listen(ctx context.Context, addr string) (net.Listener, error) {
	ret := _m.Called(ctx, addr)
	var r0 net.Listener
	if v := ret.Get(0); v != nil {
		r0 = v.(net.Listener)
	}
	return r0, ret.Error(1)
}
