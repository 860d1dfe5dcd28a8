// Package mocks holds testify mocks for the interfaces consumed by the
// server packages.
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
