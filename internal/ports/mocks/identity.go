package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/renato0307/gitlink/internal/domain"
)

// MockIdentityProvider is a testify mock of ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

type MockIdentityProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *MockIdentityProvider) EXPECT() *MockIdentityProvider_Expecter {
	return &MockIdentityProvider_Expecter{mock: &_m.Mock}
}

func (_m *MockIdentityProvider) InitiateAuth(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (_e *MockIdentityProvider_Expecter) InitiateAuth(ctx interface{}) *mock.Call {
	return _e.mock.On("InitiateAuth", ctx)
}

func (_m *MockIdentityProvider) Exchange(ctx context.Context, marker string) (domain.AuthGrant, error) {
	ret := _m.Called(ctx, marker)
	grant, _ := ret.Get(0).(domain.AuthGrant)
	return grant, ret.Error(1)
}

func (_e *MockIdentityProvider_Expecter) Exchange(ctx interface{}, marker interface{}) *mock.Call {
	return _e.mock.On("Exchange", ctx, marker)
}

// NewMockIdentityProvider creates a mock that asserts its expectations on cleanup
func NewMockIdentityProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
