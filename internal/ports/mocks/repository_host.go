package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/renato0307/gitlink/internal/domain"
)

// MockRepositoryHost is a testify mock of ports.RepositoryHost
type MockRepositoryHost struct {
	mock.Mock
}

type MockRepositoryHost_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRepositoryHost) EXPECT() *MockRepositoryHost_Expecter {
	return &MockRepositoryHost_Expecter{mock: &_m.Mock}
}

func (_m *MockRepositoryHost) CreateRepository(ctx context.Context, orgID, name string) (domain.ConnectedRepository, error) {
	ret := _m.Called(ctx, orgID, name)
	repo, _ := ret.Get(0).(domain.ConnectedRepository)
	return repo, ret.Error(1)
}

func (_e *MockRepositoryHost_Expecter) CreateRepository(ctx interface{}, orgID interface{}, name interface{}) *mock.Call {
	return _e.mock.On("CreateRepository", ctx, orgID, name)
}

// NewMockRepositoryHost creates a mock that asserts its expectations on cleanup
func NewMockRepositoryHost(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryHost {
	m := &MockRepositoryHost{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockOrganizationDirectory is a testify mock of ports.OrganizationDirectory
type MockOrganizationDirectory struct {
	mock.Mock
}

type MockOrganizationDirectory_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOrganizationDirectory) EXPECT() *MockOrganizationDirectory_Expecter {
	return &MockOrganizationDirectory_Expecter{mock: &_m.Mock}
}

func (_m *MockOrganizationDirectory) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	ret := _m.Called(ctx)
	orgs, _ := ret.Get(0).([]domain.Organization)
	return orgs, ret.Error(1)
}

func (_e *MockOrganizationDirectory_Expecter) ListOrganizations(ctx interface{}) *mock.Call {
	return _e.mock.On("ListOrganizations", ctx)
}

// NewMockOrganizationDirectory creates a mock that asserts its expectations on cleanup
func NewMockOrganizationDirectory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrganizationDirectory {
	m := &MockOrganizationDirectory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
