package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/renato0307/gitlink/internal/domain"
)

// MockWorkspaceInspector is a testify mock of ports.WorkspaceInspector
type MockWorkspaceInspector struct {
	mock.Mock
}

type MockWorkspaceInspector_Expecter struct {
	mock *mock.Mock
}

func (_m *MockWorkspaceInspector) EXPECT() *MockWorkspaceInspector_Expecter {
	return &MockWorkspaceInspector_Expecter{mock: &_m.Mock}
}

func (_m *MockWorkspaceInspector) RecentCommits(ctx context.Context, limit int) ([]domain.RecentCommit, error) {
	ret := _m.Called(ctx, limit)
	commits, _ := ret.Get(0).([]domain.RecentCommit)
	return commits, ret.Error(1)
}

func (_e *MockWorkspaceInspector_Expecter) RecentCommits(ctx interface{}, limit interface{}) *mock.Call {
	return _e.mock.On("RecentCommits", ctx, limit)
}

func (_m *MockWorkspaceInspector) Status(ctx context.Context) (domain.WorkspaceStatus, error) {
	ret := _m.Called(ctx)
	status, _ := ret.Get(0).(domain.WorkspaceStatus)
	return status, ret.Error(1)
}

func (_e *MockWorkspaceInspector_Expecter) Status(ctx interface{}) *mock.Call {
	return _e.mock.On("Status", ctx)
}

// NewMockWorkspaceInspector creates a mock that asserts its expectations on cleanup
func NewMockWorkspaceInspector(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkspaceInspector {
	m := &MockWorkspaceInspector{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockWorkspaceSync is a testify mock of ports.WorkspaceSync
type MockWorkspaceSync struct {
	mock.Mock
}

type MockWorkspaceSync_Expecter struct {
	mock *mock.Mock
}

func (_m *MockWorkspaceSync) EXPECT() *MockWorkspaceSync_Expecter {
	return &MockWorkspaceSync_Expecter{mock: &_m.Mock}
}

func (_m *MockWorkspaceSync) Pull(ctx context.Context, repository, branch string) error {
	return _m.Called(ctx, repository, branch).Error(0)
}

func (_e *MockWorkspaceSync_Expecter) Pull(ctx interface{}, repository interface{}, branch interface{}) *mock.Call {
	return _e.mock.On("Pull", ctx, repository, branch)
}

// NewMockWorkspaceSync creates a mock that asserts its expectations on cleanup
func NewMockWorkspaceSync(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkspaceSync {
	m := &MockWorkspaceSync{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockMessageGenerator is a testify mock of ports.MessageGenerator
type MockMessageGenerator struct {
	mock.Mock
}

type MockMessageGenerator_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMessageGenerator) EXPECT() *MockMessageGenerator_Expecter {
	return &MockMessageGenerator_Expecter{mock: &_m.Mock}
}

func (_m *MockMessageGenerator) SummarizeChanges(ctx context.Context, files []domain.FileChange) (domain.CommitDraft, error) {
	ret := _m.Called(ctx, files)
	draft, _ := ret.Get(0).(domain.CommitDraft)
	return draft, ret.Error(1)
}

func (_e *MockMessageGenerator_Expecter) SummarizeChanges(ctx interface{}, files interface{}) *mock.Call {
	return _e.mock.On("SummarizeChanges", ctx, files)
}

// NewMockMessageGenerator creates a mock that asserts its expectations on cleanup
func NewMockMessageGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageGenerator {
	m := &MockMessageGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockCommitPusher is a testify mock of ports.CommitPusher
type MockCommitPusher struct {
	mock.Mock
}

type MockCommitPusher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCommitPusher) EXPECT() *MockCommitPusher_Expecter {
	return &MockCommitPusher_Expecter{mock: &_m.Mock}
}

func (_m *MockCommitPusher) CommitAndPush(ctx context.Context, repository string, message domain.CommitDraft, files []domain.FileChange) (domain.CommitResult, error) {
	ret := _m.Called(ctx, repository, message, files)
	result, _ := ret.Get(0).(domain.CommitResult)
	return result, ret.Error(1)
}

func (_e *MockCommitPusher_Expecter) CommitAndPush(ctx interface{}, repository interface{}, message interface{}, files interface{}) *mock.Call {
	return _e.mock.On("CommitAndPush", ctx, repository, message, files)
}

// NewMockCommitPusher creates a mock that asserts its expectations on cleanup
func NewMockCommitPusher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCommitPusher {
	m := &MockCommitPusher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
