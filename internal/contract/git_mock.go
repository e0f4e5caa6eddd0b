package contract

import (
	"context"

	"github.com/repominer/repominer/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient interface.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// ReadCommits implements the GitClient interface.
func (m *MockGitClient) ReadCommits(ctx context.Context, repoPath string, opts ReadOptions) ([]schema.Commit, error) {
	ret := m.Called(ctx, repoPath, opts)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}
