package contract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/schema"
)

// newRawInput returns raw inputs matching the flag defaults.
func newRawInput(repoPath string) *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:  repoPath,
		Max:          0,
		Limit:        DefaultResultLimit,
		Sort:         "count",
		Output:       "text",
		Precision:    DefaultPrecision,
		Color:        "yes",
		GitBackend:   "cli",
		CacheBackend: "sqlite",
		RunsBackend:  "sqlite",
		Period:       "month",
	}
}

func newMockForRoot(root string) *MockGitClient {
	client := &MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return(root, nil)
	return client
}

func TestProcessAndValidateDefaults(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{}
	client := newMockForRoot(root)

	err := ProcessAndValidate(context.Background(), cfg, client, newRawInput(root))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.RepoPath)
	assert.Empty(t, cfg.PathFilter)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, schema.CountSort, cfg.Sort)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.MonthPeriod, cfg.Period)
	assert.Equal(t, schema.CLIGitBackend, cfg.GitBackend)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseColors)
	assert.NotEmpty(t, cfg.Excludes) // default exclude list applied

	// Default window is DefaultLookbackDays long.
	window := cfg.EndTime.Sub(cfg.StartTime)
	assert.Equal(t, time.Duration(DefaultLookbackDays)*24*time.Hour, window)
}

func TestProcessAndValidateSubdirectoryFilter(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg", "core")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	cfg := &Config{}
	err := ProcessAndValidate(context.Background(), cfg, newMockForRoot(root), newRawInput(sub))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.RepoPath)
	assert.Equal(t, "pkg/core/", cfg.PathFilter)
}

func TestProcessAndValidateExplicitFilterWins(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	input := newRawInput(sub)
	input.Filter = "cmd/"

	cfg := &Config{}
	err := ProcessAndValidate(context.Background(), cfg, newMockForRoot(root), input)
	require.NoError(t, err)
	assert.Equal(t, "cmd/", cfg.PathFilter)
}

func TestProcessAndValidateTimeRange(t *testing.T) {
	root := t.TempDir()
	client := newMockForRoot(root)

	t.Run("absolute window", func(t *testing.T) {
		input := newRawInput(root)
		input.Start = "2025-01-01T00:00:00Z"
		input.End = "2025-02-01T00:00:00Z"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, client, input))
		assert.Equal(t, 2025, cfg.StartTime.Year())
		assert.Equal(t, time.February, cfg.EndTime.Month())
	})

	t.Run("relative start", func(t *testing.T) {
		input := newRawInput(root)
		input.Start = "2 weeks ago"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, client, input))
		assert.WithinDuration(t, time.Now().Add(-14*24*time.Hour), cfg.StartTime, time.Minute)
	})

	t.Run("start after end", func(t *testing.T) {
		input := newRawInput(root)
		input.Start = "2025-02-01T00:00:00Z"
		input.End = "2025-01-01T00:00:00Z"

		err := ProcessAndValidate(context.Background(), &Config{}, client, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("bad date", func(t *testing.T) {
		input := newRawInput(root)
		input.Start = "last tuesday"

		err := ProcessAndValidate(context.Background(), &Config{}, client, input)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestProcessAndValidateRejectsBadInputs(t *testing.T) {
	root := t.TempDir()
	client := newMockForRoot(root)

	mutations := map[string]func(*ConfigRawInput){
		"zero limit":         func(in *ConfigRawInput) { in.Limit = 0 },
		"excessive limit":    func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
		"negative max":       func(in *ConfigRawInput) { in.Max = -5 },
		"bad sort":           func(in *ConfigRawInput) { in.Sort = "alphabetical" },
		"bad output":         func(in *ConfigRawInput) { in.Output = "xml" },
		"bad period":         func(in *ConfigRawInput) { in.Period = "fortnight" },
		"bad precision":      func(in *ConfigRawInput) { in.Precision = 9 },
		"bad color":          func(in *ConfigRawInput) { in.Color = "maybe" },
		"bad git backend":    func(in *ConfigRawInput) { in.GitBackend = "svn" },
		"bad cache backend":  func(in *ConfigRawInput) { in.CacheBackend = "etcd" },
		"redis runs backend": func(in *ConfigRawInput) { in.RunsBackend = "redis" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			input := newRawInput(root)
			mutate(input)
			err := ProcessAndValidate(context.Background(), &Config{}, client, input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestProcessAndValidateExcludes(t *testing.T) {
	root := t.TempDir()
	input := newRawInput(root)
	input.Exclude = "vendor/, generated/, *.pb.go,"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, newMockForRoot(root), input))

	assert.Contains(t, cfg.Excludes, "vendor/")
	assert.Contains(t, cfg.Excludes, "generated/")
	assert.Contains(t, cfg.Excludes, "*.pb.go")
	assert.Contains(t, cfg.Excludes, "go.sum") // defaults survive
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	testCases := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/miner", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/miner", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=miner sslmode=disable", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"redis valid", schema.RedisBackend, "localhost:6379", false},
		{"redis empty", schema.RedisBackend, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tc.backend, tc.connStr)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateRepositoryNotFound(t *testing.T) {
	client := &MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).
		Return("", ErrRepositoryNotFound)

	err := ProcessAndValidate(context.Background(), &Config{}, client, newRawInput(t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestConfigCacheTimes(t *testing.T) {
	cfg := &Config{
		StartTime: time.Date(2025, 5, 1, 10, 42, 13, 0, time.UTC),
		EndTime:   time.Date(2025, 5, 2, 23, 59, 59, 0, time.UTC),
	}
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), cfg.GetCacheStartTime())
	assert.Equal(t, time.Date(2025, 5, 2, 23, 0, 0, 0, time.UTC), cfg.GetCacheEndTime())
}

func TestConfigReadOptions(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	end := time.Now()
	cfg := &Config{StartTime: start, EndTime: end, MaxCommits: 50, SkipMerges: true}

	opts := cfg.ReadOptions()
	assert.Equal(t, start, opts.Start)
	assert.Equal(t, end, opts.End)
	assert.Equal(t, 50, opts.MaxCommits)
	assert.True(t, opts.SkipMerges)
}
