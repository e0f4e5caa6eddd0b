package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/repominer/repominer/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 180
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	MaxCommitsCeiling   = 1_000_000
)

// CacheGranularity defines the time granularity for caching mined history.
// This ensures consistent cache key generation and time window alignment
// across the application and tests.
const CacheGranularity = time.Hour

// Config holds the runtime configuration for a mining run.
// This struct remains the "final, validated" config. The git client is
// passed alongside it through the call tree; nothing global caches the
// underlying tool's handle.
type Config struct {
	RepoPath   string
	StartTime  time.Time
	EndTime    time.Time
	MaxCommits int
	SkipMerges bool

	GroupKey    schema.GroupKey
	Period      schema.Period
	PathFilter  string
	Excludes    []string
	ResultLimit int
	Sort        schema.SortMode

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	GitBackend schema.GitBackend

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext
}

// Clone returns a copy of the config that can be mutated independently.
// The excludes slice is copied so overrides never leak into the base config.
func (c *Config) Clone() *Config {
	dup := *c
	dup.Excludes = append([]string(nil), c.Excludes...)
	return &dup
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Max            int    `mapstructure:"max"`
	SkipMerges     bool   `mapstructure:"skip-merges"`
	Filter         string `mapstructure:"filter"`
	Exclude        string `mapstructure:"exclude"`
	Limit          int    `mapstructure:"limit"`
	Sort           string `mapstructure:"sort"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	GitBackend     string `mapstructure:"git-backend"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	// --- Fields from activityCmd.Flags() ---
	Period string `mapstructure:"period"`
}

// GetCacheStartTime returns the configured start time, truncated to the
// caching granularity. This ensures consistent time window alignment across
// the application and tests.
func (c *Config) GetCacheStartTime() time.Time {
	return c.StartTime.Truncate(CacheGranularity)
}

// GetCacheEndTime returns the configured end time, truncated to the caching
// granularity.
func (c *Config) GetCacheEndTime() time.Time {
	return c.EndTime.Truncate(CacheGranularity)
}

// ReadOptions derives the history read constraints from the validated config.
func (c *Config) ReadOptions() ReadOptions {
	return ReadOptions{
		Start:      c.StartTime,
		End:        c.EndTime,
		MaxCommits: c.MaxCommits,
		SkipMerges: c.SkipMerges,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Validation failures wrap
// ErrConfiguration.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPathAndFilter(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for the non-file backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("%w: a connection string is required when using %s backend", ErrConfiguration, backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("%w: MySQL connection string must contain '@tcp(' for host:port specification", ErrConfiguration)
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("%w: MySQL connection string must contain '/' followed by database name", ErrConfiguration)
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%w: a connection string is required when using %s backend", ErrConfiguration, backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("%w: PostgreSQL connection string must contain 'host=' parameter", ErrConfiguration)
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("%w: PostgreSQL connection string must contain 'dbname=' parameter", ErrConfiguration)
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("%w: a connection string is required when using %s backend (e.g., localhost:6379)", ErrConfiguration, backend)
		}
	}
	return nil
}

// validateBackendConfigs validates cache and runs backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("%w: invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", ErrConfiguration, input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("%w: invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", ErrConfiguration, input.RunsBackend)
		}
		if cfg.RunsBackend == schema.RedisBackend {
			return fmt.Errorf("%w: the runs store requires a SQL backend (sqlite, mysql, postgresql)", ErrConfiguration)
		}
		cfg.RunsDBConnect = input.RunsDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}

		// Validate that cache and runs use different databases
		if cfg.CacheBackend == cfg.RunsBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			runsDBPath := cfg.RunsDBConnect
			if runsDBPath == "" {
				runsDBPath = GetRunsDBFilePath()
			}
			if cacheDBPath == runsDBPath {
				return fmt.Errorf("%w: cache and runs storage must use different SQLite database files. Both resolve to %q", ErrConfiguration, cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PathFilter = input.Filter
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SkipMerges = input.SkipMerges

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("%w: invalid --color value: %v", ErrConfiguration, err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("%w: limit must be greater than 0 and cannot exceed %d (received %d)", ErrConfiguration, MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. MaxCommits Validation ---
	if input.Max < 0 || input.Max > MaxCommitsCeiling {
		return fmt.Errorf("%w: max must be between 0 and %d (received %d)", ErrConfiguration, MaxCommitsCeiling, input.Max)
	}
	cfg.MaxCommits = input.Max

	// --- 3. Period Validation ---
	cfg.Period = schema.Period(strings.ToLower(input.Period))
	if cfg.Period == "" {
		cfg.Period = schema.MonthPeriod
	}
	if _, ok := schema.ValidPeriods[cfg.Period]; !ok {
		return fmt.Errorf("%w: invalid period '%s'. must be day, week, month", ErrConfiguration, input.Period)
	}

	// --- 4. Precision, Sort and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("%w: precision must be 1 or 2 (received %d)", ErrConfiguration, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Sort = schema.SortMode(strings.ToLower(input.Sort))
	if _, ok := schema.ValidSortModes[cfg.Sort]; !ok {
		return fmt.Errorf("%w: invalid sort '%s'. must be count or key", ErrConfiguration, input.Sort)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output format '%s'. must be text, csv, json, parquet", ErrConfiguration, cfg.Output)
	}

	// --- 5. Git Backend Validation ---
	cfg.GitBackend = schema.GitBackend(strings.ToLower(input.GitBackend))
	if _, ok := schema.ValidGitBackends[cfg.GitBackend]; !ok {
		return fmt.Errorf("%w: invalid git backend '%s'. must be cli or gogit", ErrConfiguration, input.GitBackend)
	}

	// --- 6. Storage Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 7. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".mp4", ".mov", ".webm", ".mp3", ".ogg", ".pdf", ".webp",
		".DS_Store",
		"dist/", "build/", "out/", "target/", "bin/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processTimeRange handles the date parsing and time range validation.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.EndTime = now
	cfg.StartTime = cfg.EndTime.Add(-DefaultLookbackDays * 24 * time.Hour)

	// --- Process Start Time ---
	if input.Start != "" {
		t, err := ParseTimeFlag(input.Start, now)
		if err != nil {
			return fmt.Errorf("%w: invalid start date: %v", ErrConfiguration, err)
		}
		cfg.StartTime = t
	}

	// --- Process End Time ---
	if input.End != "" {
		t, err := ParseTimeFlag(input.End, now)
		if err != nil {
			return fmt.Errorf("%w: invalid end date: %v", ErrConfiguration, err)
		}
		cfg.EndTime = t
	}

	// --- Final Validation ---
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("%w: start time (%s) cannot be after end time (%s)", ErrConfiguration,
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// resolveGitPathAndFilter resolves the Git repository path and sets the
// implicit path filter when a subdirectory was given.
func resolveGitPathAndFilter(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}

	cfg.RepoPath = gitRoot

	if cfg.PathFilter != "" { // User-provided --filter flag takes precedence
		return nil
	}

	if absSearchPath != gitRoot {
		relativePath, err := filepath.Rel(gitRoot, absSearchPath)
		if err != nil {
			return err
		}

		if relativePath != "." {
			filter := relativePath
			if statErr == nil && info.IsDir() {
				filter += "/"
			}
			cfg.PathFilter = strings.ReplaceAll(filter, string(os.PathSeparator), "/")
		}
	}

	return nil
}
