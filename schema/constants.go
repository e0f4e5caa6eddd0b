package schema

// Custom string types for type safety.
type (
	// GroupKey selects the aggregation dimension.
	GroupKey string

	// Period selects the bucket size for date grouping.
	Period string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the backend for durable storage.
	DatabaseBackend string

	// GitBackend selects the history reader implementation.
	GitBackend string

	// SortMode controls how ranked groups are ordered.
	SortMode string
)

// All grouping dimensions supported.
const (
	AuthorKey GroupKey = "author" // default
	DateKey   GroupKey = "date"
	FileKey   GroupKey = "file"
)

// All date bucket periods supported.
const (
	DayPeriod   Period = "day"
	WeekPeriod  Period = "week"
	MonthPeriod Period = "month" // default
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// All history reader backends supported.
const (
	CLIGitBackend   GitBackend = "cli" // default
	GoGitGitBackend GitBackend = "gogit"
)

// All sort modes supported.
const (
	CountSort SortMode = "count" // default
	KeySort   SortMode = "key"
)

// ValidGroupKeys lists all valid grouping dimensions.
var ValidGroupKeys = map[GroupKey]struct{}{
	AuthorKey: {},
	DateKey:   {},
	FileKey:   {},
}

// ValidPeriods lists all valid date bucket periods.
var ValidPeriods = map[Period]struct{}{
	DayPeriod:   {},
	WeekPeriod:  {},
	MonthPeriod: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidGitBackends lists all valid history reader backends.
var ValidGitBackends = map[GitBackend]struct{}{
	CLIGitBackend:   {},
	GoGitGitBackend: {},
}

// ValidSortModes lists all valid sort modes.
var ValidSortModes = map[SortMode]struct{}{
	CountSort: {},
	KeySort:   {},
}
