package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
)

// Activity label constants.
const (
	HighValue     = "High"     // High activity
	ModerateValue = "Moderate" // Moderate activity
	LowValue      = "Low"      // Low activity
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgRed, color.Bold) // highColor marks groups dominating the history.
	ModerateColor = color.New(color.FgYellow)          // moderateColor marks average activity.
	LowColor      = color.New(color.FgCyan)            // lowColor marks informational / low-activity groups.
)

// GetPlainLabel returns a plain text label indicating the activity level
// based on a group's share of the commit total. This is the core logic used
// for CSV, JSON, and table printing.
func GetPlainLabel(share float64) string {
	switch {
	case share >= 25:
		return HighValue
	case share >= 5:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(share float64) string {
	text := GetPlainLabel(share)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude
// patterns. Glob patterns (including '**') are matched with doublestar,
// against the full path and the base filename. Patterns ending with '/' are
// treated as prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. A user can provide patterns like "vendor/",
// "node_modules/", "*.min.js", "docs/**/*.md".
func ShouldIgnore(path string, excludes []string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			if ok, err := doublestar.Match(ex, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := doublestar.Match(ex, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for commit cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repominer_cache.db"
	}
	return filepath.Join(homeDir, ".repominer_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repominer_runs.db"
	}
	return filepath.Join(homeDir, ".repominer_runs.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
