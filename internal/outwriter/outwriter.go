// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCommits prints normalized commit records using the configured output format.
func (ow *OutWriter) WriteCommits(commits []schema.Commit, cfg *contract.Config, duration time.Duration) error {
	return PrintCommits(commits, cfg, duration)
}

// WriteReport prints a ranked mining report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.MiningReport, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(report, cfg, duration)
}
