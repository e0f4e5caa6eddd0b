package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/repominer/repominer/schema"
)

// commitHeaderPrefix marks commit header lines in the log output.
const commitHeaderPrefix = "--"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// run executes a git command and returns its stdout output. Failures are
// classified into the shared error taxonomy.
func (c *LocalGitClient) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	if _, statErr := os.Stat(repoPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, fmt.Errorf("%w: %q does not exist. Verify the path", ErrRepositoryNotFound, repoPath)
		}
		return nil, fmt.Errorf("%w: cannot access %q: %v", ErrAccess, repoPath, statErr)
	}

	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, classifyGitFailure(repoPath, strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("%w: git could not be invoked: %v. Ensure Git is installed and available on your PATH", ErrAccess, err)
	}
	return out, nil
}

// classifyGitFailure maps git stderr onto the shared error taxonomy. Paths
// git cannot change into are reported the same as paths without a repository,
// since 'git -C' fails before any repository detection runs.
func classifyGitFailure(repoPath, stderr string) error {
	if strings.Contains(stderr, "not a git repository") || strings.Contains(stderr, "cannot change to") {
		return fmt.Errorf("%w: %q is not a Git repository. Verify the path or run 'git init'", ErrRepositoryNotFound, repoPath)
	}
	return fmt.Errorf("%w: git command failed in %q: %s", ErrAccess, repoPath, stderr)
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ReadCommits implements the GitClient interface. It runs a single
// 'git log --name-only' over the requested window and normalizes the output
// into commit records.
func (c *LocalGitClient) ReadCommits(ctx context.Context, repoPath string, opts ReadOptions) ([]schema.Commit, error) {
	args := []string{
		"log",
		"--name-only",
		"--pretty=format:" + commitHeaderPrefix + "%H|%an|%ae|%ad|%s",
		"--date=iso-strict",
	}
	if opts.SkipMerges {
		args = append(args, "--no-merges")
	}
	if opts.MaxCommits > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.MaxCommits))
	}
	if !opts.Start.IsZero() {
		args = append(args, "--since="+opts.Start.Format(DateTimeFormat))
	}
	if !opts.End.IsZero() {
		args = append(args, "--until="+opts.End.Format(DateTimeFormat))
	}

	out, err := c.run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return ParseCommitLog(out), nil
}

// ParseCommitLog parses 'git log --name-only' output produced with the
// header format above into normalized commit records. Only lines matching
// the full five-field header shape start a new commit; other lines,
// including file paths that happen to begin with the header marker, are
// attached to the preceding commit as changed files.
func ParseCommitLog(out []byte) []schema.Commit {
	var commits []schema.Commit
	var current *schema.Commit

	for _, l := range strings.Split(string(out), "\n") {
		l = strings.TrimRight(l, " \t\r")

		if strings.HasPrefix(l, commitHeaderPrefix) {
			if header := parseCommitHeader(l); header != nil {
				if current != nil {
					commits = append(commits, *current)
				}
				current = header
				continue
			}
		}
		if l == "" || current == nil {
			continue
		}
		current.Files = append(current.Files, l)
	}
	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}

// parseCommitHeader extracts a commit record from a header line of the form
// --hash|author|email|date|subject. Returns nil when the line is malformed.
func parseCommitHeader(line string) *schema.Commit {
	parts := strings.SplitN(line[len(commitHeaderPrefix):], "|", 5)
	if len(parts) != 5 {
		return nil
	}

	ts, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		ts = time.Time{}
	}

	return &schema.Commit{
		Hash:      parts[0],
		Author:    parts[1],
		Email:     parts[2],
		Timestamp: ts,
		Message:   schema.FirstLine(parts[4]),
	}
}
