package contract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/repominer/repominer/schema"
)

// GoGitClient implements the GitClient interface with the pure-Go go-git
// library, so history can be read without a git binary on PATH.
type GoGitClient struct{}

var _ GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

// open opens the repository at the given path, detecting the .git directory
// from parent paths the way the git binary does.
func (c *GoGitClient) open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %q is not a Git repository. Verify the path or run 'git init'", ErrRepositoryNotFound, path)
	}
	if errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%w: cannot open repository at %q: %v", ErrAccess, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open repository at %q: %v", ErrAccess, path, err)
	}
	return repo, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := c.open(contextPath)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: repository at %q has no worktree: %v", ErrAccess, contextPath, err)
	}
	return wt.Filesystem.Root(), nil
}

// GetRepoHash implements the GitClient interface.
func (c *GoGitClient) GetRepoHash(_ context.Context, repoPath string) (string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve HEAD in %q: %v", ErrAccess, repoPath, err)
	}
	return ref.Hash().String(), nil
}

// ReadCommits implements the GitClient interface.
func (c *GoGitClient) ReadCommits(ctx context.Context, repoPath string, opts ReadOptions) ([]schema.Commit, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, err
	}

	ref, err := repo.Head()
	if err != nil {
		// A freshly initialized repository has no HEAD yet; that is an
		// empty history, not an access failure.
		return []schema.Commit{}, nil
	}

	logOpts := &git.LogOptions{From: ref.Hash()}
	if !opts.Start.IsZero() {
		since := opts.Start
		logOpts.Since = &since
	}
	if !opts.End.IsZero() {
		until := opts.End
		logOpts.Until = &until
	}

	cIter, err := repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read log of %q: %v", ErrAccess, repoPath, err)
	}

	var commits []schema.Commit
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.MaxCommits > 0 && len(commits) >= opts.MaxCommits {
			return storer.ErrStop
		}
		if opts.SkipMerges && c.NumParents() > 1 {
			return nil
		}

		stats, err := c.Stats()
		if err != nil {
			return err
		}
		files := make([]string, 0, len(stats))
		for _, s := range stats {
			files = append(files, s.Name)
		}

		commits = append(commits, schema.Commit{
			Hash:      c.Hash.String(),
			Author:    c.Author.Name,
			Email:     c.Author.Email,
			Timestamp: c.Author.When,
			Message:   schema.FirstLine(c.Message),
			Files:     files,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read log of %q: %v", ErrAccess, repoPath, err)
	}

	return commits, nil
}

// NewGitClient returns the history reader for the configured backend.
func NewGitClient(backend schema.GitBackend) GitClient {
	if backend == schema.GoGitGitBackend {
		return NewGoGitClient()
	}
	return NewLocalGitClient()
}
