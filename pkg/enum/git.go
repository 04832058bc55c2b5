package enum

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// GitEnumerator enumerates the files of one revision of a git repository
// without touching the worktree.
type GitEnumerator struct {
	config Config
	// RepoPath is any path inside the repository.
	RepoPath string
	// Revision is resolved with git revision syntax (defaults to HEAD).
	Revision string
}

// NewGitEnumerator creates a new git enumerator. config.Paths are treated
// as path prefixes inside the repository.
func NewGitEnumerator(config Config, repoPath, revision string) (*GitEnumerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if revision == "" {
		revision = "HEAD"
	}
	if repoPath == "" {
		repoPath = "."
	}
	return &GitEnumerator{
		config:   config,
		RepoPath: repoPath,
		Revision: revision,
	}, nil
}

// Enumerate walks the revision's tree in tree order.
func (e *GitEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	repo, err := git.PlainOpenWithOptions(e.RepoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(e.Revision))
	if err != nil {
		return fmt.Errorf("failed to resolve revision %s: %w", e.Revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return fmt.Errorf("failed to get commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to get tree: %w", err)
	}

	prefixes := normalizePrefixes(e.config.Paths)

	err = tree.Files().ForEach(func(f *object.File) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !underAny(f.Name, prefixes) {
			return nil
		}
		if !e.config.IncludeHidden && hasHiddenComponent(f.Name) {
			return nil
		}
		if e.config.excluded(path.Base(f.Name), f.Name) {
			return nil
		}
		if e.config.MaxFileSize > 0 && f.Size > e.config.MaxFileSize {
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return fmt.Errorf("failed to get contents of %s: %w", f.Name, err)
		}
		if isBinary([]byte(content)) {
			return nil
		}

		prov := types.GitProvenance{
			RepoPath: e.RepoPath,
			Revision: e.Revision,
			CommitID: commit.Hash.String(),
			BlobPath: f.Name,
		}
		return callback([]byte(content), prov)
	})
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}
	return nil
}

func normalizePrefixes(paths []string) []string {
	var out []string
	for _, p := range paths {
		p = strings.Trim(path.Clean(strings.ReplaceAll(p, `\`, "/")), "/")
		if p == "." || p == "" {
			return nil
		}
		out = append(out, p)
	}
	return out
}

func underAny(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if name == p || strings.HasPrefix(name, p+"/") {
			return true
		}
	}
	return false
}

func hasHiddenComponent(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}
