package enum

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// FilesystemEnumerator enumerates files named on the command line and,
// with recursion, the files below named directories.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) (*FilesystemEnumerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &FilesystemEnumerator{config: config}, nil
}

// walk is the state of one directory argument's traversal.
type walk struct {
	root    string
	ignore  *gitignore.GitIgnore
	visited map[string]bool // real paths of directories entered
	cb      Callback
}

// Enumerate visits each path in order. Directories are walked depth-first
// in lexical order, one file at a time.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	for _, path := range e.config.Paths {
		if err := e.enumeratePath(ctx, path, callback); err != nil {
			return err
		}
	}
	return nil
}

func (e *FilesystemEnumerator) enumeratePath(ctx context.Context, root string, callback Callback) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}

	// Files named explicitly are searched regardless of hidden or exclude rules.
	if !info.IsDir() {
		return e.processFile(ctx, root, info.Size(), callback)
	}
	if !e.config.Recursive {
		e.config.logger().Warn("skipping directory without recursion", "path", root)
		return nil
	}

	w := &walk{root: root, visited: make(map[string]bool), cb: callback}
	if !e.config.NoIgnore {
		// Load .gitignore patterns if present
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			w.ignore, err = gitignore.CompileIgnoreFile(gitignorePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", gitignorePath, err)
			}
		}
	}
	return e.walkDir(ctx, w, root)
}

func (e *FilesystemEnumerator) walkDir(ctx context.Context, w *walk, dir string) error {
	if e.config.FollowSymlinks {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		if w.visited[real] {
			e.config.logger().Debug("skipping directory cycle", "path", dir)
			return nil
		}
		w.visited[real] = true
	}

	// ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !e.config.IncludeHidden && isHidden(name) {
			continue
		}
		if e.config.excluded(name, rel) {
			e.config.logger().Debug("excluded", "path", path)
			continue
		}

		isDir := entry.IsDir()
		var size int64 = -1
		if entry.Type()&fs.ModeSymlink != 0 {
			if !e.config.FollowSymlinks {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			isDir = info.IsDir()
			size = info.Size()
		} else if !isDir && !entry.Type().IsRegular() {
			// sockets, devices and pipes
			continue
		}

		if w.ignore != nil {
			matchPath := rel
			if isDir {
				matchPath += "/"
			}
			if w.ignore.MatchesPath(matchPath) {
				continue
			}
		}

		if isDir {
			if err := e.walkDir(ctx, w, path); err != nil {
				return err
			}
			continue
		}

		if size < 0 {
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			size = info.Size()
		}
		if err := e.processFile(ctx, path, size, w.cb); err != nil {
			return err
		}
	}
	return nil
}

// processFile reads a single file and invokes the callback.
func (e *FilesystemEnumerator) processFile(ctx context.Context, path string, size int64, callback Callback) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if e.config.MaxFileSize > 0 && size > e.config.MaxFileSize {
		e.config.logger().Debug("skipping large file", "path", path, "size", size)
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if shouldExtract(e.config, getExtension(path)) {
		extracted, err := ExtractText(path, content, e.config.MaxFileSize)
		if err != nil {
			e.config.logger().Warn("failed to extract archive", "path", path, "error", err)
			return nil
		}
		for _, ec := range extracted {
			prov := types.ArchiveProvenance{
				ArchivePath: path,
				MemberPath:  ec.Name,
			}
			if err := callback(ec.Content, prov); err != nil {
				return err
			}
		}
		return nil
	}

	if isBinary(content) {
		e.config.logger().Debug("skipping binary file", "path", path)
		return nil
	}

	return callback(content, types.FileProvenance{FilePath: path})
}

// shouldExtract checks if a file type should be extracted based on config.
func shouldExtract(config Config, ext string) bool {
	if config.ExtractArchives == "" || !extractable[ext] {
		return false
	}
	if config.ExtractArchives == "all" {
		return true
	}
	kinds := strings.Split(strings.ToLower(config.ExtractArchives), ",")
	for _, k := range kinds {
		if strings.TrimSpace(k) == strings.TrimPrefix(ext, ".") {
			return true
		}
	}
	return false
}

// getExtension returns the lowercased extension including the dot.
func getExtension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := min(len(content), 8192)
	return bytes.IndexByte(content[:checkSize], 0) != -1
}
