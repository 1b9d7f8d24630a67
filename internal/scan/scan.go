package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fileman/internal/services"
)

// Entry is a read-only snapshot of one regular file discovered under the
// source root. The modification time is captured once at scan time.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Options controls recursion and filtering during collection.
type Options struct {
	// MaxDepth bounds directory descent. 1 collects only files directly in
	// the root, 2 adds one level of subdirectories, and so on. 0 is unlimited.
	MaxDepth int
	// IncludeHidden also collects dotfiles and descends into dot directories.
	IncludeHidden bool
	// FollowSymlinks descends into directory symlinks. Symlinked files are
	// never collected regardless; only their targets hold real content.
	FollowSymlinks bool
	// Skip, when set, prunes any directory for which it returns true.
	Skip func(dir string) bool
}

// Collect recursively gathers every regular file under root in lexical walk
// order. The root must be an existing, readable directory.
func Collect(root string, opts Options) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "scan", "collect", "Source directory does not exist: "+root, err)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, services.Wrap(services.ErrPermission, "scan", "collect", "Source directory is not accessible: "+root, err)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "scan", "collect", "Source path is not a directory: "+root, nil)
	}

	c := collector{opts: opts, visited: make(map[string]struct{})}
	if err := c.walk(root, 1); err != nil {
		return nil, err
	}
	return c.entries, nil
}

type collector struct {
	opts    Options
	entries []Entry
	visited map[string]struct{}
}

func (c *collector) walk(dir string, depth int) error {
	if c.opts.Skip != nil && c.opts.Skip(dir) {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		if _, seen := c.visited[resolved]; seen {
			return nil
		}
		c.visited[resolved] = struct{}{}
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return services.Wrap(services.ErrPermission, "scan", "read dir", "Directory is not readable: "+dir, err)
		}
		return err
	}

	for _, item := range items {
		name := item.Name()
		if !c.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if item.Type()&fs.ModeSymlink != 0 {
			if !c.opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(path)
			if err != nil {
				// Broken link; nothing to organize.
				continue
			}
			if target.IsDir() {
				if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
					continue
				}
				if err := c.walk(path, depth+1); err != nil {
					return err
				}
			}
			continue
		}

		if item.IsDir() {
			if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
				continue
			}
			if err := c.walk(path, depth+1); err != nil {
				return err
			}
			continue
		}

		info, err := item.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed mid-scan.
				continue
			}
			return err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		c.entries = append(c.entries, Entry{Path: path, Size: info.Size(), ModTime: info.ModTime()})
	}
	return nil
}

// Count returns the number of regular files directly inside dir, ignoring
// subdirectory contents.
func Count(dir string) (int, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, services.Wrap(services.ErrNotFound, "scan", "count", "Directory does not exist: "+dir, err)
		}
		if errors.Is(err, fs.ErrPermission) {
			return 0, services.Wrap(services.ErrPermission, "scan", "count", "Directory is not readable: "+dir, err)
		}
		return 0, err
	}

	count := 0
	for _, item := range items {
		if item.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

// CountRecursive returns the number of regular files in the whole tree under
// dir, using the same traversal rules as Collect with default options.
func CountRecursive(dir string) (int, error) {
	entries, err := Collect(dir, Options{IncludeHidden: true})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
