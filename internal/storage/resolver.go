package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("file not found")

// Resolver finds files across an ordered set of upload roots.
// The first root holding a name wins; roots are never merged.
type Resolver struct {
	dirs []string
}

func NewResolver(dirs ...string) *Resolver {
	cleaned := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		cleaned = append(cleaned, filepath.Clean(dir))
	}
	return &Resolver{dirs: cleaned}
}

func (r *Resolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// Locate returns the path of the first readable copy of name.
func (r *Resolver) Locate(name string) (string, error) {
	if !ValidFilename(name) {
		return "", ErrInvalidName
	}
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, name)
		if readable(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Remove unlinks name from the first root that has it and returns the removed path.
// A missing file moves on to the next root; any other failure stops the walk.
func (r *Resolver) Remove(name string) (string, error) {
	if !ValidFilename(name) {
		return "", ErrInvalidName
	}
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, name)
		err := os.Remove(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("remove %s: %w", candidate, err)
		}
	}
	return "", ErrNotFound
}

// LocateStatic resolves a slash separated path relative to each root.
// Nested paths are allowed, anything escaping a root is not.
func (r *Resolver) LocateStatic(rel string) (string, error) {
	trimmed := strings.TrimSpace(rel)
	if trimmed == "" || strings.Contains(trimmed, "..") || strings.ContainsRune(trimmed, 0) {
		return "", ErrInvalidName
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if cleanRel == "" {
		return "", ErrInvalidName
	}
	// dotfiles are never served
	for _, segment := range strings.Split(cleanRel, "/") {
		if strings.HasPrefix(segment, ".") {
			return "", ErrNotFound
		}
	}

	for _, dir := range r.dirs {
		target := filepath.Clean(filepath.Join(dir, filepath.FromSlash(cleanRel)))
		if !strings.HasPrefix(target, dir+string(os.PathSeparator)) {
			continue
		}
		if readable(target) {
			return target, nil
		}
	}
	return "", ErrNotFound
}

func readable(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
