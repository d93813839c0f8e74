package qemviz

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Listing is the file list of a fragment directory, in listing order.
type Listing struct {
	Dir   string
	Paths []string
}

// FragmentDir is <root>/<category>/<object>.
func FragmentDir(root, category, object string) string {
	return filepath.Join(root, category, object)
}

// DirLister lists the regular files of a directory. It returns an error
// matching fs.ErrNotExist when the directory is missing.
type DirLister interface {
	List(dir string) ([]string, error)
}

// OSLister lists directories on the local filesystem, sorted by name.
type OSLister struct{}

func (OSLister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return regularFiles(entries, func(name string) string { return filepath.Join(dir, name) }), nil
}

// FSLister lists directories of an fs.FS, sorted by name.
type FSLister struct {
	FS fs.FS
}

func (l FSLister) List(dir string) ([]string, error) {
	dir = filepath.ToSlash(dir)
	entries, err := fs.ReadDir(l.FS, dir)
	if err != nil {
		return nil, err
	}
	return regularFiles(entries, func(name string) string { return path.Join(dir, name) }), nil
}

func regularFiles(entries []fs.DirEntry, join func(string) string) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, join(e.Name()))
	}
	return paths
}

// Scan lists dir. A missing directory is not an error: it returns a nil
// listing, meaning fragments have not been generated yet.
func Scan(l DirLister, dir string) (*Listing, error) {
	paths, err := l.List(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not list fragment directory %s: %w", dir, err)
	}
	return &Listing{Dir: dir, Paths: paths}, nil
}
