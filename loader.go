package qemviz

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported fragment format")

// FragmentLoader loads the geometry of one fragment file. A loader may
// return a nil mesh when it only confirms the file is usable.
type FragmentLoader interface {
	Load(path string) (*Mesh, error)
}

// LoaderFunc adapts a function to FragmentLoader.
type LoaderFunc func(path string) (*Mesh, error)

func (f LoaderFunc) Load(path string) (*Mesh, error) {
	return f(path)
}

// PresenceLoader accepts any readable regular file without parsing it. It is
// used for formats the host engine imports itself (.fbx).
type PresenceLoader struct{}

func (PresenceLoader) Load(path string) (*Mesh, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat fragment %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("fragment %s is not a regular file", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("fragment %s is empty", path)
	}
	return nil, nil
}

// Registry picks a loader by file extension (case-insensitive).
type Registry struct {
	loaders map[string]FragmentLoader
}

// NewRegistry returns a registry with every built-in format.
func NewRegistry() *Registry {
	r := &Registry{loaders: make(map[string]FragmentLoader)}
	r.Register(".ply", LoaderFunc(LoadPLY))
	r.Register(".obj", LoaderFunc(LoadOBJ))
	r.Register(".stl", LoaderFunc(LoadSTL))
	r.Register(".gltf", LoaderFunc(LoadGLTF))
	r.Register(".glb", LoaderFunc(LoadGLTF))
	r.Register(".fbx", PresenceLoader{})
	return r
}

func (r *Registry) Register(ext string, l FragmentLoader) {
	r.loaders[strings.ToLower(ext)] = l
}

func (r *Registry) Load(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return l.Load(path)
}
