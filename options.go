package qemviz

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidOptions = errors.New("invalid options")

// Options configures discovery, placement and bounds selection.
type Options struct {
	// Root and Category locate fragment directories: <Root>/<Category>/<Name>.
	Root     string `yaml:"root"`
	Category string `yaml:"category"`
	// Name is the logical object name. Empty disables assembly.
	Name string `yaml:"name"`
	// Extension of fragment files, including the dot.
	Extension string `yaml:"extension"`

	ObjectOffset float64 `yaml:"object_offset"` // lateral spacing between fragments
	RotationY    float64 `yaml:"rotation_y"`    // yaw in degrees
	Scale        float64 `yaml:"scale"`
	ParentOffset float64 `yaml:"parent_offset"` // container position on Z

	// SelectedIndex picks one bounding region (1-based); 0 shows all.
	SelectedIndex uint    `yaml:"selected_index"`
	FillAlpha     float64 `yaml:"fill_alpha"`
}

func DefaultOptions() Options {
	return Options{
		Root:         filepath.Join("Assets", "Resources"),
		Category:     "QEM",
		Extension:    ".fbx",
		ObjectOffset: 3,
		RotationY:    0,
		Scale:        1,
		ParentOffset: 0,
		FillAlpha:    0.15,
	}
}

func (o Options) Validate() error {
	if o.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidOptions, o.Scale)
	}
	if o.FillAlpha < 0 || o.FillAlpha > 1 {
		return fmt.Errorf("%w: fill_alpha must be within [0, 1], got %v", ErrInvalidOptions, o.FillAlpha)
	}
	if !strings.HasPrefix(o.Extension, ".") || len(o.Extension) < 2 {
		return fmt.Errorf("%w: extension must start with a dot, got %q", ErrInvalidOptions, o.Extension)
	}
	if strings.ContainsAny(o.Name, `/\`) {
		return fmt.Errorf("%w: name must not contain path separators, got %q", ErrInvalidOptions, o.Name)
	}
	return nil
}

// FragmentDir is the directory holding the fragments of the configured object.
func (o Options) FragmentDir() string {
	return FragmentDir(o.Root, o.Category, o.Name)
}

// ParseOptions decodes YAML on top of the defaults. Keys left out keep their
// default value.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file: %w", err)
	}
	return ParseOptions(data)
}
