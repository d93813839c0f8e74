package qemviz

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

var ErrResourceUnavailable = errors.New("metadata resource unavailable")

// extension the generator gives metadata files; logical paths omit it
const metadataExt = ".txt"

// MetadataPath builds the logical resource path of an object's bounds
// metadata: <category>/<group>/<object>_metadata.
func MetadataPath(category, group, object string) string {
	return path.Join(category, group, object+"_metadata")
}

// LoadBounds reads the resource from fsys, trying the logical path first and
// then the path with the generator's extension.
func LoadBounds(fsys fs.FS, resource string) (BoundsModel, ParseReport, error) {
	for _, name := range []string{resource, resource + metadataExt} {
		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, ParseReport{}, fmt.Errorf("could not open %s: %w", name, err)
		}
		model, report, err := ParseBoundsReader(f)
		f.Close()
		return model, report, err
	}
	return nil, ParseReport{}, fmt.Errorf("%w: %s", ErrResourceUnavailable, resource)
}

// BoundsCache keeps the parsed model of one object until invalidated. The
// caller decides when to invalidate (disable, config change).
type BoundsCache struct {
	FS       fs.FS
	Resource string
	Logger   *slog.Logger
	Metrics  *Metrics

	model BoundsModel
}

func NewBoundsCache(fsys fs.FS, resource string) *BoundsCache {
	return &BoundsCache{FS: fsys, Resource: resource, Logger: NopLogger()}
}

// Get returns the cached model, loading it when empty. A failed load leaves
// the cache empty so the next call retries.
func (c *BoundsCache) Get() BoundsModel {
	if c.model != nil {
		return c.model
	}

	model, report, err := LoadBounds(c.FS, c.Resource)
	if err != nil {
		if errors.Is(err, ErrResourceUnavailable) {
			c.Metrics.resourceUnavailable()
		}
		c.logger().Error("failed to load bounds metadata", "resource", c.Resource, "error", err)
		return nil
	}

	c.Metrics.observeParse(report)
	c.logger().Info("loaded bounds", "resource", c.Resource, "regions", report.Accepted, "skipped", report.Skipped)
	if model == nil {
		model = BoundsModel{}
	}
	c.model = model
	return c.model
}

// Visible applies the selection index to the cached model.
func (c *BoundsCache) Visible(index uint) BoundsModel {
	return c.Get().Select(index)
}

func (c *BoundsCache) Invalidate() {
	c.model = nil
}

func (c *BoundsCache) logger() *slog.Logger {
	if c.Logger == nil {
		return NopLogger()
	}
	return c.Logger
}
