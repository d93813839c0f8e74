package qemviz

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fogleman/simplify"
)

// GenerateLODs writes src as <name>_0.stl, then levels further meshes, each
// simplified to half the triangles of the previous one, as <name>_<i>.stl.
// It finishes with <name>_metadata.txt holding one bounding box per written
// mesh. The fragment paths are returned in level order.
func GenerateLODs(src *simplify.Mesh, name, dir string, levels int) ([]string, error) {
	if levels < 0 {
		return nil, fmt.Errorf("levels must not be negative, got %d", levels)
	}
	if len(src.Triangles) == 0 {
		return nil, fmt.Errorf("source mesh %s has no triangles", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	var paths []string
	var boxes []Box
	mesh := src
	for i := 0; i <= levels; i++ {
		if i > 0 {
			mesh = mesh.Simplify(0.5)
		}
		p := filepath.Join(dir, name+"_"+strconv.Itoa(i)+".stl")
		if err := mesh.SaveBinarySTL(p); err != nil {
			return paths, fmt.Errorf("could not write level %d: %w", i, err)
		}
		paths = append(paths, p)
		boxes = append(boxes, simplifyBounds(mesh))
	}

	metaPath := filepath.Join(dir, name+"_metadata"+metadataExt)
	f, err := os.Create(metaPath)
	if err != nil {
		return paths, fmt.Errorf("could not create metadata file: %w", err)
	}
	defer f.Close()
	if err := WriteBounds(f, boxes); err != nil {
		return paths, err
	}
	return paths, f.Close()
}
