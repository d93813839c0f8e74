package qemviz

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads every triangle primitive of a .gltf or .glb file into one
// mesh. Node transforms are not applied.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open glTF file %s: %w", path, err)
	}

	mesh := NewMesh()
	for _, m := range doc.Meshes {
		for _, primitive := range m.Primitives {
			// only triangle lists
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			if posIdx < 0 || posIdx >= len(doc.Accessors) {
				return nil, fmt.Errorf("accessor %d out of range in %s", posIdx, path)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("could not read positions in %s: %w", path, err)
			}

			var indices []uint32
			if primitive.Indices != nil {
				idx := *primitive.Indices
				if idx < 0 || idx >= len(doc.Accessors) {
					return nil, fmt.Errorf("accessor %d out of range in %s", idx, path)
				}
				indices, err = modeler.ReadIndices(doc, doc.Accessors[idx], nil)
				if err != nil {
					return nil, fmt.Errorf("could not read indices in %s: %w", path, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				var corners [3]mgl64.Vec3
				for c := 0; c < 3; c++ {
					idx := int(indices[i+c])
					if idx >= len(positions) {
						return nil, fmt.Errorf("index %d out of range in %s", idx, path)
					}
					p := positions[idx]
					corners[c] = mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
				}
				mesh.AddTriangle(corners[0], corners[1], corners[2])
			}
		}
	}

	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("no triangles found in %s", path)
	}
	return mesh, nil
}
