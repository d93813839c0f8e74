package qemviz

import (
	"fmt"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl64"
)

// LoadSTL reads a binary STL fragment.
func LoadSTL(path string) (*Mesh, error) {
	src, err := simplify.LoadBinarySTL(path)
	if err != nil {
		return nil, fmt.Errorf("could not load STL file %s: %w", path, err)
	}
	return meshFromSimplify(src), nil
}

func meshFromSimplify(src *simplify.Mesh) *Mesh {
	mesh := NewMesh()
	for _, t := range src.Triangles {
		mesh.AddTriangle(vecFromSimplify(t.V1), vecFromSimplify(t.V2), vecFromSimplify(t.V3))
	}
	return mesh
}

func vecFromSimplify(v simplify.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// simplifyBounds is the box around every triangle corner of src.
func simplifyBounds(src *simplify.Mesh) Box {
	box := EmptyBox()
	for _, t := range src.Triangles {
		box = box.Extend(vecFromSimplify(t.V1))
		box = box.Extend(vecFromSimplify(t.V2))
		box = box.Extend(vecFromSimplify(t.V3))
	}
	return box
}
