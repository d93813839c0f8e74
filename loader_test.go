package qemviz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubePLY = `ply
format ascii 1.0
comment unit cube
element vertex 8
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 6
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 0 0 255 0 0
1 1 0 255 0 0
0 1 0 255 0 0
0 0 1 0 255 0
1 0 1 0 255 0
1 1 1 0 255 0
0 1 1 0 255 0
4 0 3 2 1
4 4 5 6 7
4 0 1 5 4
4 1 2 6 5
4 2 3 7 6
4 3 0 4 7
`

func TestLoadPLYReader(t *testing.T) {
	mesh, err := LoadPLYReader(strings.NewReader(cubePLY))
	require.NoError(t, err)

	assert.Len(t, mesh.Points, 8)
	assert.Equal(t, 12, mesh.TriangleCount())

	box, ok := mesh.Bounds()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, box.Min)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, box.Max)
}

func TestLoadPLYReaderErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "no magic", data: "format ascii 1.0\nend_header\n"},
		{name: "binary", data: "ply\nformat binary_little_endian 1.0\nelement vertex 0\nend_header\n"},
		{name: "no xyz", data: "ply\nformat ascii 1.0\nelement vertex 1\nproperty float u\nend_header\n0\n"},
		{name: "truncated vertices", data: "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{name: "negative face count", data: "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n-1 0 1 2\n"},
		{name: "two vertex face", data: "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n2 0 1\n"},
		{name: "huge vertex count", data: "ply\nformat ascii 1.0\nelement vertex 9000000000000\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{name: "index out of range", data: "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadPLYReader(strings.NewReader(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadOBJReader(t *testing.T) {
	data := `# quad and a triangle using negative indices
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
v 0 0 3
f -1 -4 -5
`
	mesh, err := LoadOBJReader(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.TriangleCount())
	assert.Len(t, mesh.Points, 5)

	box, ok := mesh.Bounds()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{2, 2, 3}, box.Max)
}

func TestLoadOBJReaderBadIndex(t *testing.T) {
	_, err := LoadOBJReader(strings.NewReader("v 0 0 0\nf 1 2 3\n"))
	assert.Error(t, err)
}

func tetrahedron() *simplify.Mesh {
	a := simplify.Vector{X: 0, Y: 0, Z: 0}
	b := simplify.Vector{X: 1, Y: 0, Z: 0}
	c := simplify.Vector{X: 0, Y: 1, Z: 0}
	d := simplify.Vector{X: 0, Y: 0, Z: 1}
	return simplify.NewMesh([]*simplify.Triangle{
		{V1: a, V2: c, V3: b},
		{V1: a, V2: b, V3: d},
		{V1: a, V2: d, V3: c},
		{V1: b, V2: c, V3: d},
	})
}

func TestLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Tet_0.stl")
	require.NoError(t, tetrahedron().SaveBinarySTL(path))

	mesh, err := LoadSTL(path)
	require.NoError(t, err)
	assert.Equal(t, 4, mesh.TriangleCount())
	assert.Len(t, mesh.Points, 4)
}

func TestLoadGLTF(t *testing.T) {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	indices := modeler.WriteIndices(doc, []uint16{0, 2, 1, 0, 1, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "Tet",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
		}},
	}}

	path := filepath.Join(t.TempDir(), "Tet_0.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	mesh, err := LoadGLTF(path)
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.TriangleCount())

	box, ok := mesh.Bounds()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, box.Max)
}

func TestLoadGLTFAccessorOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo_0.gltf")
	data := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	var err error
	assert.NotPanics(t, func() { _, err = LoadGLTF(path) })
	assert.ErrorContains(t, err, "accessor 7 out of range")
}

func TestPresenceLoader(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "Foo_0.fbx")
	empty := filepath.Join(dir, "Foo_1.fbx")
	require.NoError(t, os.WriteFile(full, []byte("Kaydara FBX Binary"), 0o644))
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	mesh, err := PresenceLoader{}.Load(full)
	assert.NoError(t, err)
	assert.Nil(t, mesh)

	_, err = PresenceLoader{}.Load(empty)
	assert.Error(t, err)

	_, err = PresenceLoader{}.Load(filepath.Join(dir, "Foo_2.fbx"))
	assert.Error(t, err)

	_, err = PresenceLoader{}.Load(dir)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	ply := filepath.Join(dir, "Cube_0.PLY")
	require.NoError(t, os.WriteFile(ply, []byte(cubePLY), 0o644))

	r := NewRegistry()
	mesh, err := r.Load(ply)
	require.NoError(t, err)
	assert.Equal(t, 12, mesh.TriangleCount())

	_, err = r.Load(filepath.Join(dir, "Cube_0.usdz"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMeshAddPointDeduplicates(t *testing.T) {
	m := NewMesh()
	assert.Equal(t, 0, m.AddPoint(mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, 1, m.AddPoint(mgl64.Vec3{3, 2, 1}))
	assert.Equal(t, 0, m.AddPoint(mgl64.Vec3{1, 2, 3}))

	// degenerate triangles are dropped
	m.AddTriangle(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 0})
	assert.Equal(t, 0, m.TriangleCount())

	_, ok := NewMesh().Bounds()
	assert.False(t, ok)
}

func TestAssembleWithRegistry(t *testing.T) {
	badFace := strings.Replace(cubePLY, "4 0 3 2 1\n", "-1 0 3 2\n", 1)
	files := []struct {
		name string
		data string
	}{
		{name: "Cube_0.ply", data: badFace},
		{name: "Cube_1.ply", data: cubePLY},
		{name: "Cube_2.ply", data: "ply\nformat binary_little_endian 1.0\n"},
		{name: "Cube_3.ply", data: cubePLY},
	}
	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.name), []byte(f.data), 0o644))
	}

	opts := DefaultOptions()
	opts.Extension = ".ply"
	a := NewAssembler(opts)

	listing, err := Scan(OSLister{}, dir)
	require.NoError(t, err)

	var attached []FragmentRecord
	require.NotPanics(t, func() { _, attached = a.Assemble("Cube", nil, listing) })
	require.Len(t, attached, 2)
	assert.Equal(t, []string{"Cube_1", "Cube_3"}, namesOf(attached))
	assert.Equal(t, []int{0, 1}, slotsOf(attached))
	require.NotNil(t, attached[1].Mesh)
	assert.Equal(t, 12, attached[1].Mesh.TriangleCount())
}

func TestAssembleSkipsCorruptGLTF(t *testing.T) {
	dir := t.TempDir()
	bad := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Tet_0.gltf"), []byte(bad), 0o644))

	opts := DefaultOptions()
	opts.Extension = ".gltf"
	listing, err := Scan(OSLister{}, dir)
	require.NoError(t, err)

	var attached []FragmentRecord
	require.NotPanics(t, func() { _, attached = NewAssembler(opts).Assemble("Tet", nil, listing) })
	assert.Empty(t, attached)
}
