package qemviz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLODsSourceOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "QEM", "Tet")

	paths, err := GenerateLODs(tetrahedron(), "Tet", dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Tet_0.stl")}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "Tet_metadata.txt"))
	require.NoError(t, err)

	model, report := ParseBounds(string(data))
	require.Equal(t, 1, report.Accepted)
	// X is mirrored on read
	assertVec(t, mgl64.Vec3{-1, 0, 0}, model[0].Min())
	assertVec(t, mgl64.Vec3{0, 1, 1}, model[0].Max())
	assert.Equal(t, ClusterColor(0), model[0].Color)
}

// The written files feed straight into assembly.
func TestGenerateLODsThenAssemble(t *testing.T) {
	root := t.TempDir()
	dir := FragmentDir(root, "QEM", "Tet")

	_, err := GenerateLODs(tetrahedron(), "Tet", dir, 0)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Root = root
	opts.Name = "Tet"
	opts.Extension = ".stl"
	im := NewImporter(OSLister{}, NewAssembler(opts))

	attached, err := im.Tick()
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, "Tet_0", attached[0].LogicalName)
	require.NotNil(t, attached[0].Mesh)
	assert.Equal(t, 4, attached[0].Mesh.TriangleCount())
}

func TestGenerateLODsRejectsBadInput(t *testing.T) {
	_, err := GenerateLODs(tetrahedron(), "Tet", t.TempDir(), -1)
	assert.Error(t, err)

	_, err = GenerateLODs(simplify.NewMesh(nil), "Empty", t.TempDir(), 1)
	assert.Error(t, err)
}
