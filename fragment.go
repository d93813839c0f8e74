package qemviz

import (
	"path"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Placement is the local transform of a fragment under its container.
type Placement struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// PlacementFor lays fragments out along X, ObjectOffset apart, all with the
// same yaw and uniform scale.
func PlacementFor(slot int, opts Options) Placement {
	return Placement{
		Position: mgl64.Vec3{opts.ObjectOffset * float64(slot), 0, 0},
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(opts.RotationY), mgl64.Vec3{0, 1, 0}),
		Scale:    opts.Scale,
	}
}

// Matrix is translation * rotation * scale.
func (p Placement) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	s := mgl64.Scale3D(p.Scale, p.Scale, p.Scale)
	return t.Mul4(p.Rotation.Mat4()).Mul4(s)
}

// FragmentRecord is one fragment attached to a container.
type FragmentRecord struct {
	SourcePath  string
	LogicalName string
	SlotIndex   int
	Placement   Placement
	// Mesh is nil when the loader only checked the file.
	Mesh *Mesh
}

// FragmentName is the file name without directory or extension. It is the
// key that keeps fragments unique within a container.
func FragmentName(p string) string {
	base := baseName(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// MatchesFragment reports whether p names a fragment of logicalName:
// <logicalName>_<anything><ext>. The logical name is compared literally.
func MatchesFragment(logicalName, ext, p string) bool {
	base := baseName(p)
	prefix := logicalName + "_"
	if len(base) < len(prefix)+len(ext) {
		return false
	}
	return strings.HasPrefix(base, prefix) && strings.HasSuffix(base, ext)
}

// baseName accepts both separators, listings may come from Windows hosts.
func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}
