package qemviz

import "github.com/go-gl/mathgl/mgl64"

// Mesh is an indexed triangle mesh loaded from a fragment file. Identical
// positions share one point.
type Mesh struct {
	Points    []mgl64.Vec3
	Triangles [][3]int

	pointIndex map[mgl64.Vec3]int
}

func NewMesh() *Mesh {
	return &Mesh{
		pointIndex: make(map[mgl64.Vec3]int),
	}
}

// AddPoint returns the index of p, adding it when it is new.
func (m *Mesh) AddPoint(p mgl64.Vec3) int {
	if m.pointIndex == nil {
		m.pointIndex = make(map[mgl64.Vec3]int, len(m.Points))
		for i, q := range m.Points {
			m.pointIndex[q] = i
		}
	}

	if index, found := m.pointIndex[p]; found {
		return index
	}

	m.Points = append(m.Points, p)
	index := len(m.Points) - 1
	m.pointIndex[p] = index
	return index
}

// AddTriangle adds a triangle by position. Triangles that collapse to fewer
// than three distinct points are dropped.
func (m *Mesh) AddTriangle(a, b, c mgl64.Vec3) {
	ia, ib, ic := m.AddPoint(a), m.AddPoint(b), m.AddPoint(c)
	if ia == ib || ib == ic || ia == ic {
		return
	}
	m.Triangles = append(m.Triangles, [3]int{ia, ib, ic})
}

// AddPolygon fans a convex polygon into triangles.
func (m *Mesh) AddPolygon(points []mgl64.Vec3) {
	for i := 1; i < len(points)-1; i++ {
		m.AddTriangle(points[0], points[i], points[i+1])
	}
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the box around every point, or false for an empty mesh.
func (m *Mesh) Bounds() (Box, bool) {
	if len(m.Points) == 0 {
		return Box{}, false
	}
	box := EmptyBox()
	for _, p := range m.Points {
		box = box.Extend(p)
	}
	return box, true
}
