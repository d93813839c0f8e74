package qemviz

import "github.com/go-gl/mathgl/mgl64"

// Container groups the fragments assembled for one logical object. It only
// grows until Invalidate is called.
type Container struct {
	Name     string
	Position mgl64.Vec3

	fragments []FragmentRecord
	byName    map[string]int
}

// NewContainer returns an empty container placed ParentOffset along Z.
func NewContainer(name string, parentOffset float64) *Container {
	return &Container{
		Name:     name,
		Position: mgl64.Vec3{0, 0, parentOffset},
		byName:   make(map[string]int),
	}
}

func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fragments)
}

func (c *Container) Find(name string) (FragmentRecord, bool) {
	if c == nil {
		return FragmentRecord{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return FragmentRecord{}, false
	}
	return c.fragments[i], true
}

// Fragments returns a copy of the attached fragments in attachment order.
func (c *Container) Fragments() []FragmentRecord {
	if c == nil {
		return nil
	}
	out := make([]FragmentRecord, len(c.fragments))
	copy(out, c.fragments)
	return out
}

func (c *Container) attach(rec FragmentRecord) {
	if c.byName == nil {
		c.byName = make(map[string]int)
	}
	c.byName[rec.LogicalName] = len(c.fragments)
	c.fragments = append(c.fragments, rec)
}

// Invalidate detaches every fragment. The owner should drop the container
// afterwards; a new one is created on the next assembly.
func (c *Container) Invalidate() {
	if c == nil {
		return
	}
	c.fragments = nil
	c.byName = nil
}
