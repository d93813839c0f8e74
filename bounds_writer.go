package qemviz

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis aligned box in the generator's coordinate space.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that any point will grow.
func EmptyBox() Box {
	inf := math.MaxFloat64
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b Box) Extend(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

func (b Box) Empty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// EncodeBox formats one metadata record. Fields are min, max and color, in
// the order the bounds parser expects.
func EncodeBox(b Box, c Color) string {
	fields := []float64{
		b.Min[0], b.Min[1], b.Min[2],
		b.Max[0], b.Max[1], b.Max[2],
		c.R, c.G, c.B,
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// WriteBounds writes one record per box, coloring the i-th box with
// ClusterColor(i).
func WriteBounds(w io.Writer, boxes []Box) error {
	bw := bufio.NewWriter(w)
	for i, b := range boxes {
		if _, err := fmt.Fprintln(bw, EncodeBox(b, ClusterColor(i))); err != nil {
			return fmt.Errorf("could not write bounds record %d: %w", i, err)
		}
	}
	return bw.Flush()
}
