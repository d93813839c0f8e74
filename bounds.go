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

// number of space separated fields on a metadata line
const boundsFieldCount = 9

// BoundingRegion is an axis aligned box with the color it is drawn in.
// Extent is the half size of the box and is never negative.
type BoundingRegion struct {
	Center mgl64.Vec3
	Extent mgl64.Vec3
	Color  Color
}

// NewBoundingRegion builds a region from its corners. It reports false when
// max is below min on any axis.
func NewBoundingRegion(min, max mgl64.Vec3, c Color) (BoundingRegion, bool) {
	for i := 0; i < 3; i++ {
		if max[i] < min[i] {
			return BoundingRegion{}, false
		}
	}
	return BoundingRegion{
		Center: mgl64.Vec3{(min[0] + max[0]) / 2, (min[1] + max[1]) / 2, (min[2] + max[2]) / 2},
		Extent: mgl64.Vec3{(max[0] - min[0]) / 2, (max[1] - min[1]) / 2, (max[2] - min[2]) / 2},
		Color:  c,
	}, true
}

func (r BoundingRegion) Min() mgl64.Vec3 {
	return r.Center.Sub(r.Extent)
}

func (r BoundingRegion) Max() mgl64.Vec3 {
	return r.Center.Add(r.Extent)
}

// Size is the full edge length per axis.
func (r BoundingRegion) Size() mgl64.Vec3 {
	return r.Extent.Mul(2)
}

// BoundsModel is the ordered list of regions read from one metadata file.
type BoundsModel []BoundingRegion

func (m BoundsModel) Len() int {
	return len(m)
}

// Select returns the regions to draw for a 1-based index. Zero, or an index
// past the end, selects every region.
func (m BoundsModel) Select(index uint) BoundsModel {
	if index == 0 || index > uint(len(m)) {
		return m
	}
	return m[index-1 : index : index]
}

// ParseReport summarises a parse for diagnostics.
type ParseReport struct {
	Lines    int // non-blank lines seen
	Accepted int
	Skipped  int
}

func (r ParseReport) String() string {
	return fmt.Sprintf("%d regions accepted, %d lines skipped", r.Accepted, r.Skipped)
}

type boundsParser struct {
	model  BoundsModel
	report ParseReport
}

func (p *boundsParser) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	p.report.Lines++

	region, ok := parseBoundsLine(line)
	if !ok {
		p.report.Skipped++
		return
	}
	p.model = append(p.model, region)
	p.report.Accepted++
}

// parseBoundsLine converts one trimmed record. The first and fourth fields
// hold the X range mirrored, so they are negated and swapped.
func parseBoundsLine(line string) (BoundingRegion, bool) {
	tokens := strings.Split(line, " ")
	if len(tokens) != boundsFieldCount {
		return BoundingRegion{}, false
	}

	var f [boundsFieldCount]float64
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return BoundingRegion{}, false
		}
		f[i] = v
	}

	maxX := -f[0]
	minY := f[1]
	minZ := f[2]
	minX := -f[3]
	maxY := f[4]
	maxZ := f[5]

	return NewBoundingRegion(
		mgl64.Vec3{minX, minY, minZ},
		mgl64.Vec3{maxX, maxY, maxZ},
		NewColor(f[6], f[7], f[8]),
	)
}

// ParseBounds reads every record in text. Malformed lines are skipped and
// counted, it never fails.
func ParseBounds(text string) (BoundsModel, ParseReport) {
	p := &boundsParser{}
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	return p.model, p.report
}

// ParseBoundsReader is ParseBounds over a stream. Lines have no length limit;
// the only error returned is the reader's own.
func ParseBoundsReader(r io.Reader) (BoundsModel, ParseReport, error) {
	p := &boundsParser{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			p.line(line)
		}
		if err == io.EOF {
			return p.model, p.report, nil
		}
		if err != nil {
			return p.model, p.report, fmt.Errorf("error reading bounds metadata: %w", err)
		}
	}
}
