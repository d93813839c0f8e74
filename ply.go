package qemviz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// cap on the vertex slice allocated from the header count alone
const plyPreallocLimit = 1 << 16

func LoadPLY(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	mesh, err := LoadPLYReader(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}

	return mesh, nil
}

// LoadPLYReader reads an ASCII PLY stream. Vertex colors and any other
// properties are ignored; faces are fanned into triangles.
func LoadPLYReader(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	var vertexCount, faceCount int
	var currentElement string
	var vertexProps int
	xIdx, yIdx, zIdx := -1, -1, -1

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("only ascii PLY is supported, got %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid element line %q", scanner.Text())
			}
			currentElement = parts[1]
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid %s count %q", parts[1], parts[2])
			}
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if currentElement != "vertex" || len(parts) < 3 {
				continue
			}
			switch parts[len(parts)-1] {
			case "x":
				xIdx = vertexProps
			case "y":
				yIdx = vertexProps
			case "z":
				zIdx = vertexProps
			}
			vertexProps++
		case "end_header":
			break header
		}
	}

	if xIdx < 0 || yIdx < 0 || zIdx < 0 {
		return nil, fmt.Errorf("vertex element has no x, y, z properties")
	}

	vertices := make([]mgl64.Vec3, 0, min(vertexCount, plyPreallocLimit))
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < vertexProps {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var v mgl64.Vec3
		for axis, idx := range [3]int{xIdx, yIdx, zIdx} {
			f, err := strconv.ParseFloat(parts[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vertex coordinate on line %d: %w", i, err)
			}
			v[axis] = f
		}
		vertices = append(vertices, v)
	}

	mesh := NewMesh()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		points := make([]mgl64.Vec3, numFaceVerts)
		for j := 0; j < numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("invalid vertex index %q on face %d", parts[j+1], i)
			}
			points[j] = vertices[idx]
		}
		mesh.AddPolygon(points)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	return mesh, nil
}
