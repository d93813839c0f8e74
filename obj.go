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

func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", path, err)
	}
	defer file.Close()

	mesh, err := LoadOBJReader(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", path, err)
	}
	return mesh, nil
}

// LoadOBJReader reads positions and faces. Texture coordinates, normals and
// materials are ignored.
func LoadOBJReader(r io.Reader) (*Mesh, error) {
	var vs []mgl64.Vec3
	mesh := NewMesh()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", lineNo)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				v[i] = f
			}
			vs = append(vs, v)
		case "f":
			args := fields[1:]
			if len(args) < 3 {
				return nil, fmt.Errorf("line %d: face needs three vertices", lineNo)
			}
			points := make([]mgl64.Vec3, len(args))
			for i, arg := range args {
				idx, err := objIndex(strings.SplitN(arg, "/", 2)[0], len(vs))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				points[i] = vs[idx]
			}
			mesh.AddPolygon(points)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// objIndex resolves a 1-based, possibly negative, OBJ index to a slice index.
func objIndex(value string, length int) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex index %q", value)
	}
	idx := parsed - 1
	if parsed < 0 {
		idx = length + parsed
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("vertex index %d out of range", parsed)
	}
	return idx, nil
}
