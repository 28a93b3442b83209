package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
)

// LoadOBJ loads a Wavefront OBJ file and returns its faces as triangles,
// all sharing the given material. Faces with more than three vertices are
// fan-triangulated.
func LoadOBJ(filename string, mat core.Material) ([]core.Shape, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	shapes, err := ParseOBJ(file, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return shapes, nil
}

// objIndex holds the vertex and optional normal reference of one face corner
type objIndex struct {
	vertex int
	normal int // 0 when absent
}

// ParseOBJ reads OBJ data from r. Supported statements: v, vn, f.
// Everything else (vt, usemtl, groups, comments) is skipped.
func ParseOBJ(r io.Reader, mat core.Material) ([]core.Shape, error) {
	var vertices []core.Vec3
	var normals []core.Vec3
	var shapes []core.Shape

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			vertices = append(vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			normals = append(normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			corners := make([]objIndex, 0, len(fields)-1)
			for _, field := range fields[1:] {
				idx, err := parseFaceIndex(field, len(vertices), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				corners = append(corners, idx)
			}

			// Fan triangulation around the first corner
			for i := 1; i < len(corners)-1; i++ {
				tri := buildTriangle(vertices, normals, corners[0], corners[i], corners[i+1], mat)
				shapes = append(shapes, tri)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	return shapes, nil
}

// parseVec3 parses three float fields
func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad component %q", fields[i])
		}
		out[i] = val
	}
	return core.NewVec3(out[0], out[1], out[2]), nil
}

// parseFaceIndex parses a face corner of the form "v", "v/vt", "v//vn" or
// "v/vt/vn". Indices are 1-based; negative values count from the end.
func parseFaceIndex(field string, vertexCount, normalCount int) (objIndex, error) {
	parts := strings.Split(field, "/")

	vertex, err := resolveIndex(parts[0], vertexCount)
	if err != nil {
		return objIndex{}, fmt.Errorf("face vertex %q: %w", field, err)
	}
	idx := objIndex{vertex: vertex}

	if len(parts) == 3 && parts[2] != "" {
		normal, err := resolveIndex(parts[2], normalCount)
		if err != nil {
			return objIndex{}, fmt.Errorf("face normal %q: %w", field, err)
		}
		idx.normal = normal
	}

	return idx, nil
}

// resolveIndex converts a 1-based (possibly negative) OBJ index into a
// 1-based positive index, validating the range
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if i < 0 {
		i = count + 1 + i
	}
	if i < 1 || i > count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return i, nil
}

// buildTriangle creates a triangle for one fan segment. When all three
// corners carry normals the shading normal is their average, otherwise
// the geometric normal is used.
func buildTriangle(vertices, normals []core.Vec3, a, b, c objIndex, mat core.Material) *geometry.Triangle {
	v0 := vertices[a.vertex-1]
	v1 := vertices[b.vertex-1]
	v2 := vertices[c.vertex-1]

	if a.normal > 0 && b.normal > 0 && c.normal > 0 {
		n := normals[a.normal-1].
			Add(normals[b.normal-1]).
			Add(normals[c.normal-1])
		return geometry.NewTriangleWithNormal(v0, v1, v2, n, mat)
	}

	return geometry.NewTriangle(v0, v1, v2, mat)
}
