package geometry

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices,
// listed counter-clockwise when seen from the front face.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.Material
	normal     core.Vec3 // Cached geometric normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return t
}

// NewTriangleWithNormal creates a triangle with a custom shading normal,
// e.g. averaged from per-vertex normals of a mesh.
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, material core.Material) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   normal.Normalize(),
	}
}

// Hit tests if a ray intersects with the triangle using the
// Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-9

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// If the determinant is near zero, the ray lies in the triangle plane
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	root := f * edge2.Dot(q)
	if root < tMin || root > tMax {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: t.Material,
	}
	hit.SetFaceNormal(ray, t.normal)

	return hit, true
}
