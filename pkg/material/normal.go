package material

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// NormalVisualization colors a hit by its surface normal, mapping each
// component from [-1,1] to [0,1]. Used by the normals debug strategy to
// override per-object materials.
type NormalVisualization struct{}

// NewNormalVisualization creates a normal-visualization material
func NewNormalVisualization() *NormalVisualization {
	return &NormalVisualization{}
}

// Shade returns the normal mapped into RGB
func (m *NormalVisualization) Shade(hit *core.HitRecord, scene core.Scene, rayIn core.Ray) core.Vec3 {
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
