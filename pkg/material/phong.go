package material

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// Phong is a local-illumination material shading against the scene's
// directional light: ambient + diffuse + specular. One instance may be
// shared by any number of shapes.
type Phong struct {
	SurfaceColor     core.Vec3 // Base color, linear RGB
	DiffuseKn        float64   // Diffuse reflection coefficient
	SpecularN        float64   // Specular exponent (shininess)
	SpecularKs       float64   // Specular reflection coefficient
	AmbientIntensity float64   // Ambient term, independent of the light
}

// NewPhong creates a Phong material with the given surface color and
// the reference coefficients.
func NewPhong(surfaceColor core.Vec3) *Phong {
	return &Phong{
		SurfaceColor:     surfaceColor,
		DiffuseKn:        0.2,
		SpecularN:        10,
		SpecularKs:       0.2,
		AmbientIntensity: 0.1,
	}
}

// Shade computes the Phong illumination at the hit point
func (m *Phong) Shade(hit *core.HitRecord, scene core.Scene, rayIn core.Ray) core.Vec3 {
	light := scene.GetLight()

	// Ambient term keeps shadowed faces visible
	color := m.SurfaceColor.Multiply(m.AmbientIntensity)

	// Diffuse: Lambert's cosine law against the direction to the light
	toLight := light.Direction.Negate()
	diffuse := hit.Normal.Dot(toLight)
	if diffuse > 0 {
		weight := light.Intensity * m.DiffuseKn * diffuse
		color = color.Add(m.SurfaceColor.MultiplyVec(light.Color).Multiply(weight))
	}

	// Specular: mirror the light about the normal and compare with the
	// direction back to the viewer
	reflected := light.Direction.Reflect(hit.Normal)
	specular := reflected.Dot(rayIn.Direction.Negate())
	if specular > 0 {
		weight := light.Intensity * m.SpecularKs * math.Pow(specular, m.SpecularN)
		color = color.Add(light.Color.Multiply(weight))
	}

	return color
}
