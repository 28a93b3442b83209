package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering: the object list,
// one directional light and the camera. Objects keep insertion order;
// the renderer's closest-hit search relies on it for tie-breaking.
// Materials may be shared across objects and are read-only once the
// render starts.
type Scene struct {
	Camera  *core.Camera
	Objects []core.Shape
	Light   core.Light
}

// GetShapes returns the scene's object list
func (s *Scene) GetShapes() []core.Shape { return s.Objects }

// GetLight returns the scene's directional light
func (s *Scene) GetLight() core.Light { return s.Light }

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *core.Camera { return s.Camera }

// Add appends shapes to the scene's object list
func (s *Scene) Add(shapes ...core.Shape) {
	s.Objects = append(s.Objects, shapes...)
}

// NewTestScene builds the reference scene: three spheres sharing a single
// red Phong material, a directional light, and a camera at the origin
// looking along +Y with an 80° field of view.
func NewTestScene(aspectRatio float64) *Scene {
	red := material.NewPhong(core.NewColorRGB(191, 32, 32))

	camWidth := 10.0
	s := &Scene{
		Camera: core.NewCamera(core.CameraConfig{
			Center:     core.NewVec3(0, 0, 0),
			Forward:    core.NewVec3(0, 1, 0),
			Up:         core.NewVec3(0, 0, 1),
			Width:      camWidth,
			Height:     camWidth / aspectRatio,
			FOVDegrees: 80,
		}),
		Light: core.NewLight(
			core.NewVec3(0, 1, -2),
			core.NewColorRGB(255, 255, 255),
			5,
		),
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 10, 0), 4, red),
		geometry.NewSphere(core.NewVec3(-7, 10, 0), 3, red),
		geometry.NewSphere(core.NewVec3(0, 7, 6), 3, red),
	)

	return s
}
