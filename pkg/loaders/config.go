package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// SceneFile is the YAML scene description. Colors are 8-bit RGB as in the
// reference scenes; geometry references materials by name, so one material
// instance is shared by every object that names it.
type SceneFile struct {
	Camera    CameraSection              `yaml:"camera"`
	Light     LightSection               `yaml:"light"`
	Materials map[string]MaterialSection `yaml:"materials"`
	Spheres   []SphereSection            `yaml:"spheres"`
	Meshes    []MeshSection              `yaml:"meshes"`
}

// CameraSection configures the pinhole camera. The plane height is derived
// from the image aspect ratio.
type CameraSection struct {
	Center  [3]float64 `yaml:"center"`
	Forward [3]float64 `yaml:"forward"`
	Up      [3]float64 `yaml:"up"`
	Width   float64    `yaml:"width"`
	FOV     float64    `yaml:"fov"`
}

// LightSection configures the directional light
type LightSection struct {
	Direction [3]float64 `yaml:"direction"`
	Color     [3]uint8   `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// MaterialSection configures a named material. Coefficients left out fall
// back to the reference Phong values.
type MaterialSection struct {
	Type       string   `yaml:"type"` // "phong" (default) or "normal"
	Color      [3]uint8 `yaml:"color"`
	Diffuse    *float64 `yaml:"diffuse"`
	SpecularN  *float64 `yaml:"specular_n"`
	SpecularKs *float64 `yaml:"specular_ks"`
	Ambient    *float64 `yaml:"ambient"`
}

// SphereSection places a sphere
type SphereSection struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

// MeshSection references an OBJ file, resolved relative to the scene file
type MeshSection struct {
	File     string `yaml:"file"`
	Material string `yaml:"material"`
}

// LoadScene reads a YAML scene description and builds the scene
func LoadScene(path string, aspectRatio float64) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	s, err := sf.Build(aspectRatio, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}
	return s, nil
}

// Build constructs the scene. Mesh file paths are resolved against baseDir.
func (sf *SceneFile) Build(aspectRatio float64, baseDir string) (*scene.Scene, error) {
	if sf.Camera.Width <= 0 {
		return nil, fmt.Errorf("camera width must be positive, got %g", sf.Camera.Width)
	}
	if sf.Camera.FOV <= 0 || sf.Camera.FOV >= 180 {
		return nil, fmt.Errorf("camera fov must be in (0, 180), got %g", sf.Camera.FOV)
	}
	if sf.Light.Intensity <= 0 {
		return nil, fmt.Errorf("light intensity must be positive, got %g", sf.Light.Intensity)
	}

	materials := make(map[string]core.Material, len(sf.Materials))
	for name, section := range sf.Materials {
		mat, err := section.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s := &scene.Scene{
		Camera: core.NewCamera(core.CameraConfig{
			Center:     vec3Of(sf.Camera.Center),
			Forward:    vec3Of(sf.Camera.Forward),
			Up:         vec3Of(sf.Camera.Up),
			Width:      sf.Camera.Width,
			Height:     sf.Camera.Width / aspectRatio,
			FOVDegrees: sf.Camera.FOV,
		}),
		Light: core.NewLight(
			vec3Of(sf.Light.Direction),
			core.NewColorRGB(sf.Light.Color[0], sf.Light.Color[1], sf.Light.Color[2]),
			sf.Light.Intensity,
		),
	}

	for i, sphere := range sf.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
		if sphere.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
		s.Add(geometry.NewSphere(vec3Of(sphere.Center), sphere.Radius, mat))
	}

	for i, mesh := range sf.Meshes {
		mat, ok := materials[mesh.Material]
		if !ok {
			return nil, fmt.Errorf("mesh %d: unknown material %q", i, mesh.Material)
		}
		triangles, err := LoadOBJ(filepath.Join(baseDir, mesh.File), mat)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		s.Add(triangles...)
	}

	return s, nil
}

// build constructs one material from its section
func (ms MaterialSection) build() (core.Material, error) {
	switch ms.Type {
	case "normal":
		return material.NewNormalVisualization(), nil
	case "", "phong":
		phong := material.NewPhong(core.NewColorRGB(ms.Color[0], ms.Color[1], ms.Color[2]))
		if ms.Diffuse != nil {
			phong.DiffuseKn = *ms.Diffuse
		}
		if ms.SpecularN != nil {
			phong.SpecularN = *ms.SpecularN
		}
		if ms.SpecularKs != nil {
			phong.SpecularKs = *ms.SpecularKs
		}
		if ms.Ambient != nil {
			phong.AmbientIntensity = *ms.Ambient
		}
		return phong, nil
	default:
		return nil, fmt.Errorf("unknown material type %q", ms.Type)
	}
}

func vec3Of(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
