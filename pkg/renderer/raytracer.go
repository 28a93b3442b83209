package renderer

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// Strategy selects how rays are resolved into colors. It is chosen once
// per render, not per pixel.
type Strategy int

const (
	// StrategyShaded is the default recursive reflection + local shading
	StrategyShaded Strategy = iota
	// StrategyNormals visualizes surface normals, ignoring materials
	StrategyNormals
	// StrategyDistances visualizes hit distance as a grey ramp
	StrategyDistances
)

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyNormals:
		return "normals"
	case StrategyDistances:
		return "distances"
	default:
		return "shaded"
	}
}

// ParseStrategy resolves a strategy by name
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "shaded":
		return StrategyShaded, nil
	case "normals":
		return StrategyNormals, nil
	case "distances":
		return StrategyDistances, nil
	default:
		return StrategyShaded, fmt.Errorf("unknown render strategy %q", name)
	}
}

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int     // Rays per pixel, must be a perfect square
	MaxDepth        int     // Recursion bound for the shaded strategy
	Reflectance     float64 // Attenuation applied to each reflected bounce
	Workers         int     // Parallel workers (0 = use CPU count)
	Seed            int64   // Base seed for the per-worker random streams
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 4,
		MaxDepth:        10,
		Reflectance:     0.2,
		Workers:         0,
		Seed:            1,
	}
}

// Validate reports configuration errors before any rendering starts
func (c Config) Validate() error {
	if _, err := NewStratifiedSampler(c.SamplesPerPixel); err != nil {
		return err
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.Reflectance < 0 {
		return fmt.Errorf("reflectance must be non-negative, got %g", c.Reflectance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Rays starting at a hit point skip intersections closer than this to
// avoid re-hitting the surface they left.
const hitEpsilon = 1e-6

// Raytracer resolves rays against a scene using one of the strategies
type Raytracer struct {
	scene    core.Scene
	width    int
	height   int
	strategy Strategy
	config   Config
	sampler  *StratifiedSampler
	normals  core.Material // Shared override material for StrategyNormals
}

// NewRaytracer creates a raytracer for an image of the given dimensions
func NewRaytracer(scene core.Scene, width, height int, strategy Strategy, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	sampler, err := NewStratifiedSampler(config.SamplesPerPixel)
	if err != nil {
		return nil, err
	}
	return &Raytracer{
		scene:    scene,
		width:    width,
		height:   height,
		strategy: strategy,
		config:   config,
		sampler:  sampler,
		normals:  material.NewNormalVisualization(),
	}, nil
}

// findClosest scans every object in the scene and keeps the nearest hit.
// Objects are unordered in depth, so the whole list is examined; the
// strict < comparison means the first object wins on equal distances.
func (rt *Raytracer) findClosest(ray core.Ray) (*core.HitRecord, bool) {
	closest := math.Inf(1)
	var best *core.HitRecord

	for _, shape := range rt.scene.GetShapes() {
		hit, ok := shape.Hit(ray, hitEpsilon, math.Inf(1))
		if !ok || hit.T >= closest {
			continue
		}
		closest = hit.T
		best = hit
	}

	return best, best != nil
}

// RayColor resolves a single ray using the configured strategy
func (rt *Raytracer) RayColor(ray core.Ray, depth int) core.Vec3 {
	switch rt.strategy {
	case StrategyNormals:
		return rt.normalColor(ray)
	case StrategyDistances:
		return rt.distanceColor(ray)
	default:
		return rt.shadedColor(ray, depth)
	}
}

// shadedColor recursively combines the material's local illumination with
// an attenuated reflection bounce. Misses and exhausted depth are black.
func (rt *Raytracer) shadedColor(ray core.Ray, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, ok := rt.findClosest(ray)
	if !ok {
		return core.Vec3{}
	}

	reflectRay := core.NewRay(hit.Point, ray.Direction.Reflect(hit.Normal))
	reflectColor := rt.shadedColor(reflectRay, depth-1).Multiply(rt.config.Reflectance)
	localColor := hit.Material.Shade(hit, rt.scene, ray)

	return reflectColor.Add(localColor)
}

// normalColor shades every hit with the normal-visualization material,
// overriding whatever material the object carries
func (rt *Raytracer) normalColor(ray core.Ray) core.Vec3 {
	hit, ok := rt.findClosest(ray)
	if !ok {
		return core.Vec3{}
	}
	return rt.normals.Shade(hit, rt.scene, ray)
}

// distanceColor maps hit distance to a grey value in (0, 1], brighter
// near the camera
func (rt *Raytracer) distanceColor(ray core.Ray) core.Vec3 {
	hit, ok := rt.findClosest(ray)
	if !ok {
		return core.Vec3{}
	}
	if hit.T <= 0 {
		panic(fmt.Sprintf("non-positive hit distance %g", hit.T))
	}
	grey := 1 / (hit.T + 1)
	return core.NewVec3(grey, grey, grey)
}

// RenderPixel computes the anti-aliased color of pixel (x, y) as the mean
// of the stratified samples. offsets is scratch space with capacity for
// the sampler's count; pass nil to allocate.
func (rt *Raytracer) RenderPixel(x, y int, random *rand.Rand, offsets []Offset) core.Vec3 {
	offsets = rt.sampler.Offsets(offsets[:0], random)
	camera := rt.scene.GetCamera()

	var accum core.Vec3
	for _, o := range offsets {
		u := (float64(x)+o.U)/float64(rt.width) - 0.5
		v := (float64(y)+o.V)/float64(rt.height) - 0.5
		ray := camera.CastRay(u, v)
		accum = accum.Add(rt.RayColor(ray, rt.config.MaxDepth))
	}

	return accum.Multiply(1.0 / float64(rt.sampler.Count()))
}

// vec3ToColor converts a linear color to byte RGB, clamping to [0,1].
// This is the only tone mapping applied.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
