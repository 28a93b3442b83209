package core

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit tests the ray against the shape and reports the nearest
	// intersection with tMin < t < tMax, if any.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material interface for computing the color observed at a hit point
type Material interface {
	// Shade returns the local illumination contribution for the hit as
	// unclamped linear RGB. The scene is provided for light access.
	Shade(hit *HitRecord, scene Scene, rayIn Ray) Vec3
}

// Scene is the read-only view of a scene the renderer works against.
// Implementations must be safe for concurrent reads during a render.
type Scene interface {
	GetShapes() []Shape
	GetLight() Light
	GetCamera() *Camera
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64  // Distance along the ray, > 0 for a valid hit
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Unit surface normal, oriented against the incoming ray
	Material Material // Material of the hit object, owned by the scene
}

// SetFaceNormal orients the outward normal against the incoming ray
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	if ray.Direction.Dot(outwardNormal) < 0 {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Light is a single directional light source
type Light struct {
	Direction Vec3    // Unit vector, the direction the light travels
	Color     Vec3    // Linear RGB in [0,1]
	Intensity float64 // > 0
}

// NewLight creates a directional light, normalizing the direction
func NewLight(direction, color Vec3, intensity float64) Light {
	return Light{
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}
