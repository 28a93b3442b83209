package core

import "math"

// CameraConfig describes a pinhole camera with a rectangular sensor
type CameraConfig struct {
	Center     Vec3    // World-space eye position
	Forward    Vec3    // View direction
	Up         Vec3    // Up direction, roughly orthogonal to Forward
	Width      float64 // Image-plane width in scene units
	Height     float64 // Image-plane height in scene units
	FOVDegrees float64 // Horizontal field of view
}

// Camera maps normalized image-plane coordinates to world-space rays
type Camera struct {
	center        Vec3
	forward       Vec3
	up            Vec3
	right         Vec3
	width, height float64
	focalDistance float64
}

// NewCamera creates a camera from the config. Forward and up are normalized
// and the focal distance is derived from the horizontal field of view.
func NewCamera(config CameraConfig) *Camera {
	forward := config.Forward.Normalize()
	up := config.Up.Normalize()
	return &Camera{
		center:        config.Center,
		forward:       forward,
		up:            up,
		right:         forward.Cross(up).Normalize(),
		width:         config.Width,
		height:        config.Height,
		focalDistance: FocalDistanceFromFOV(config.Width, config.FOVDegrees),
	}
}

// FocalDistanceFromFOV returns the distance from the eye to an image plane of
// the given width so that it spans the given horizontal field of view.
func FocalDistanceFromFOV(width, fovDegrees float64) float64 {
	return (width / 2) / math.Tan(fovDegrees/2*math.Pi/180)
}

// CastRay returns the ray from the eye through the image-plane point at
// (u, v), where u, v are in [-0.5, 0.5] and (0, 0) is the image center.
func (c *Camera) CastRay(u, v float64) Ray {
	planePoint := c.center.
		Add(c.forward.Multiply(c.focalDistance)).
		Add(c.right.Multiply(u * c.width)).
		Add(c.up.Multiply(v * c.height))

	return Ray{
		Origin:    c.center,
		Direction: planePoint.Subtract(c.center).Normalize(),
	}
}

// Center returns the camera's eye position
func (c *Camera) Center() Vec3 {
	return c.center
}
