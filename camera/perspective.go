package camera

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// NewPerspective creates a perspective camera with the given vertical
// field of view in degrees. Zoom narrows the field of view.
func NewPerspective(width, height, fov float32) *Perspective {
	return &Perspective{
		aspect: width / height,
		fov:    fov,
		zoom:   1,
	}
}

// Perspective projects with a vertical field of view.
type Perspective struct {
	aspect float32
	fov    float32
	zoom   float32
}

// ProjectionMatrix implements Camera
func (c *Perspective) ProjectionMatrix() glm.Mat4 {
	return glm.Perspective(glm.DegToRad(c.fov/c.zoom), c.aspect, nearPlane, farPlane)
}

// Zoom implements Camera
func (c *Perspective) Zoom() float32 {
	return c.zoom
}

// SetZoom implements Camera
func (c *Perspective) SetZoom(zoom float32) {
	c.zoom = clampZoom(zoom)
}

// ResetZoom implements Camera
func (c *Perspective) ResetZoom() {
	c.zoom = 1
}

// Resize implements Camera
func (c *Perspective) Resize(width, height float32) {
	c.aspect = width / height
}
