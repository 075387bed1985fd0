package camera

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// NewOrthographic creates an orthographic camera for a window of the
// given size. Zoom scales the half-height of the view volume, the
// half-width follows the aspect ratio.
func NewOrthographic(width, height, zoom float32) *Orthographic {
	return &Orthographic{
		aspect:      width / height,
		zoom:        clampZoom(zoom),
		initialZoom: clampZoom(zoom),
	}
}

// Orthographic projects without perspective, suited for 2D scenes.
type Orthographic struct {
	aspect      float32
	zoom        float32
	initialZoom float32
}

// ProjectionMatrix implements Camera
func (c *Orthographic) ProjectionMatrix() glm.Mat4 {
	halfWidth := c.aspect * c.zoom
	halfHeight := c.zoom
	return glm.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, nearPlane, farPlane)
}

// Zoom implements Camera
func (c *Orthographic) Zoom() float32 {
	return c.zoom
}

// SetZoom implements Camera
func (c *Orthographic) SetZoom(zoom float32) {
	c.zoom = clampZoom(zoom)
}

// ResetZoom implements Camera
func (c *Orthographic) ResetZoom() {
	c.zoom = c.initialZoom
}

// Resize implements Camera
func (c *Orthographic) Resize(width, height float32) {
	c.aspect = width / height
}
