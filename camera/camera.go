// Package camera provides the projection cameras and a controller
// that turns input into camera movement.
package camera

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// Clipping planes and zoom limits shared by all cameras.
const (
	nearPlane = 0.1
	farPlane  = 10.0
	minZoom   = 0.1
)

// Camera yields a projection matrix for the current window size
// and zoom level.
type Camera interface {

	// ProjectionMatrix returns the current projection
	ProjectionMatrix() glm.Mat4

	// Zoom returns the current zoom level
	Zoom() float32

	// SetZoom sets the zoom level, clamped to the minimum
	SetZoom(zoom float32)

	// ResetZoom restores the zoom the camera was created with
	ResetZoom()

	// Resize adjusts the projection to a new window size
	Resize(width, height float32)
}

func clampZoom(zoom float32) float32 {
	if zoom < minZoom {
		return minZoom
	}
	return zoom
}
