package camera

import (
	"time"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devodev/toy-engine/input"
)

// Movement tuning.
const (
	moveSpeed     = 2.5
	zoomPerScroll = 0.25
	zoomLerpRate  = 10.0
)

// NewController wraps a camera with WASD movement and smooth scroll
// zoom. The controller owns the view matrix, the camera keeps the
// projection.
func NewController(cam Camera) *Controller {
	return &Controller{
		camera:     cam,
		position:   glm.Vec3{0, 0, 3},
		targetZoom: cam.Zoom(),
	}
}

// Controller steers a camera from tracked input state.
type Controller struct {
	camera     Camera
	position   glm.Vec3
	targetZoom float32
}

// Camera returns the wrapped camera.
func (c *Controller) Camera() Camera {
	return c.camera
}

// Position returns the camera position in world space.
func (c *Controller) Position() glm.Vec3 {
	return c.position
}

// Update applies one tick of movement and zoom from the input state.
// Zoom approaches the scroll target instead of jumping to it.
func (c *Controller) Update(delta time.Duration, in *input.System) {
	step := moveSpeed * float32(delta.Seconds())

	if in.KeyDown(sdl.K_w) {
		c.position = c.position.Add(glm.Vec3{0, step, 0})
	}
	if in.KeyDown(sdl.K_s) {
		c.position = c.position.Sub(glm.Vec3{0, step, 0})
	}
	if in.KeyDown(sdl.K_d) {
		c.position = c.position.Add(glm.Vec3{step, 0, 0})
	}
	if in.KeyDown(sdl.K_a) {
		c.position = c.position.Sub(glm.Vec3{step, 0, 0})
	}
	if in.KeyDown(sdl.K_e) {
		c.position = c.position.Add(glm.Vec3{0, 0, step})
	}
	if in.KeyDown(sdl.K_q) {
		c.position = c.position.Sub(glm.Vec3{0, 0, step})
	}

	_, scrollY := in.Scroll()
	if scrollY != 0 {
		c.targetZoom = clampZoom(c.targetZoom - scrollY*zoomPerScroll)
	}

	t := zoomLerpRate * float32(delta.Seconds())
	if t > 1 {
		t = 1
	}
	zoom := c.camera.Zoom()
	c.camera.SetZoom(zoom + (c.targetZoom-zoom)*t)
}

// ViewMatrix looks down the negative z axis from the camera position.
func (c *Controller) ViewMatrix() glm.Mat4 {
	target := c.position.Add(glm.Vec3{0, 0, -1})
	return glm.LookAtV(c.position, target, glm.Vec3{0, 1, 0})
}

// ViewProjection returns projection times view, ready for the
// uniform buffer.
func (c *Controller) ViewProjection() glm.Mat4 {
	return c.camera.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Resize forwards the new window size to the camera.
func (c *Controller) Resize(width, height float32) {
	c.camera.Resize(width, height)
}
