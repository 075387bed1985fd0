package camera

import (
	"testing"
	"time"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devodev/toy-engine/input"
)

func TestOrthographicProjection(t *testing.T) {
	cam := NewOrthographic(1600, 800, 1)
	expected := glm.Ortho(-2, 2, -1, 1, nearPlane, farPlane)
	assert.Equal(t, expected, cam.ProjectionMatrix())
}

func TestOrthographicZoomClamped(t *testing.T) {
	cam := NewOrthographic(800, 600, 1)
	cam.SetZoom(0.01)
	assert.Equal(t, float32(minZoom), cam.Zoom())
}

func TestOrthographicResetZoom(t *testing.T) {
	cam := NewOrthographic(800, 600, 2)
	cam.SetZoom(5)
	cam.ResetZoom()
	assert.Equal(t, float32(2), cam.Zoom())
}

func TestOrthographicResize(t *testing.T) {
	cam := NewOrthographic(800, 800, 1)
	cam.Resize(1600, 800)
	expected := glm.Ortho(-2, 2, -1, 1, nearPlane, farPlane)
	assert.Equal(t, expected, cam.ProjectionMatrix())
}

func TestPerspectiveZoomNarrowsFov(t *testing.T) {
	cam := NewPerspective(800, 600, 60)
	wide := cam.ProjectionMatrix()
	cam.SetZoom(2)
	narrow := cam.ProjectionMatrix()
	assert.NotEqual(t, wide, narrow)
	assert.Equal(t, glm.Perspective(glm.DegToRad(30), float32(800)/600, nearPlane, farPlane), narrow)
}

func TestControllerMovement(t *testing.T) {
	ctrl := NewController(NewOrthographic(800, 600, 1))
	start := ctrl.Position()

	in := input.NewSystem()
	in.HandleEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_w}})
	ctrl.Update(time.Second, in)

	assert.Equal(t, start.Add(glm.Vec3{0, moveSpeed, 0}), ctrl.Position())
}

func TestControllerZoomApproachesTarget(t *testing.T) {
	cam := NewOrthographic(800, 600, 1)
	ctrl := NewController(cam)

	in := input.NewSystem()
	in.HandleEvent(&sdl.MouseWheelEvent{Y: -2})
	ctrl.Update(10*time.Millisecond, in)

	// One short tick moves the zoom toward the target without
	// reaching it.
	assert.Greater(t, cam.Zoom(), float32(1))
	assert.Less(t, cam.Zoom(), float32(1.5))

	in.Reset()
	for i := 0; i < 100; i++ {
		ctrl.Update(100*time.Millisecond, in)
	}
	assert.InDelta(t, 1.5, cam.Zoom(), 0.001)
}

func TestControllerViewProjection(t *testing.T) {
	cam := NewOrthographic(800, 600, 1)
	ctrl := NewController(cam)
	expected := cam.ProjectionMatrix().Mul4(ctrl.ViewMatrix())
	assert.Equal(t, expected, ctrl.ViewProjection())
}
