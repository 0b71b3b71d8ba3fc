// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
)

// Lens holds perspective projection parameters.
type Lens struct {
	FOV    float32 // Vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// Projection returns the OpenGL perspective matrix.
func (l Lens) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FOV), l.Aspect, l.Near, l.Far)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	Lens Lens
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        600.0,
		RotationX:       0.4,
		RotationY:       0.0,
		MinDistance:     20.0,
		MaxDistance:     20000.0,
		MinPitch:        -1.2,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Lens:            Lens{FOV: 60, Aspect: 16.0 / 9.0, Near: 1, Far: 12000},
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	return c.Center.Add(mgl32.Vec3{
		c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		c.Distance * float32(gomath.Sin(pitch)),
		c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.Lens.Projection().Mul4(c.ViewMatrix())
}

// Frustum returns the world-space view frustum.
func (c *OrbitCamera) Frustum() geom.Frustum {
	return geom.FrustumFromMatrix(c.ViewProjection())
}

// SetViewport updates the aspect ratio.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Lens.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	yaw := float64(c.RotationY)
	dirX, dirZ := float32(gomath.Sin(yaw)), float32(gomath.Cos(yaw))
	rightX, rightZ := float32(gomath.Cos(yaw)), float32(-gomath.Sin(yaw))

	// Negate forward so W moves into the scene
	c.Center[0] += (-dirX*forward + rightX*right) * speed
	c.Center[2] += (-dirZ*forward + rightZ*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds centers the camera on box and backs off to see all of it.
func (c *OrbitCamera) FitToBounds(box geom.Box) {
	c.Center = box.Center()
	size := box.Extents()
	c.Distance = mgl32.Clamp(max(size[0], size[2])*1.2, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0.0
}
