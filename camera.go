package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a perspective camera supplying the view and projection matrices
// passed to Node.Update each frame.
type Camera struct {
	// Position is the eye position in world space.
	Position mgl32.Vec3
	// Target is the world-space point the camera looks at.
	Target mgl32.Vec3
	// Up is the camera's up direction.
	Up mgl32.Vec3
	// FovY is the vertical field of view in degrees.
	FovY float32
	// Near and Far are the clip plane distances.
	Near, Far float32
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	followTarget *Node
	followOffset mgl32.Vec3
	followLerp   float32

	move *moveAnim
}

// NewCamera creates a camera at (0, 0, 10) looking at the origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     45,
		Near:     0.1,
		Far:      1000,
		Viewport: viewport,
	}
}

// Follow makes the camera look at a node's world position plus offset,
// easing toward it by lerp each frame. A lerp of 1.0 snaps immediately.
func (c *Camera) Follow(node Element, offset mgl32.Vec3, lerp float32) {
	c.followTarget = sceneNode(node)
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// MoveTo animates the eye position to pos over duration seconds.
func (c *Camera) MoveTo(pos mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	m := &moveAnim{}
	for i := range m.tweens {
		m.tweens[i] = gween.New(c.Position[i], pos[i], duration, easeFn)
	}
	c.move = m
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// update advances follow and move animations. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.followTarget != nil && !c.followTarget.IsUnloaded() {
		goal := c.followTarget.WorldPosition().Add(c.followOffset)
		c.Target = c.Target.Add(goal.Sub(c.Target).Mul(c.followLerp))
	}

	if c.move != nil {
		finished := true
		for i, tw := range c.move.tweens {
			if c.move.done[i] {
				continue
			}
			val, done := tw.Update(dt)
			c.Position[i] = val
			c.move.done[i] = done
			if !done {
				finished = false
			}
		}
		if finished {
			c.move = nil
		}
	}
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Aspect returns the viewport aspect ratio, or 1 for an empty viewport.
func (c *Camera) Aspect() float32 {
	if c.Viewport.Height <= 0 || c.Viewport.Width <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY*DegToRad, c.Aspect(), c.Near, c.Far)
}

// Project converts a world-space point to screen coordinates inside the
// viewport. ok is false for points behind the camera.
func (c *Camera) Project(p mgl32.Vec3) (x, y float32, ok bool) {
	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip[3] < 1e-7 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	// Screen Y grows downward.
	x = c.Viewport.X + (ndcX+1)*0.5*c.Viewport.Width
	y = c.Viewport.Y + (1-ndcY)*0.5*c.Viewport.Height
	return x, y, true
}
