package arbor

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and the camera, and
// drives Update and RenderChildren once per frame.
type Scene struct {
	root   *Node
	camera *Camera
	debug  bool

	// ClearColor fills the screen before rendering when its alpha is non-zero.
	ClearColor Color

	updateFunc func() error

	// target is the image being drawn during Draw; nil otherwise.
	target *ebiten.Image
}

// NewScene creates a new scene with a root group node and a 640x480 camera.
func NewScene() *Scene {
	return &Scene{
		root:   NewNode("root"),
		camera: NewCamera(Rect{Width: 640, Height: 480}),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the camera supplying view and projection matrices.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera replaces the scene camera. nil is ignored.
func (s *Scene) SetCamera(c *Camera) {
	if c != nil {
		s.camera = c
	}
}

// SetUpdateFunc registers a callback run at the start of every Update, before
// the camera and the tree are updated.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Target returns the image being rendered into. Only valid inside OnRender
// hooks called from Draw.
func (s *Scene) Target() *ebiten.Image {
	return s.target
}

// Update runs the user callback, advances the camera and updates the tree with
// the camera's view and projection matrices.
func (s *Scene) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.camera.update(dt)
	s.root.Update(s.camera.ViewMatrix(), s.camera.ProjectionMatrix())
	if s.debug {
		s.debugLog("update", time.Since(t0))
	}
	return nil
}

// Draw renders the tree into screen, parent before children, skipping
// invisible subtrees.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.target = screen
	s.root.RenderChildren()
	s.target = nil
	if s.debug {
		s.debugLog("render", time.Since(t0))
	}
}

// SetDebugMode enables or disables debug mode. When enabled, unloaded-node
// access panics, tree depth and child count warnings are printed, and
// per-frame timings are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	SetDebugMode(enabled)
}

// debugLog prints a phase timing with the current tree size.
func (s *Scene) debugLog(phase string, d time.Duration) {
	_, _ = fmt.Fprintf(debugOut, "[arbor] %s: %v | nodes: %d\n", phase, d, s.root.NumTotalChildren()+1)
}
