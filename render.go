package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Axis colors used by NewAxesGizmo.
var (
	axisColorX = Color{0.86, 0.31, 0.31, 1}
	axisColorY = Color{0.31, 0.86, 0.31, 1}
	axisColorZ = Color{0.31, 0.31, 0.86, 1}
)

// NewMarker creates a transform node that draws a filled circle of radius
// pixels at its projected world origin while the scene draws.
func NewMarker(s *Scene, name string, radius float32, c Color) *Transform {
	t := NewTransform(name)
	clr := c.toRGBA()
	t.OnRender = func(n *Node) {
		dst := s.Target()
		if dst == nil {
			return
		}
		x, y, ok := s.Camera().Project(n.WorldPosition())
		if !ok {
			return
		}
		vector.DrawFilledCircle(dst, x, y, radius, clr, true)
	}
	return t
}

// NewAxesGizmo creates a group node that draws the X, Y and Z axes of its
// parent's space, each length units long. Attach it under the node to inspect.
func NewAxesGizmo(s *Scene, name string, length float32) *Node {
	g := NewNode(name)
	g.OnRender = func(n *Node) {
		dst := s.Target()
		if dst == nil {
			return
		}
		for _, seg := range axisSegments(s.Camera(), n, length) {
			vector.StrokeLine(dst, seg.x0, seg.y0, seg.x1, seg.y1, 1, seg.color.toRGBA(), true)
		}
	}
	return g
}

// segment is a projected screen-space line.
type segment struct {
	x0, y0, x1, y1 float32
	color          Color
}

// axisSegments projects the three local axes of n. Axes with an endpoint
// behind the camera are dropped.
func axisSegments(cam *Camera, n *Node, length float32) []segment {
	origin := n.LocalToGlobal(mgl32.Vec3{})
	x0, y0, ok := cam.Project(origin)
	if !ok {
		return nil
	}
	axes := [3]struct {
		dir   mgl32.Vec3
		color Color
	}{
		{mgl32.Vec3{length, 0, 0}, axisColorX},
		{mgl32.Vec3{0, length, 0}, axisColorY},
		{mgl32.Vec3{0, 0, length}, axisColorZ},
	}
	segs := make([]segment, 0, len(axes))
	for _, a := range axes {
		x1, y1, ok := cam.Project(n.LocalToGlobal(a.dir))
		if !ok {
			continue
		}
		segs = append(segs, segment{x0, y0, x1, y1, a.color})
	}
	return segs
}
