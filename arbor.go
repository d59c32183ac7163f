package arbor

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Degree/radian conversion factors used by the rotation accessors.
const (
	RadToDeg float32 = 57.2957795
	DegToRad float32 = 0.0174532925
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default marker tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a color.RGBA (premultiplied).
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned screen rectangle. The origin is the top-left corner,
// with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType identifies which variant of the shared node shape a Node carries.
type NodeType uint8

const (
	NodeTypeGroup     NodeType = iota // relays its world matrix unchanged
	NodeTypeTransform                 // composes a scale/rotate/translate local transform
	NodeTypeBillboard                 // transform whose rotation faces a tracked node
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeTransform:
		return "transform"
	case NodeTypeBillboard:
		return "billboard"
	default:
		return "unknown"
	}
}

// RotationOrder selects the sequence in which per-axis Euler rotations are
// applied. RotateXYZ applies X first, then Y, then Z.
type RotationOrder uint8

const (
	RotateXYZ RotationOrder = iota
	RotateXZY
	RotateYXZ
	RotateYZX
	RotateZXY
	RotateZYX
)

// rotationAxes lists, per order, the axis indices in application order.
var rotationAxes = [...][3]int{
	RotateXYZ: {0, 1, 2},
	RotateXZY: {0, 2, 1},
	RotateYXZ: {1, 0, 2},
	RotateYZX: {1, 2, 0},
	RotateZXY: {2, 0, 1},
	RotateZYX: {2, 1, 0},
}

func (o RotationOrder) String() string {
	switch o {
	case RotateXYZ:
		return "XYZ"
	case RotateXZY:
		return "XZY"
	case RotateYXZ:
		return "YXZ"
	case RotateYZX:
		return "YZX"
	case RotateZXY:
		return "ZXY"
	case RotateZYX:
		return "ZYX"
	default:
		return "invalid"
	}
}

// Valid reports whether o is one of the six supported orderings.
func (o RotationOrder) Valid() bool {
	return o <= RotateZYX
}

// identity is the 4x4 identity matrix.
var identity = mgl32.Ident4()
