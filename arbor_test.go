package arbor

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math32.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl32.Vec3, tol float32) {
	t.Helper()
	for i := range got {
		if math32.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMat4(t *testing.T, name string, got, want mgl32.Mat4, tol float32) {
	t.Helper()
	for i := range got {
		if math32.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func maxDiff(a, b mgl32.Mat4) float32 {
	var d float32
	for i := range a {
		if v := math32.Abs(a[i] - b[i]); v > d {
			d = v
		}
	}
	return d
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float32
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Enums ---

func TestRotationOrderString(t *testing.T) {
	tests := []struct {
		order RotationOrder
		want  string
	}{
		{RotateXYZ, "XYZ"},
		{RotateXZY, "XZY"},
		{RotateYXZ, "YXZ"},
		{RotateYZX, "YZX"},
		{RotateZXY, "ZXY"},
		{RotateZYX, "ZYX"},
		{RotationOrder(42), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.order.String(); got != tt.want {
			t.Errorf("RotationOrder(%d).String() = %q, want %q", tt.order, got, tt.want)
		}
	}
	if RotationOrder(6).Valid() {
		t.Error("RotationOrder(6) should be invalid")
	}
	if !RotateZYX.Valid() {
		t.Error("RotateZYX should be valid")
	}
}

func TestRotationAxesArePermutations(t *testing.T) {
	for o := RotateXYZ; o <= RotateZYX; o++ {
		var seen [3]bool
		for _, a := range rotationAxes[o] {
			seen[a] = true
		}
		if !seen[0] || !seen[1] || !seen[2] {
			t.Errorf("order %s axes %v is not a permutation", o, rotationAxes[o])
		}
	}
}

func TestNodeTypeString(t *testing.T) {
	if NodeTypeGroup.String() != "group" || NodeTypeTransform.String() != "transform" || NodeTypeBillboard.String() != "billboard" {
		t.Errorf("unexpected NodeType names: %s %s %s", NodeTypeGroup, NodeTypeTransform, NodeTypeBillboard)
	}
}

// --- Color ---

func TestColorToRGBAPremultiplied(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if ColorWhite.toRGBA() != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white = %v", ColorWhite.toRGBA())
	}
}

func TestColorClamp(t *testing.T) {
	got := Color{2, -1, 0.5, 1}.toRGBA()
	if got.R != 255 || got.G != 0 {
		t.Errorf("toRGBA = %v, want clamped channels", got)
	}
}

func TestDegreeConstants(t *testing.T) {
	assertNear(t, "RadToDeg*DegToRad", RadToDeg*DegToRad, 1)
	assertNear(t, "180 deg", 180*DegToRad, math32.Pi)
}
