package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAxisSegments(t *testing.T) {
	cam := NewCamera(Rect{Width: 640, Height: 480})
	n := NewNode("axes")

	segs := axisSegments(cam, n, 1)
	if len(segs) != 3 {
		t.Fatalf("segments = %d, want 3", len(segs))
	}
	for i, s := range segs {
		assertNear(t, "x0", s.x0, 320)
		assertNear(t, "y0", s.y0, 240)
		if s.x0 == s.x1 && s.y0 == s.y1 && i < 2 {
			t.Errorf("segment %d should not be degenerate", i)
		}
	}
	if segs[0].x1 <= 320 {
		t.Errorf("X axis should point right, x1=%v", segs[0].x1)
	}
	if segs[1].y1 >= 240 {
		t.Errorf("Y axis should point up, y1=%v", segs[1].y1)
	}
	if segs[0].color != axisColorX || segs[1].color != axisColorY || segs[2].color != axisColorZ {
		t.Error("axis colors out of order")
	}
}

func TestAxisSegmentsFollowNode(t *testing.T) {
	cam := NewCamera(Rect{Width: 640, Height: 480})
	parent := NewTransform("parent")
	parent.SetPosition(mgl32.Vec3{1, 0, 0})
	g := NewNode("axes")
	_ = parent.AddChild(g)

	segs := axisSegments(cam, g, 1)
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	if segs[0].x0 <= 320 {
		t.Errorf("origin should project right of center, x0=%v", segs[0].x0)
	}
}

func TestAxisSegmentsBehindCamera(t *testing.T) {
	cam := NewCamera(Rect{Width: 640, Height: 480})
	n := NewNode("axes")
	n.SetWorldMatrix(mgl32.Translate3D(0, 0, 20))
	if segs := axisSegments(cam, n, 1); segs != nil {
		t.Errorf("segments = %v, want nil", segs)
	}
}
