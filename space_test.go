package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// buildChain returns root -> a -> b with non-trivial transforms on each.
func buildChain() (root *Node, a, b *Transform) {
	root = NewNode("root")
	a = NewTransform("a")
	a.SetPosition(mgl32.Vec3{3, -1, 2})
	a.SetRotationDegrees(mgl32.Vec3{20, 40, 60})
	a.SetScale(mgl32.Vec3{2, 1, 0.5})
	b = NewTransform("b")
	b.SetPosition(mgl32.Vec3{0, 4, 0})
	b.SetRotationDegrees(mgl32.Vec3{0, 0, -30})
	_ = root.AddChild(a)
	_ = a.AddChild(b)
	return root, a, b
}

func TestWorldInverseIsInverse(t *testing.T) {
	_, a, b := buildChain()
	for _, n := range []*Transform{a, b} {
		got := n.WorldMatrix().Mul4(n.WorldInverse())
		if d := maxDiff(got, mgl32.Ident4()); d > epsilon {
			t.Errorf("%s: world·inverse deviates from identity by %v", n.Name, d)
		}
	}
}

func TestWorldInverseCache(t *testing.T) {
	tr := NewTransform("t")
	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	if tr.inverseValid {
		t.Fatal("inverse should be stale after a mutation")
	}
	inv := tr.WorldInverse()
	if !tr.inverseValid {
		t.Fatal("inverse should be cached after WorldInverse")
	}
	if tr.WorldInverse() != inv {
		t.Error("cached inverse should be returned unchanged")
	}
	assertVec3(t, "inverse translation", inv.Col(3).Vec3(), mgl32.Vec3{-1, -2, -3}, epsilon)

	tr.SetPosition(mgl32.Vec3{0, 0, 1})
	if tr.inverseValid {
		t.Error("inverse should be invalidated by a world change")
	}
	assertVec3(t, "recomputed", tr.WorldInverse().Col(3).Vec3(), mgl32.Vec3{0, 0, -1}, epsilon)
}

func TestWorldInverseInvalidatedByAncestor(t *testing.T) {
	_, a, b := buildChain()
	_ = b.WorldInverse()
	a.SetPositionX(10)
	if b.inverseValid {
		t.Error("descendant inverse should be invalidated when an ancestor moves")
	}
}

func TestWorldInverseSingular(t *testing.T) {
	tr := NewTransform("flat")
	tr.SetScale(mgl32.Vec3{1, 0, 1})
	if tr.WorldInverse() != mgl32.Ident4() {
		t.Errorf("singular world should invert to identity, got %v", tr.WorldInverse())
	}
}

func TestWorldInverseTinyScale(t *testing.T) {
	tr := NewTransform("tiny")
	tr.SetScale(mgl32.Vec3{1e-4, 1e-4, 1e-4})
	tr.SetRotationDegrees(mgl32.Vec3{10, 20, 30})
	if d := maxDiff(tr.WorldMatrix().Mul4(tr.WorldInverse()), mgl32.Ident4()); d > epsilon {
		t.Errorf("world·inverse deviates from identity by %v", d)
	}
	p := mgl32.Vec3{1e-4, -2e-4, 3e-4}
	assertVec3(t, "to local", tr.GlobalToLocal(p), tr.WorldInverse().Mul4x1(p.Vec4(1)).Vec3(), epsilon)
	if tr.WorldInverse() == mgl32.Ident4() {
		t.Error("a tiny but non-zero scale must not be treated as singular")
	}
}

func TestWorldInverseNestedSmallScales(t *testing.T) {
	outer := NewTransform("cm")
	outer.SetUniformScale(0.01)
	inner := NewTransform("mm")
	inner.SetUniformScale(0.01)
	inner.SetPosition(mgl32.Vec3{50, 0, 0})
	_ = outer.AddChild(inner)

	if d := maxDiff(inner.WorldMatrix().Mul4(inner.WorldInverse()), mgl32.Ident4()); d > epsilon {
		t.Errorf("world·inverse deviates from identity by %v", d)
	}
	// Local (100,0,0) -> 1 in outer space -> +50 -> 51 -> 0.51 globally.
	g := inner.LocalToGlobal(mgl32.Vec3{100, 0, 0})
	assertVec3(t, "global", g, mgl32.Vec3{0.51, 0, 0}, epsilon)
	assertVec3(t, "back to local", inner.GlobalToLocal(g), mgl32.Vec3{100, 0, 0}, 1e-3)
}

func TestLocalGlobalRoundTrip(t *testing.T) {
	_, _, b := buildChain()
	points := []mgl32.Vec3{{0, 0, 0}, {1, 2, 3}, {-5, 0.5, 7}}
	for _, p := range points {
		g := b.LocalToGlobal(p)
		assertVec3(t, "round trip", b.GlobalToLocal(g), p, 1e-4)
	}
}

func TestLocalToGlobalMatchesWorldMatrix(t *testing.T) {
	_, a, _ := buildChain()
	p := mgl32.Vec3{1, 1, 1}
	want := a.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
	assertVec3(t, "LocalToGlobal", a.LocalToGlobal(p), want, epsilon)
}

func TestNormalsIgnoreTranslation(t *testing.T) {
	tr := NewTransform("t")
	tr.SetPosition(mgl32.Vec3{100, -50, 25})
	v := mgl32.Vec3{0, 1, 0}
	assertVec3(t, "to global", tr.LocalToGlobalNormal(v), v, epsilon)
	assertVec3(t, "to local", tr.GlobalToLocalNormal(v), v, epsilon)

	tr.SetRotationDegrees(mgl32.Vec3{0, 0, 90})
	assertVec3(t, "rotated", tr.LocalToGlobalNormal(mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 1, 0}, epsilon)
	assertVec3(t, "rotated back", tr.GlobalToLocalNormal(mgl32.Vec3{0, 1, 0}), mgl32.Vec3{1, 0, 0}, epsilon)
}

func TestLocalToLocal(t *testing.T) {
	root := NewNode("root")
	a := NewTransform("a")
	a.SetPosition(mgl32.Vec3{1, 0, 0})
	b := NewTransform("b")
	b.SetPosition(mgl32.Vec3{0, 2, 0})
	b.SetRotationDegrees(mgl32.Vec3{0, 0, 90})
	_ = root.AddChild(a)
	_ = root.AddChild(b)

	// a's origin is (1,0,0) globally: offset (1,-2,0) from b, rotated by -90° about Z.
	got := LocalToLocal(a, b, mgl32.Vec3{})
	assertVec3(t, "point", got, mgl32.Vec3{-2, -1, 0}, epsilon)

	gotN := LocalToLocalNormal(a, b, mgl32.Vec3{1, 0, 0})
	assertVec3(t, "normal", gotN, mgl32.Vec3{0, -1, 0}, epsilon)
}

func TestTransformBetween(t *testing.T) {
	_, a, b := buildChain()
	other := NewTransform("other")
	other.SetPosition(mgl32.Vec3{-4, 1, 9})
	other.SetRotationDegrees(mgl32.Vec3{10, 0, 0})

	m := TransformBetween(b, other)
	p := mgl32.Vec3{0.5, -2, 3}
	want := LocalToLocal(b, other, p)
	assertVec3(t, "TransformBetween·p", mgl32.TransformCoordinate(p, m), want, 1e-4)

	if d := maxDiff(TransformBetween(a, a), mgl32.Ident4()); d > epsilon {
		t.Errorf("TransformBetween(a, a) deviates from identity by %v", d)
	}
}

func TestGroupRelaysWorld(t *testing.T) {
	a := NewTransform("a")
	a.SetPosition(mgl32.Vec3{1, 2, 3})
	g := NewNode("g")
	c := NewTransform("c")
	c.SetPosition(mgl32.Vec3{1, 0, 0})
	_ = a.AddChild(g)
	_ = g.AddChild(c)

	assertMat4(t, "group world", g.WorldMatrix(), a.WorldMatrix(), 0)
	assertVec3(t, "child world pos", c.WorldPosition(), mgl32.Vec3{2, 2, 3}, epsilon)

	a.SetPositionY(0)
	assertMat4(t, "group world after move", g.WorldMatrix(), a.WorldMatrix(), 0)
	assertVec3(t, "child world pos after move", c.WorldPosition(), mgl32.Vec3{2, 0, 3}, epsilon)
}

func TestSetWorldMatrixOnRoot(t *testing.T) {
	g := NewNode("g")
	c := NewTransform("c")
	c.SetPosition(mgl32.Vec3{0, 1, 0})
	_ = g.AddChild(c)

	m := mgl32.Translate3D(10, 0, 0)
	g.SetWorldMatrix(m)
	assertMat4(t, "group", g.WorldMatrix(), m, 0)
	assertMat4(t, "child parent world", c.ParentWorldMatrix(), m, 0)
	assertVec3(t, "child", c.WorldPosition(), mgl32.Vec3{10, 1, 0}, epsilon)

	// On a transform the matrix is taken as the parent world.
	c.SetWorldMatrix(mgl32.Translate3D(0, 0, 5))
	assertVec3(t, "transform root", c.WorldPosition(), mgl32.Vec3{0, 1, 5}, epsilon)
}
