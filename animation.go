package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Positioner is implemented by *Transform and *Billboard.
type Positioner interface {
	Element
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
}

// Scaler is implemented by *Transform and *Billboard.
type Scaler interface {
	Element
	ScaleFactor() mgl32.Vec3
	SetScale(s mgl32.Vec3)
}

// TweenGroup animates up to 4 float32 values simultaneously and hands them to
// the target's setter after every step, so the transform pipeline reruns.
// Create one via the convenience constructors and call Update(dt) each frame.
// If the target node is unloaded, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float32
	apply  func(v [4]float32)
	target *Node
	Done   bool
}

func newTweenGroup(target Element, from, to []float32, duration float32, fn ease.TweenFunc, apply func(v [4]float32)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: target.SceneNode(), apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(from[i], to[i], duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target node has been unloaded, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsUnloaded() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// TweenPosition creates a TweenGroup that moves node to the given local
// position over duration seconds using the easing function.
func TweenPosition(node Positioner, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Position()
	return newTweenGroup(node, from[:], to[:], duration, fn, func(v [4]float32) {
		node.SetPosition(mgl32.Vec3{v[0], v[1], v[2]})
	})
}

// TweenScale creates a TweenGroup that animates the node's scale.
func TweenScale(node Scaler, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.ScaleFactor()
	return newTweenGroup(node, from[:], to[:], duration, fn, func(v [4]float32) {
		node.SetScale(mgl32.Vec3{v[0], v[1], v[2]})
	})
}

// TweenRotation creates a TweenGroup that animates the Euler angles (radians)
// of a transform.
func TweenRotation(node *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Rotation()
	return newTweenGroup(node, from[:], to[:], duration, fn, func(v [4]float32) {
		node.SetRotation(mgl32.Vec3{v[0], v[1], v[2]})
	})
}

// TweenAxisRotation creates a TweenGroup that spins a billboard about its
// facing axis to the given angle in radians.
func TweenAxisRotation(node *Billboard, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []float32{node.AxisRotation()}, []float32{to}, duration, fn, func(v [4]float32) {
		node.SetAxisRotation(v[0])
	})
}
