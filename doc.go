// Package arbor is a hierarchical 3D transform tree for [Ebitengine] games.
//
// Arbor keeps a tree of scene nodes, composes each node's local scale,
// rotation and translation with its parent's world matrix, caches the
// derived world matrix and its lazily computed inverse, and supports
// reparenting, sibling ordering and teardown without ever forming a cycle.
// Drawing is left to per-node render hooks.
//
// # Quick start
//
//	scene := arbor.NewScene()
//	// ... add nodes ...
//	arbor.Run(scene, arbor.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly, or drive a tree without a scene
// by calling [Node.Update] and [Node.RenderChildren] each frame.
//
// # Node variants
//
// Every element is a [Node]. Three variants share that shape:
//
//   - [NewNode] creates a group node, which relays its world matrix unchanged.
//   - [NewTransform] creates a [Transform] with independent scale, Euler
//     rotation (six axis orders) and translation.
//   - [NewBillboard] creates a [Billboard], a transform that turns to face a
//     tracked node. Its orientation is derived, so it has no rotation
//     mutators and [Node.Rotator] reports [ErrUnsupportedOperation].
//
//	arm := arbor.NewTransform("arm")
//	arm.SetPosition(mgl32.Vec3{0, 2, 0})
//	arm.SetRotationDegrees(mgl32.Vec3{0, 45, 0})
//	if err := scene.Root().AddChild(arm); err != nil {
//		// ErrInvalidHierarchy: self-parenting or a cycle
//	}
//
// Structural violations return errors; index-based calls with bad indices or
// absent children are silently ignored.
//
// Matrices follow the column-vector convention of [mgl32]: a node's local
// matrix is translate·rotate·scale and its world matrix is
// parentWorld·local.
//
// [Ebitengine]: https://ebitengine.org
// [mgl32]: https://pkg.go.dev/github.com/go-gl/mathgl/mgl32
package arbor
