package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldMatrix returns the cached matrix mapping this node's local space to
// global space.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	return n.world
}

// SetWorldMatrix pushes m into the node as its incoming world matrix and
// relays the result to every descendant. Group nodes store m as is; transform
// nodes treat m as their parent's world matrix and store m·local.
func (n *Node) SetWorldMatrix(m mgl32.Mat4) {
	n.behavior().setWorld(m)
}

func (n *Node) setWorld(m mgl32.Mat4) {
	n.storeWorld(m)
	n.relayWorld()
}

// storeWorld caches m and invalidates the inverse.
func (n *Node) storeWorld(m mgl32.Mat4) {
	n.world = m
	n.inverseValid = false
}

func (n *Node) relayWorld() {
	for _, c := range n.children {
		c.behavior().setWorld(n.world)
	}
}

// WorldInverse returns the inverse of WorldMatrix, recomputing it only if the
// world matrix has been written since the last read. A singular world matrix
// yields the identity.
func (n *Node) WorldInverse() mgl32.Mat4 {
	if !n.inverseValid {
		n.worldInverse = invert(n.world)
		n.inverseValid = true
	}
	return n.worldInverse
}

// invert returns the inverse of m, or the identity when m has no finite
// inverse. mgl32 signals a failed inversion with a zero matrix.
func invert(m mgl32.Mat4) mgl32.Mat4 {
	if m.Det() == 0 {
		return identity
	}
	inv := m.Inv()
	if inv == (mgl32.Mat4{}) {
		return identity
	}
	for _, v := range inv {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return identity
		}
	}
	return inv
}

// WorldPosition returns the translation part of WorldMatrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.world.Col(3).Vec3()
}

// --- Coordinate conversion ---

// LocalToGlobal converts a point in this node's local space to global space.
func (n *Node) LocalToGlobal(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, n.world)
}

// GlobalToLocal converts a global point to this node's local space.
func (n *Node) GlobalToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, n.WorldInverse())
}

// LocalToGlobalNormal converts a local direction to global space. The
// translation component of the world matrix is ignored.
func (n *Node) LocalToGlobalNormal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformNormal(v, n.world)
}

// GlobalToLocalNormal converts a global direction to this node's local space.
func (n *Node) GlobalToLocalNormal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformNormal(v, n.WorldInverse())
}

// LocalToLocal converts a point from the local space of from to the local
// space of to.
func LocalToLocal(from, to Element, p mgl32.Vec3) mgl32.Vec3 {
	return to.SceneNode().GlobalToLocal(from.SceneNode().LocalToGlobal(p))
}

// LocalToLocalNormal converts a direction from the local space of from to the
// local space of to.
func LocalToLocalNormal(from, to Element, v mgl32.Vec3) mgl32.Vec3 {
	return to.SceneNode().GlobalToLocalNormal(from.SceneNode().LocalToGlobalNormal(v))
}

// TransformBetween returns the matrix mapping points in current's local space
// directly into target's local space.
func TransformBetween(current, target Element) mgl32.Mat4 {
	return target.SceneNode().WorldInverse().Mul4(current.SceneNode().WorldMatrix())
}
