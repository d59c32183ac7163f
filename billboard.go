package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// parallelEpsilon bounds |forward × up| below which up is treated as
	// parallel to forward.
	parallelEpsilon = 1e-6
	// coincidentEpsilon is the distance below which the tracked node is
	// considered to sit on the billboard, leaving no direction to face.
	coincidentEpsilon = 1e-6
)

var (
	defaultUp   = mgl32.Vec3{0, 1, 0}
	alternateUp = mgl32.Vec3{0, 0, 1}
	fallbackUp  = mgl32.Vec3{1, 0, 0}
)

// Billboard is a transform whose rotation is derived: it turns to face a
// tracked node instead of holding an assignable orientation. Translation and
// scale behave as on Transform. It offers no Euler or axis rotation
// mutators; Node.Rotator fails with ErrUnsupportedOperation.
//
// The derived rotation is basis · axisRotation, where basis maps local +Z to
// the direction from this node's world position to the target's and
// axisRotation spins about that forward axis. With no target the rotation is
// the identity.
type Billboard struct {
	transformCore

	target       *Node
	upVector     mgl32.Vec3
	axisRotation float32
	axisMatrix   mgl32.Mat4

	lastTrackerPosition mgl32.Vec3
	lastOwnPosition     mgl32.Vec3
	tracking            bool
	lookValid           bool
}

// NewBillboard creates a detached billboard with +Y as its up vector and no
// target.
func NewBillboard(name string) *Billboard {
	b := &Billboard{}
	b.initCore(name, NodeTypeBillboard, b)
	b.upVector = defaultUp
	b.axisMatrix = identity
	return b
}

func (b *Billboard) update(view, proj mgl32.Mat4) {
	b.traverseUpdate(view, proj)
	if !b.unloaded {
		b.UpdateBillboard()
	}
}

// Target returns the tracked node, or nil if none is set or it has been
// unloaded.
func (b *Billboard) Target() *Node {
	if b.target != nil && b.target.unloaded {
		return nil
	}
	return b.target
}

// SetTarget starts tracking target (nil stops tracking) and recomputes the
// rotation immediately. The reference is not owned.
func (b *Billboard) SetTarget(target Element) {
	b.target = sceneNode(target)
	b.lookValid = false
	b.UpdateBillboard()
}

// UpVector returns the configured up direction.
func (b *Billboard) UpVector() mgl32.Vec3 {
	return b.upVector
}

// SetUpVector sets the up direction used to build the look-at basis. When it
// is parallel to the facing direction, +Z (or +X if facing along Z) is used
// instead.
func (b *Billboard) SetUpVector(up mgl32.Vec3) {
	b.upVector = up
	b.lookValid = false
	b.UpdateBillboard()
}

// AxisRotation returns the spin about the facing axis in radians.
func (b *Billboard) AxisRotation() float32 {
	return b.axisRotation
}

// SetAxisRotation sets the spin about the facing axis in radians. It is
// applied before the look-at basis.
func (b *Billboard) SetAxisRotation(rad float32) {
	b.axisRotation = rad
	b.axisMatrix = mgl32.HomogRotate3DZ(rad)
	b.lookValid = false
	b.UpdateBillboard()
}

// AxisRotationDegrees returns the spin about the facing axis in degrees.
func (b *Billboard) AxisRotationDegrees() float32 {
	return b.axisRotation * RadToDeg
}

// SetAxisRotationDegrees sets the spin about the facing axis from degrees.
func (b *Billboard) SetAxisRotationDegrees(deg float32) {
	b.SetAxisRotation(deg * DegToRad)
}

// UpdateBillboard recomputes the look-at rotation if the target's or this
// node's world position changed since the last recompute, or if the target,
// up vector or axis rotation was reassigned. It reports whether the rotation
// was rebuilt.
func (b *Billboard) UpdateBillboard() bool {
	target := b.Target()
	if target == nil {
		if b.lookValid && !b.tracking {
			return false
		}
		b.tracking = false
		b.lookValid = true
		b.localRotate = identity
		b.compose()
		return true
	}

	own := b.WorldPosition()
	tracker := target.WorldPosition()
	if b.lookValid && b.tracking && tracker == b.lastTrackerPosition && own == b.lastOwnPosition {
		return false
	}
	b.lastTrackerPosition = tracker
	b.lastOwnPosition = own
	b.tracking = true
	b.lookValid = true

	basis, ok := lookAtBasis(own, tracker, b.upVector)
	if !ok {
		return false
	}
	b.localRotate = basis.Mul4(b.axisMatrix)
	b.compose()
	return true
}

// lookAtBasis returns the rotation whose columns are right, up' and forward
// for an observer at own facing target. ok is false when the two positions
// coincide.
func lookAtBasis(own, target, up mgl32.Vec3) (m mgl32.Mat4, ok bool) {
	forward := target.Sub(own)
	if forward.Len() < coincidentEpsilon {
		return identity, false
	}
	forward = forward.Normalize()

	if parallel(forward, up) {
		up = alternateUp
		if parallel(forward, up) {
			up = fallbackUp
		}
	}
	right := forward.Cross(up).Normalize()
	upPrime := forward.Cross(right)

	return mgl32.Mat4FromCols(
		right.Vec4(0),
		upPrime.Vec4(0),
		forward.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	), true
}

// parallel reports whether up gives no usable cross product with the unit
// vector forward. A zero up counts as parallel.
func parallel(forward, up mgl32.Vec3) bool {
	l := up.Len()
	if l < parallelEpsilon {
		return true
	}
	return forward.Cross(up.Mul(1/l)).Len() < parallelEpsilon
}
