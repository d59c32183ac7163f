package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// transformCore holds the decomposed local transform shared by Transform and
// Billboard. Its matrices are recombined synchronously on every mutation:
//
//	local = translate · rotate · scale
//	world = parentWorld · local
//
// so points are scaled first, then rotated, then translated, and a child's
// local transform applies before its ancestors'.
type transformCore struct {
	Node

	localScale     mgl32.Mat4
	localRotate    mgl32.Mat4
	localTranslate mgl32.Mat4
	localTransform mgl32.Mat4

	// parentWorld is the matrix last received from the hierarchy.
	parentWorld mgl32.Mat4

	translation mgl32.Vec3
	scale       mgl32.Vec3
}

func (t *transformCore) initCore(name string, typ NodeType, impl element) {
	nodeDefaults(&t.Node, name, typ, impl)
	t.localScale = identity
	t.localRotate = identity
	t.localTranslate = identity
	t.localTransform = identity
	t.parentWorld = identity
	t.scale = mgl32.Vec3{1, 1, 1}
}

func (t *transformCore) setWorld(m mgl32.Mat4) {
	t.parentWorld = m
	t.propagate()
}

// compose rebuilds the local transform and propagates it.
func (t *transformCore) compose() {
	t.localTransform = t.localTranslate.Mul4(t.localRotate).Mul4(t.localScale)
	t.propagate()
}

func (t *transformCore) propagate() {
	t.storeWorld(t.parentWorld.Mul4(t.localTransform))
	t.relayWorld()
}

// LocalTransform returns the combined local matrix.
func (t *transformCore) LocalTransform() mgl32.Mat4 { return t.localTransform }

// LocalScaleMatrix returns the scale component of the local transform.
func (t *transformCore) LocalScaleMatrix() mgl32.Mat4 { return t.localScale }

// LocalRotateMatrix returns the rotation component of the local transform.
func (t *transformCore) LocalRotateMatrix() mgl32.Mat4 { return t.localRotate }

// LocalTranslateMatrix returns the translation component of the local transform.
func (t *transformCore) LocalTranslateMatrix() mgl32.Mat4 { return t.localTranslate }

// ParentWorldMatrix returns the world matrix received from the hierarchy.
func (t *transformCore) ParentWorldMatrix() mgl32.Mat4 { return t.parentWorld }

// --- Translation ---

// Position returns the local translation.
func (t *transformCore) Position() mgl32.Vec3 {
	return t.translation
}

// SetPosition sets the local translation.
func (t *transformCore) SetPosition(p mgl32.Vec3) {
	t.translation = p
	t.localTranslate = mgl32.Translate3D(p[0], p[1], p[2])
	t.compose()
}

// SetPositionX sets the X component of the local translation.
func (t *transformCore) SetPositionX(x float32) {
	p := t.translation
	p[0] = x
	t.SetPosition(p)
}

// SetPositionY sets the Y component of the local translation.
func (t *transformCore) SetPositionY(y float32) {
	p := t.translation
	p[1] = y
	t.SetPosition(p)
}

// SetPositionZ sets the Z component of the local translation.
func (t *transformCore) SetPositionZ(z float32) {
	p := t.translation
	p[2] = z
	t.SetPosition(p)
}

// Translate offsets the local translation by d.
func (t *transformCore) Translate(d mgl32.Vec3) {
	t.SetPosition(t.translation.Add(d))
}

// ResetTranslate clears the local translation.
func (t *transformCore) ResetTranslate() {
	t.translation = mgl32.Vec3{}
	t.localTranslate = identity
	t.compose()
}

// --- Scale ---

// ScaleFactor returns the per-axis local scale.
func (t *transformCore) ScaleFactor() mgl32.Vec3 {
	return t.scale
}

// SetScale sets the per-axis local scale.
func (t *transformCore) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.localScale = mgl32.Scale3D(s[0], s[1], s[2])
	t.compose()
}

// SetUniformScale sets all three scale axes to s.
func (t *transformCore) SetUniformScale(s float32) {
	t.SetScale(mgl32.Vec3{s, s, s})
}

// Scale multiplies the current scale component-wise by f.
func (t *transformCore) Scale(f mgl32.Vec3) {
	t.SetScale(mgl32.Vec3{t.scale[0] * f[0], t.scale[1] * f[1], t.scale[2] * f[2]})
}

// ResetScale restores unit scale.
func (t *transformCore) ResetScale() {
	t.scale = mgl32.Vec3{1, 1, 1}
	t.localScale = identity
	t.compose()
}

// --- Transform ---

// Rotator is the orientation capability of a node whose rotation is directly
// assignable. *Transform implements it; *Billboard does not.
type Rotator interface {
	Element
	Rotation() mgl32.Vec3
	SetRotation(r mgl32.Vec3)
	SetRotationX(rad float32)
	SetRotationY(rad float32)
	SetRotationZ(rad float32)
	Rotate(d mgl32.Vec3)
	RotateX(rad float32)
	RotateY(rad float32)
	RotateZ(rad float32)
	RotateAxis(axis mgl32.Vec3, rad float32)
	ResetRotate()
}

// Transform is a node with a decomposed local transform: independent scale,
// Euler rotation and translation, recombined and composed with the parent's
// world matrix on every mutation.
type Transform struct {
	transformCore

	order    RotationOrder
	rotation mgl32.Vec3
}

var _ Rotator = (*Transform)(nil)

// NewTransform creates a detached transform node with identity local
// transform and XYZ rotation order.
func NewTransform(name string) *Transform {
	t := &Transform{}
	t.initCore(name, NodeTypeTransform, t)
	return t
}

// rebuildRotation regenerates the rotation matrix from the Euler angles,
// discarding anything applied through RotateAxis, and recomposes.
func (t *Transform) rebuildRotation() {
	t.localRotate = eulerMatrix(t.rotation, t.order)
	t.compose()
}

// Rotation returns the Euler angles in radians.
func (t *Transform) Rotation() mgl32.Vec3 {
	return t.rotation
}

// SetRotation sets the Euler angles in radians.
func (t *Transform) SetRotation(r mgl32.Vec3) {
	t.rotation = r
	t.rebuildRotation()
}

// SetRotationX sets the rotation about the X axis in radians.
func (t *Transform) SetRotationX(rad float32) {
	t.rotation[0] = rad
	t.rebuildRotation()
}

// SetRotationY sets the rotation about the Y axis in radians.
func (t *Transform) SetRotationY(rad float32) {
	t.rotation[1] = rad
	t.rebuildRotation()
}

// SetRotationZ sets the rotation about the Z axis in radians.
func (t *Transform) SetRotationZ(rad float32) {
	t.rotation[2] = rad
	t.rebuildRotation()
}

// Rotate adds d (radians) to the Euler angles.
func (t *Transform) Rotate(d mgl32.Vec3) {
	t.rotation = t.rotation.Add(d)
	t.rebuildRotation()
}

// RotateX adds rad to the rotation about the X axis.
func (t *Transform) RotateX(rad float32) {
	t.rotation[0] += rad
	t.rebuildRotation()
}

// RotateY adds rad to the rotation about the Y axis.
func (t *Transform) RotateY(rad float32) {
	t.rotation[1] += rad
	t.rebuildRotation()
}

// RotateZ adds rad to the rotation about the Z axis.
func (t *Transform) RotateZ(rad float32) {
	t.rotation[2] += rad
	t.rebuildRotation()
}

// RotateAxis applies a rotation of rad about an arbitrary local axis ahead of
// the current rotation. The Euler angles are not updated, so the next Euler
// mutator discards it; translation and scale changes keep it. A zero axis is
// ignored.
func (t *Transform) RotateAxis(axis mgl32.Vec3, rad float32) {
	if axis.Len() == 0 {
		return
	}
	t.localRotate = t.localRotate.Mul4(mgl32.HomogRotate3D(rad, axis.Normalize()))
	t.compose()
}

// RotationDegrees returns the Euler angles in degrees.
func (t *Transform) RotationDegrees() mgl32.Vec3 {
	return t.rotation.Mul(RadToDeg)
}

// SetRotationDegrees sets the Euler angles from degrees.
func (t *Transform) SetRotationDegrees(deg mgl32.Vec3) {
	t.SetRotation(deg.Mul(DegToRad))
}

// ResetRotate clears the Euler angles and any axis rotation.
func (t *Transform) ResetRotate() {
	t.rotation = mgl32.Vec3{}
	t.localRotate = identity
	t.compose()
}

// RotationOrder returns the Euler axis ordering.
func (t *Transform) RotationOrder() RotationOrder {
	return t.order
}

// SetRotationOrder selects the Euler axis ordering and rebuilds the rotation.
// Invalid orderings are ignored.
func (t *Transform) SetRotationOrder(o RotationOrder) {
	if !o.Valid() {
		return
	}
	t.order = o
	t.rebuildRotation()
}

// eulerMatrix composes the three elementary rotations of r so that the first
// axis of order is applied first.
func eulerMatrix(r mgl32.Vec3, order RotationOrder) mgl32.Mat4 {
	if !order.Valid() {
		order = RotateXYZ
	}
	m := identity
	for _, axis := range rotationAxes[order] {
		m = elementaryRotation(axis, r[axis]).Mul4(m)
	}
	return m
}

func elementaryRotation(axis int, rad float32) mgl32.Mat4 {
	switch axis {
	case 0:
		return mgl32.HomogRotate3DX(rad)
	case 1:
		return mgl32.HomogRotate3DY(rad)
	default:
		return mgl32.HomogRotate3DZ(rad)
	}
}
