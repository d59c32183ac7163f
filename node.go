package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Unbounded disables the depth limit of HasDescendant.
const Unbounded = -1

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: arbor is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Element is implemented by every node variant (*Node, *Transform,
// *Billboard) so they can be passed to structural calls directly.
type Element interface {
	// SceneNode returns the shared node data of the variant.
	SceneNode() *Node
}

// element is the per-variant behavior a Node dispatches to.
type element interface {
	Element
	// setWorld receives the world matrix pushed down by the parent (or set
	// explicitly on a root) and relays the result to the children.
	setWorld(m mgl32.Mat4)
	update(view, proj mgl32.Mat4)
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct carries the
// hierarchy and world-matrix cache for all variants; Type records which
// variant owns it and Element returns the variant handle.
//
// Children are owned by their parent and ordered; order is render order.
// The parent link is a plain back-reference maintained only by the
// structural methods, so the graph is always a forest.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Visible gates rendering of this node and its whole subtree.
	Visible bool

	// Hierarchy
	parent   *Node
	children []*Node

	// World matrix cache. worldInverse is stale whenever inverseValid is false.
	world        mgl32.Mat4
	worldInverse mgl32.Mat4
	inverseValid bool

	impl element

	// Metadata
	UserData any

	// Per-node hooks (nil by default).
	OnUpdate  func(n *Node, view, proj mgl32.Mat4)
	OnRender  func(n *Node)
	OnDispose func(n *Node)

	unloaded bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node, name string, typ NodeType, impl element) {
	n.ID = nextNodeID()
	n.Name = name
	n.Type = typ
	n.Visible = true
	n.world = identity
	n.impl = impl
}

// NewNode creates a detached group node. Group nodes do not transform; they
// relay the world matrix they receive to their children unchanged.
func NewNode(name string) *Node {
	n := &Node{}
	nodeDefaults(n, name, NodeTypeGroup, n)
	return n
}

// SceneNode returns n itself.
func (n *Node) SceneNode() *Node {
	return n
}

// Element returns the variant handle that owns n: n itself for group nodes,
// the *Transform or *Billboard otherwise.
func (n *Node) Element() Element {
	return n.behavior()
}

func (n *Node) behavior() element {
	if n.impl == nil {
		return n
	}
	return n.impl
}

// Rotator returns the rotation capability of the node. Group nodes have no
// local transform and billboards derive their orientation, so both fail with
// ErrUnsupportedOperation.
func (n *Node) Rotator() (Rotator, error) {
	if r, ok := n.behavior().(Rotator); ok {
		return r, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOperation, "node %q (%s): orientation is not assignable", n.Name, n.Type)
}

// --- Tree queries ---

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up the parent chain and returns the topmost node.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of immediate children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// NumTotalChildren returns the number of descendants: every child plus
// everything below it.
func (n *Node) NumTotalChildren() int {
	total := len(n.children)
	for _, c := range n.children {
		total += c.NumTotalChildren()
	}
	return total
}

// ChildAt returns the child at the given index, or nil if the index is out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child Element) int {
	c := sceneNode(child)
	if c == nil || c.parent != n {
		return -1
	}
	for i, cc := range n.children {
		if cc == c {
			return i
		}
	}
	return -1
}

// Contains reports whether node is an immediate child of n.
func (n *Node) Contains(node Element) bool {
	return n.IndexOf(node) >= 0
}

// HasDescendant reports whether node lies below n. Immediate children are at
// level 1. The first skip levels are ignored and at most depth further levels
// are searched; a negative depth (Unbounded) searches to any depth.
func (n *Node) HasDescendant(node Element, skip, depth int) bool {
	d := sceneNode(node)
	if d == nil || d == n {
		return false
	}
	level := 0
	for p := d.parent; p != nil; p = p.parent {
		level++
		if p == n {
			return level > skip && (depth < 0 || level <= skip+depth)
		}
	}
	return false
}

// IsAncestorOf reports whether n is a proper ancestor of node.
func (n *Node) IsAncestorOf(node Element) bool {
	return n.HasDescendant(node, 0, Unbounded)
}

// IsUnloaded reports whether Unload has torn this node down.
func (n *Node) IsUnloaded() bool {
	return n.unloaded
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first. The
// child then receives this node's world matrix, cascading to its subtree.
// Fails with ErrInvalidHierarchy if child is nil, is n, is an ancestor of n,
// or either node has been unloaded; the tree is left unchanged.
func (n *Node) AddChild(child Element) error {
	c, err := n.checkAdopt(child, "AddChild")
	if err != nil {
		return err
	}
	n.adopt(c, -1)
	return nil
}

// AddChildAt inserts child at the given index, clamped to [0, NumChildren()].
// Same reparenting and validation behavior as AddChild.
func (n *Node) AddChildAt(child Element, index int) error {
	c, err := n.checkAdopt(child, "AddChildAt")
	if err != nil {
		return err
	}
	n.adopt(c, index)
	return nil
}

func (n *Node) checkAdopt(child Element, op string) (*Node, error) {
	c := sceneNode(child)
	if c == nil {
		return nil, errors.Wrapf(ErrInvalidHierarchy, "%s: nil child", op)
	}
	if globalDebug {
		debugCheckUnloaded(n, op+" (parent)")
		debugCheckUnloaded(c, op+" (child)")
	}
	if n.unloaded || c.unloaded {
		return nil, errors.Wrapf(ErrInvalidHierarchy, "%s: %q -> %q: node has been unloaded", op, c.Name, n.Name)
	}
	if c == n {
		return nil, errors.Wrapf(ErrInvalidHierarchy, "%s: node %q cannot be its own child", op, n.Name)
	}
	if c.IsAncestorOf(n) {
		return nil, errors.Wrapf(ErrInvalidHierarchy, "%s: adding %q to %q would create a cycle", op, c.Name, n.Name)
	}
	return c, nil
}

// adopt links a validated child at index (negative appends).
func (n *Node) adopt(c *Node, index int) {
	if c.parent != nil {
		c.parent.removeChildByPtr(c)
	}
	c.parent = n
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = c
	c.behavior().setWorld(n.world)
	if globalDebug {
		debugCheckTreeDepth(c)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. The child's world matrix is
// reset to identity. No-op if child is not an immediate child of n.
func (n *Node) RemoveChild(child Element) {
	c := sceneNode(child)
	if c == nil || c.parent != n {
		return
	}
	n.removeChildByPtr(c)
	release(c)
}

// RemoveChildAt removes and returns the child at the given index.
// Returns nil without changes if the index is out of range.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	c := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	release(c)
	return c
}

// RemoveAllChildren detaches all children from this node.
// Children are NOT unloaded.
func (n *Node) RemoveAllChildren() {
	old := n.children
	n.children = n.children[:0]
	for i, c := range old {
		old[i] = nil
		release(c)
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// release clears the parent link of a child that has already been removed
// from its parent's list and resets its world matrix.
func release(c *Node) {
	c.parent = nil
	c.behavior().setWorld(identity)
}

// --- Sibling ordering ---

// SwapChildrenAt exchanges the children at indices i and j.
// No-op if either index is out of range.
func (n *Node) SwapChildrenAt(i, j int) {
	nc := len(n.children)
	if i < 0 || j < 0 || i >= nc || j >= nc {
		return
	}
	n.children[i], n.children[j] = n.children[j], n.children[i]
}

// SwapChildren exchanges the positions of two children.
// No-op unless both are immediate children of n.
func (n *Node) SwapChildren(a, b Element) {
	i, j := n.IndexOf(a), n.IndexOf(b)
	if i < 0 || j < 0 {
		return
	}
	n.SwapChildrenAt(i, j)
}

// SetChildIndex moves child to a new index among its siblings.
// No-op if child is not an immediate child or the index is out of range.
func (n *Node) SetChildIndex(child Element, index int) {
	oldIndex := n.IndexOf(child)
	if oldIndex < 0 || index < 0 || index >= len(n.children) || oldIndex == index {
		return
	}
	c := n.children[oldIndex]
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = c
}

// BringChildToFront moves child to the last position, so it renders last.
func (n *Node) BringChildToFront(child Element) {
	n.SetChildIndex(child, len(n.children)-1)
}

// SendChildToBack moves child to the first position, so it renders first.
func (n *Node) SendChildToBack(child Element) {
	n.SetChildIndex(child, 0)
}

// BringToFront moves this node to the last position among its siblings.
func (n *Node) BringToFront() {
	if n.parent != nil {
		n.parent.BringChildToFront(n)
	}
}

// SendToBack moves this node to the first position among its siblings.
func (n *Node) SendToBack() {
	if n.parent != nil {
		n.parent.SendChildToBack(n)
	}
}

// --- Traversal ---

// Update runs per-frame work depth-first, parent before children, in child
// order. view and proj are forwarded untouched. OnUpdate hooks may detach or
// unload nodes; a node that leaves the tree during the pass is not visited
// afterwards, and the siblings that follow it are still visited once.
func (n *Node) Update(view, proj mgl32.Mat4) {
	n.behavior().update(view, proj)
}

func (n *Node) update(view, proj mgl32.Mat4) {
	n.traverseUpdate(view, proj)
}

func (n *Node) traverseUpdate(view, proj mgl32.Mat4) {
	if n.OnUpdate != nil {
		n.OnUpdate(n, view, proj)
	}
	n.eachChild(func(c *Node) { c.behavior().update(view, proj) })
}

// eachChild calls fn for every child, re-reading the child list after each
// call so hooks can remove children (including the current one) safely.
func (n *Node) eachChild(fn func(c *Node)) {
	for i := 0; i < len(n.children); {
		c := n.children[i]
		fn(c)
		if i < len(n.children) && n.children[i] == c {
			i++
		}
	}
}

// Render invokes the OnRender hook, if any.
func (n *Node) Render() {
	if n.OnRender != nil {
		n.OnRender(n)
	}
}

// RenderChildren renders n and then its children in order. If n is not
// visible the entire subtree is skipped.
func (n *Node) RenderChildren() {
	if !n.Visible {
		return
	}
	n.Render()
	n.eachChild((*Node).RenderChildren)
}

// --- Teardown ---

// Unload detaches this node from its parent and recursively tears the subtree
// down, top-down. When disposeResources is true each node's OnDispose hook is
// called before its children are visited. Afterwards every node in the
// subtree is invisible, parentless, childless and rejected by AddChild.
func (n *Node) Unload(disposeResources bool) {
	if n.unloaded {
		return
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	n.unload(disposeResources)
}

func (n *Node) unload(disposeResources bool) {
	n.unloaded = true
	if disposeResources && n.OnDispose != nil {
		n.OnDispose(n)
	}
	for _, c := range n.children {
		c.parent = nil
		c.unload(disposeResources)
	}
	n.children = nil
	n.parent = nil
	n.Visible = false
	n.world = identity
	n.inverseValid = false
	n.UserData = nil
	n.OnUpdate = nil
	n.OnRender = nil
	n.OnDispose = nil
}

// --- Helpers ---

// sceneNode unwraps e, tolerating a nil interface.
func sceneNode(e Element) *Node {
	if e == nil {
		return nil
	}
	return e.SceneNode()
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
