package scenegraph

import "github.com/go-gl/mathgl/mgl32"

// Node is one element of the scene hierarchy. A node owns its children; the parent
// link is a non-owning back-reference. The world transform is cached and recomputed
// lazily: mutating Transform requires a call to InvalidateCachedTransform so the
// node (and everything under it) recomputes on next read.
type Node struct {
	Transform Transform

	parent   *Node
	children []*Node

	cachedWorld mgl32.Mat4
	cacheValid  bool
}

// newNode returns a detached node with an identity transform. Nodes are created
// through Scene.CreateNode so the scene stays the single factory.
func newNode() *Node {
	return &Node{Transform: NewTransform()}
}

// Parent returns the node's parent, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The returned slice is the node's own;
// callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild attaches child under n. A child already attached elsewhere is
// detached from its old parent first. The child's cached world transform is
// invalidated since its parent chain changed.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.RemoveFromHierarchy()
	}
	child.parent = n
	n.children = append(n.children, child)
	child.InvalidateCachedTransform()
}

// RemoveFromHierarchy detaches n from its parent. The node keeps its own
// children, so detaching a node detaches its whole subtree.
func (n *Node) RemoveFromHierarchy() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.InvalidateCachedTransform()
}

// InvalidateCachedTransform marks the cached world transform of n and every
// descendant as stale. Call after mutating Transform or moving the node.
func (n *Node) InvalidateCachedTransform() {
	n.cacheValid = false
	for _, c := range n.children {
		c.InvalidateCachedTransform()
	}
}

// WorldTransform returns the node's world matrix, recomputing the cached value
// (and any stale ancestors) if needed.
func (n *Node) WorldTransform() mgl32.Mat4 {
	if !n.cacheValid {
		if n.parent != nil {
			n.cachedWorld = n.parent.WorldTransform().Mul4(n.Transform.Matrix())
		} else {
			n.cachedWorld = n.Transform.Matrix()
		}
		n.cacheValid = true
	}
	return n.cachedWorld
}

// updateCachedTransforms recomputes the subtree's world matrices top-down,
// regardless of cache state. Used by Scene.UpdateCachedTransforms after a
// physics step so render-visible caches are final.
func (n *Node) updateCachedTransforms(parentWorld mgl32.Mat4, hasParent bool) {
	if hasParent {
		n.cachedWorld = parentWorld.Mul4(n.Transform.Matrix())
	} else {
		n.cachedWorld = n.Transform.Matrix()
	}
	n.cacheValid = true
	for _, c := range n.children {
		c.updateCachedTransforms(n.cachedWorld, true)
	}
}
