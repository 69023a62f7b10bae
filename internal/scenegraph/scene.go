// Package scenegraph holds the scene hierarchy (nodes with transforms and cached
// world matrices) and the entity pool (entities as typed component bags). It knows
// nothing about physics or rendering; those layers attach their components here.
package scenegraph

// Scene ties a node hierarchy to an entity pool. All nodes and entities for one
// sandbox session are created through it; everything runs on the frame thread.
type Scene struct {
	root *Node
	pool *Pool
}

// NewScene returns a scene with an empty pool and no root node.
func NewScene() *Scene {
	return &Scene{pool: NewPool()}
}

// CreateNode returns a new detached node. Insert it with AddChild (or make it
// the root with SetRootNode) before binding physics to it.
func (s *Scene) CreateNode() *Node {
	return newNode()
}

// SetRootNode sets the hierarchy root.
func (s *Scene) SetRootNode(n *Node) {
	s.root = n
}

// RootNode returns the hierarchy root, or nil before SetRootNode.
func (s *Scene) RootNode() *Node {
	return s.root
}

// CreateEntity allocates a new empty entity in the scene's pool.
func (s *Scene) CreateEntity() *Entity {
	return s.pool.Create()
}

// DestroyEntity removes the entity from the pool.
func (s *Scene) DestroyEntity(e *Entity) {
	s.pool.Destroy(e)
}

// Pool returns the scene's entity pool for component-group iteration.
func (s *Scene) Pool() *Pool {
	return s.pool
}

// UpdateCachedTransforms recomputes world matrices for the whole hierarchy
// top-down. Called once per frame after the physics step so derived caches are
// final before rendering reads them.
func (s *Scene) UpdateCachedTransforms() {
	if s.root == nil {
		return
	}
	s.root.updateCachedTransforms(s.root.Transform.Matrix(), false)
}

// Walk visits every node reachable from the root in depth-first order.
func (s *Scene) Walk(visit func(*Node)) {
	if s.root == nil {
		return
	}
	walk(s.root, visit)
}

// NodeCount returns the number of nodes reachable from the root.
func (s *Scene) NodeCount() int {
	count := 0
	s.Walk(func(*Node) { count++ })
	return count
}

// ContainsNode reports whether n is reachable from the root.
func (s *Scene) ContainsNode(n *Node) bool {
	found := false
	s.Walk(func(v *Node) {
		if v == n {
			found = true
		}
	})
	return found
}

func walk(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		walk(c, visit)
	}
}
