package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAddChildSetsParent(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)

	child := s.CreateNode()
	root.AddChild(child)

	assert.Equal(t, root, child.Parent())
	assert.Len(t, root.Children(), 1)
	assert.True(t, s.ContainsNode(child))
}

func TestAddChildReparents(t *testing.T) {
	s := NewScene()
	a := s.CreateNode()
	b := s.CreateNode()
	child := s.CreateNode()

	a.AddChild(child)
	b.AddChild(child)

	assert.Equal(t, b, child.Parent())
	assert.Empty(t, a.Children())
}

func TestRemoveFromHierarchyDetachesSubtree(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)
	mid := s.CreateNode()
	leaf := s.CreateNode()
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.RemoveFromHierarchy()

	assert.Nil(t, mid.Parent())
	assert.False(t, s.ContainsNode(mid))
	assert.False(t, s.ContainsNode(leaf))
	// The subtree stays intact under the detached node.
	assert.Equal(t, mid, leaf.Parent())
}

func TestWorldTransformComposesParentChain(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)
	root.Transform.Translation = mgl32.Vec3{1, 0, 0}

	child := s.CreateNode()
	child.Transform.Translation = mgl32.Vec3{0, 2, 0}
	root.AddChild(child)

	world := child.WorldTransform()
	pos := world.Col(3).Vec3()
	assert.InDelta(t, 1, pos.X(), 1e-6)
	assert.InDelta(t, 2, pos.Y(), 1e-6)
	assert.InDelta(t, 0, pos.Z(), 1e-6)
}

func TestInvalidateCachedTransformPropagates(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)
	child := s.CreateNode()
	root.AddChild(child)

	// Prime caches, then move the root without telling the child directly.
	_ = child.WorldTransform()
	root.Transform.Translation = mgl32.Vec3{0, 5, 0}
	root.InvalidateCachedTransform()

	pos := child.WorldTransform().Col(3).Vec3()
	assert.InDelta(t, 5, pos.Y(), 1e-6)
}

func TestUpdateCachedTransformsFinalizesWholeTree(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)
	child := s.CreateNode()
	child.Transform.Translation = mgl32.Vec3{3, 0, 0}
	root.AddChild(child)

	s.UpdateCachedTransforms()

	// Mutate without invalidating: the cache must still hold the last
	// finalized value until the next update.
	child.Transform.Translation = mgl32.Vec3{9, 9, 9}
	pos := child.WorldTransform().Col(3).Vec3()
	assert.InDelta(t, 3, pos.X(), 1e-6)

	s.UpdateCachedTransforms()
	pos = child.WorldTransform().Col(3).Vec3()
	assert.InDelta(t, 9, pos.X(), 1e-6)
}

func TestNodeCount(t *testing.T) {
	s := NewScene()
	root := s.CreateNode()
	s.SetRootNode(root)
	assert.Equal(t, 1, s.NodeCount())

	for i := 0; i < 3; i++ {
		root.AddChild(s.CreateNode())
	}
	assert.Equal(t, 4, s.NodeCount())
}
