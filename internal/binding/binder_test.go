package binding

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/scenegraph"
)

func newFixture() (*scenegraph.Scene, *physics.Engine, *Binder) {
	s := scenegraph.NewScene()
	s.SetRootNode(s.CreateNode())
	w := physics.NewEngine()
	return s, w, New(s, w)
}

func insertNode(s *scenegraph.Scene, pos mgl32.Vec3) *scenegraph.Node {
	n := s.CreateNode()
	n.Transform.Translation = pos
	s.RootNode().AddChild(n)
	return n
}

func TestBindCubeWiresAllThreeSides(t *testing.T) {
	s, w, b := newFixture()
	node := insertNode(s, mgl32.Vec3{0, 20, 0})

	entity, handle := b.BindCube(node, physics.Recipe{Mass: 10})

	// Handle resolves to the node, and the entity's stored handle is the
	// returned handle.
	assert.Equal(t, node, w.NodeFor(handle))
	c := scenegraph.Component[physics.Component](entity)
	require.NotNil(t, c)
	assert.Equal(t, handle, c.Handle)

	// The entity is the handle's parent: a ray at the body resolves to it.
	hit := w.QueryClosestHitRay(mgl32.Vec3{0, 25, 0}, mgl32.Vec3{0, -1, 0}, 100)
	assert.Equal(t, entity, hit.Entity)
}

func TestBindPlaneHasNoNode(t *testing.T) {
	s, w, b := newFixture()
	_ = s

	entity, handle := b.BindPlane(mgl32.Vec4{0, 1, 0, 0}, physics.Recipe{Type: physics.Static})

	assert.Nil(t, w.NodeFor(handle))
	hit := w.QueryClosestHitRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 100)
	assert.Equal(t, entity, hit.Entity)
}

func TestBoundEntityHasExactlyOneHandle(t *testing.T) {
	s, _, b := newFixture()
	node := insertNode(s, mgl32.Vec3{})

	entity, handle := b.BindCylinder(node, 1, 0.5, physics.Recipe{Mass: 30})

	group := scenegraph.Group[physics.Component](s.Pool())
	assert.Len(t, group, 1)
	assert.Equal(t, handle, scenegraph.Component[physics.Component](entity).Handle)
}

func TestUnbindTearsDownBodyThenEntity(t *testing.T) {
	s, w, b := newFixture()
	node := insertNode(s, mgl32.Vec3{})
	entity, handle := b.BindCube(node, physics.Recipe{Mass: 10})

	b.Unbind(entity)

	assert.Nil(t, w.NodeFor(handle))
	assert.Equal(t, 0, w.BodyCount())
	assert.False(t, s.Pool().Contains(entity))
	assert.Empty(t, scenegraph.Group[physics.Component](s.Pool()))
}

func TestUnbindWithoutPhysicsComponentStillDestroys(t *testing.T) {
	s, _, b := newFixture()
	entity := s.CreateEntity()

	b.Unbind(entity)

	assert.False(t, s.Pool().Contains(entity))
}
