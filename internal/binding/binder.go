// Package binding creates the three-way association between one scene node, one
// entity, and one physics handle, so each side can locate the others: the
// handle resolves to its node for transform sync, and the entity carries the
// handle for interaction and teardown.
package binding

import (
	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/scenegraph"
)

// Binder requests bodies from the physics world and wires the resulting handle
// to a fresh entity. The node must already be inserted into the hierarchy; the
// body is created at the node's current transform.
type Binder struct {
	scene *scenegraph.Scene
	world physics.World
}

// New returns a binder for the given scene and physics world.
func New(scene *scenegraph.Scene, world physics.World) *Binder {
	return &Binder{scene: scene, world: world}
}

// finish allocates the entity, attaches the physics component, and registers
// the entity as the handle's parent. After it returns, the handle resolves to
// the node and the entity's stored handle equals the returned handle.
func (b *Binder) finish(handle *physics.Handle) (*scenegraph.Entity, *physics.Handle) {
	entity := b.scene.CreateEntity()
	scenegraph.Attach(b.scene.Pool(), entity, &physics.Component{Handle: handle})
	b.world.SetHandleParent(handle, entity)
	return entity, handle
}

// BindCube binds a cube body to node.
func (b *Binder) BindCube(node *scenegraph.Node, recipe physics.Recipe) (*scenegraph.Entity, *physics.Handle) {
	return b.finish(b.world.AddCube(node, recipe))
}

// BindSphere binds a sphere body to node.
func (b *Binder) BindSphere(node *scenegraph.Node, recipe physics.Recipe) (*scenegraph.Entity, *physics.Handle) {
	return b.finish(b.world.AddSphere(node, recipe))
}

// BindCylinder binds a cylinder body with the given height and radius to node.
func (b *Binder) BindCylinder(node *scenegraph.Node, height, radius float32, recipe physics.Recipe) (*scenegraph.Entity, *physics.Handle) {
	return b.finish(b.world.AddCylinder(node, height, radius, recipe))
}

// BindMesh binds a body shaped by a registered collision mesh to node.
func (b *Binder) BindMesh(node *scenegraph.Node, meshIndex int, recipe physics.Recipe) (*scenegraph.Entity, *physics.Handle) {
	return b.finish(b.world.AddMesh(node, meshIndex, recipe))
}

// BindPlane binds an infinite static plane. Plane bodies have no scene node of
// their own; the caller typically parents their renderable to a node that is
// never destroyed during the session (the root).
func (b *Binder) BindPlane(plane mgl32.Vec4, recipe physics.Recipe) (*scenegraph.Entity, *physics.Handle) {
	return b.finish(b.world.AddInfinitePlane(plane, recipe))
}

// Unbind tears the association down in the safe order: the body (and its
// node/entity associations inside the world) first, then the entity. The node
// itself is left to the caller, since removal policy depends on its children.
func (b *Binder) Unbind(entity *scenegraph.Entity) {
	if c := scenegraph.Component[physics.Component](entity); c != nil && c.Handle != nil {
		b.world.RemoveBody(c.Handle)
		c.Handle = nil
	}
	b.scene.DestroyEntity(entity)
}
