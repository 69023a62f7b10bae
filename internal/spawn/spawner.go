// Package spawn translates discrete input events into object-creation actions:
// each action resolves a world-space anchor with a ray query, creates scene
// nodes above the anchor so gravity settles the object, attaches shared
// renderable meshes, and binds physics. A ray miss skips the whole action, so
// no partial rig is ever created.
package spawn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/binding"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/scenegraph"
)

// PickMaxDistance bounds every anchor ray query.
const PickMaxDistance = 100

// Spawned cylinders use the same proportions as the drawn cylinder mesh.
const (
	cylinderHeight = 1.0
	cylinderRadius = 0.5
)

var (
	// dropOffset lifts cubes, cylinders, and hinge rigs 20 units above the
	// anchor so they fall onto the target.
	dropOffset = mgl32.Vec3{0, 20, 0}
	// meshDropOffset: mesh instances spawn just above the anchor.
	meshDropOffset = mgl32.Vec3{0, 1, 0}
	// hingeSpacing separates the rig's two cubes horizontally.
	hingeSpacing = mgl32.Vec3{5, 0, 0}
	// hingeAnchor is the constraint anchor offset on each body (mirrored).
	hingeAnchor = mgl32.Vec3{2.5, 0, 0}
	// armScale and armOffset shape the rig's visual arm child nodes.
	armScale  = mgl32.Vec3{0.75, 0.1, 0.1}
	armOffset = mgl32.Vec3{1.75, 0, 0}
)

// Spawner maps input events to bind operations. All actions run on the frame
// thread before the frame's physics step.
type Spawner struct {
	scene   *scenegraph.Scene
	world   physics.World
	binder  *binding.Binder
	meshes  *render.Registry
	recipes Set
	log     *logger.Logger

	modelMesh  *render.MeshHandle
	modelIndex int
}

// New returns a spawner. log may be nil to disable event logging.
func New(scene *scenegraph.Scene, world physics.World, binder *binding.Binder, meshes *render.Registry, recipes Set, log *logger.Logger) *Spawner {
	return &Spawner{
		scene:      scene,
		world:      world,
		binder:     binder,
		meshes:     meshes,
		recipes:    recipes,
		log:        log,
		modelIndex: -1,
	}
}

// SetModel registers the imported model used by SpawnMesh: its shared
// renderable handle and its collision-mesh index in the physics world.
func (s *Spawner) SetModel(mesh *render.MeshHandle, collisionIndex int) {
	s.modelMesh = mesh
	s.modelIndex = collisionIndex
}

func (s *Spawner) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Log(fmt.Sprintf(format, args...))
	}
}

// anchor resolves the action's world-space anchor. ok is false on a ray miss.
func (s *Spawner) anchor(origin, dir mgl32.Vec3) (mgl32.Vec3, bool) {
	hit := s.world.QueryClosestHitRay(origin, dir, PickMaxDistance)
	if hit.Entity == nil {
		return mgl32.Vec3{}, false
	}
	return hit.WorldPos, true
}

// nodeAt creates a node at pos, inserts it under the root, and invalidates its
// cached transform.
func (s *Spawner) nodeAt(pos mgl32.Vec3) *scenegraph.Node {
	node := s.scene.CreateNode()
	node.Transform.Translation = pos
	node.InvalidateCachedTransform()
	s.scene.RootNode().AddChild(node)
	return node
}

// attachRenderable gives the entity one retained reference on the shared mesh.
func (s *Spawner) attachRenderable(e *scenegraph.Entity, node *scenegraph.Node, mesh *render.MeshHandle) {
	scenegraph.Attach(s.scene.Pool(), e, &render.Component{Mesh: mesh.Retain(), Node: node})
}

// boundCube creates one physics-bound renderable cube node at pos.
func (s *Spawner) boundCube(pos mgl32.Vec3) (*scenegraph.Node, *physics.Handle) {
	node := s.nodeAt(pos)
	entity, handle := s.binder.BindCube(node, s.recipes.Cube)
	s.attachRenderable(entity, node, s.meshes.Primitive(render.KindCube))
	return node, handle
}

// SpawnCube drops a cube above the ray hit. Returns false on a miss.
func (s *Spawner) SpawnCube(origin, dir mgl32.Vec3) bool {
	pos, ok := s.anchor(origin, dir)
	if !ok {
		return false
	}
	at := pos.Add(dropOffset)
	s.boundCube(at)
	s.logf("spawned cube at (%.1f, %.1f, %.1f)", at.X(), at.Y(), at.Z())
	return true
}

// SpawnCylinder drops a cylinder above the ray hit. Returns false on a miss.
func (s *Spawner) SpawnCylinder(origin, dir mgl32.Vec3) bool {
	pos, ok := s.anchor(origin, dir)
	if !ok {
		return false
	}
	at := pos.Add(dropOffset)
	node := s.nodeAt(at)
	entity, _ := s.binder.BindCylinder(node, cylinderHeight, cylinderRadius, s.recipes.Cylinder)
	s.attachRenderable(entity, node, s.meshes.Primitive(render.KindCylinder))
	s.logf("spawned cylinder at (%.1f, %.1f, %.1f)", at.X(), at.Y(), at.Z())
	return true
}

// SpawnMesh places an instance of the imported model just above the ray hit.
// Returns false on a miss or when no model is registered.
func (s *Spawner) SpawnMesh(origin, dir mgl32.Vec3) bool {
	if s.modelMesh == nil || s.modelIndex < 0 {
		return false
	}
	pos, ok := s.anchor(origin, dir)
	if !ok {
		return false
	}
	at := pos.Add(meshDropOffset)
	node := s.nodeAt(at)
	entity, _ := s.binder.BindMesh(node, s.modelIndex, s.recipes.Mesh)
	s.attachRenderable(entity, node, s.modelMesh)
	s.logf("spawned mesh instance at (%.1f, %.1f, %.1f)", at.X(), at.Y(), at.Z())
	return true
}

// hingeArm hangs a renderable-only arm node under a rig cube, offset along the
// connecting axis.
func (s *Spawner) hingeArm(parent *scenegraph.Node, offset mgl32.Vec3) {
	arm := s.scene.CreateNode()
	arm.Transform.Scale = armScale
	arm.Transform.Translation = offset
	parent.AddChild(arm)
	entity := s.scene.CreateEntity()
	s.attachRenderable(entity, arm, s.meshes.Primitive(render.KindCube))
}

// SpawnHingeRig drops two independently bound cubes above the ray hit, joined
// by one point constraint at mirrored anchors, each with a visual arm child.
// A miss skips the entire rig. Returns false on a miss.
func (s *Spawner) SpawnHingeRig(origin, dir mgl32.Vec3) bool {
	pos, ok := s.anchor(origin, dir)
	if !ok {
		return false
	}
	at := pos.Add(dropOffset)

	leftNode, left := s.boundCube(at)
	s.hingeArm(leftNode, armOffset)

	rightNode, right := s.boundCube(at.Add(hingeSpacing))
	s.hingeArm(rightNode, armOffset.Mul(-1))

	s.world.AddPointConstraint(left, right, hingeAnchor, hingeAnchor.Mul(-1))
	s.logf("spawned hinge rig at (%.1f, %.1f, %.1f)", at.X(), at.Y(), at.Z())
	return true
}
