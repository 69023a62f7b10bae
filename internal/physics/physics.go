// Package physics defines the capability surface the sandbox consumes from a
// physics world (body creation, impulses, ray queries, constraints, stepping)
// plus the handle↔node association that keeps the scene graph and the physics
// world pointing at each other. Engine is the in-repo implementation.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/scenegraph"
)

// ObjectType classifies how a body participates in the simulation.
type ObjectType int

const (
	// Dynamic bodies are integrated and respond to gravity, forces, and impulses.
	Dynamic ObjectType = iota
	// Static bodies never move (e.g. the ground plane).
	Static
	// Kinematic bodies follow their scene node; the node drives the body,
	// not the reverse. Used for the camera proxy.
	Kinematic
)

// Recipe is the immutable parameter set supplied once when a body is created.
// The physics world owns all simulation state afterwards; recipes are never
// read back or mutated.
type Recipe struct {
	Type           ObjectType
	Mass           float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

// AABB is an axis-aligned bounding box in world or model space.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the box center.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns the box half extents.
func (b AABB) HalfExtents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// CollisionMesh is immutable triangle geometry registered once per imported
// model and referenced by index when spawning mesh-shaped bodies. Many spawned
// instances share one registered mesh.
type CollisionMesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
	// IndexStrideTriangle is the byte stride of one triangle in Indices.
	IndexStrideTriangle int
	// PositionStride is the byte stride of one vertex in Positions.
	PositionStride int
	Bounds         AABB
}

// RayHit is the result of a closest-hit ray query. A miss leaves Entity and
// Handle nil; callers treat a miss as a no-op, not an error.
type RayHit struct {
	Entity   *scenegraph.Entity
	Handle   *Handle
	WorldPos mgl32.Vec3
}

// Component attaches a physics handle to an entity. An entity carrying a
// Component is "physics-bound"; it holds exactly one handle.
type Component struct {
	Handle *Handle
}

// Handle is an opaque identity for one body owned by the physics world.
// At most one scene node is associated with a handle, and the association is
// weak: destroying the node side must clear it through the world.
type Handle struct {
	id uint64
}

// World is the physics capability surface consumed by the binder, spawner, and
// frame synchronizer. All calls happen on the frame thread; Iterate is
// synchronous and blocking for the duration of the step.
type World interface {
	// AddCube creates a unit-cube body (scaled by the node's transform scale)
	// at the node's current translation.
	AddCube(node *scenegraph.Node, recipe Recipe) *Handle
	// AddSphere creates a sphere body of diameter 1 (scaled by the node).
	AddSphere(node *scenegraph.Node, recipe Recipe) *Handle
	// AddCylinder creates a cylinder body with the given height and radius.
	AddCylinder(node *scenegraph.Node, height, radius float32, recipe Recipe) *Handle
	// AddMesh creates a body shaped by a previously registered collision mesh,
	// referenced by index.
	AddMesh(node *scenegraph.Node, meshIndex int, recipe Recipe) *Handle
	// AddInfinitePlane creates a static plane body from a plane equation
	// (normal xyz, offset w). Plane bodies have no associated scene node.
	AddInfinitePlane(plane mgl32.Vec4, recipe Recipe) *Handle

	// RegisterCollisionMesh stores immutable mesh geometry and returns the
	// index AddMesh takes. Registration happens once per imported model.
	RegisterCollisionMesh(mesh CollisionMesh) int

	// ApplyImpulse applies an instantaneous impulse at a world-space point.
	// Static and kinematic handles silently ignore it.
	ApplyImpulse(h *Handle, impulse, worldPoint mgl32.Vec3)
	// ApplyForce accumulates a continuous force applied over the next step.
	// Static and kinematic handles silently ignore it.
	ApplyForce(h *Handle, force mgl32.Vec3)

	// QueryClosestHitRay returns the nearest body hit by the ray within
	// maxDist, or a zero RayHit on a miss.
	QueryClosestHitRay(origin, dir mgl32.Vec3, maxDist float32) RayHit

	// AddPointConstraint pins two bodies together at the given local anchor
	// offsets (relative to each body's origin).
	AddPointConstraint(a, b *Handle, anchorA, anchorB mgl32.Vec3)

	// Iterate advances the world by dt seconds and writes updated translations
	// into every bound scene node. Sub-stepping, if any, is the world's own
	// business; callers make exactly one call per frame.
	Iterate(dt float32)

	// NodeFor returns the scene node associated with a handle, or nil
	// (plane bodies, or handles whose node side was torn down).
	NodeFor(h *Handle) *scenegraph.Node
	// SetHandleParent records the entity owning a handle, so ray hits can be
	// resolved back to entities.
	SetHandleParent(h *Handle, e *scenegraph.Entity)
	// RemoveBody destroys the body behind a handle, drops any constraints
	// referencing it, and clears the handle's node and entity associations.
	// Must be called before the node or entity side is destroyed.
	RemoveBody(h *Handle)
}
