package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/scenegraph"
)

// defaultGravity pulls along -Y (the scene is Y-up).
var defaultGravity = mgl32.Vec3{0, -9.8, 0}

// restVelocityThreshold: axis velocities below this after a bounce are zeroed
// so resting bodies settle instead of jittering.
const restVelocityThreshold = 0.1

type shapeKind int

const (
	shapeCube shapeKind = iota
	shapeSphere
	shapeCylinder
	shapeMesh
	shapePlane
)

// body is the engine's internal state for one handle. Positions live here
// during the step and are written back into the bound node at the end of
// Iterate. Bound nodes sit directly under the scene root, so the engine treats
// a node's local translation as its world position.
type body struct {
	handle *Handle
	node   *scenegraph.Node
	entity *scenegraph.Entity

	shape shapeKind
	// halfExtents is the collision box's half extents (mesh shapes collide via
	// their bounding box in this engine).
	halfExtents mgl32.Vec3
	// centerOffset shifts the collision box from the body origin (nonzero for
	// mesh shapes whose bounds are not origin-centered).
	centerOffset mgl32.Vec3
	// plane is the plane equation n·x = w for shapePlane.
	plane mgl32.Vec4

	recipe   Recipe
	invMass  float32
	position mgl32.Vec3
	velocity mgl32.Vec3
	// force accumulates ApplyForce calls and is cleared each Iterate.
	force mgl32.Vec3
}

type pointConstraint struct {
	a, b             *body
	anchorA, anchorB mgl32.Vec3
}

// Engine is a simple rigid-body world implementing the World surface: gravity,
// forward integration with linear damping, AABB and plane contacts with
// restitution, point constraints via positional correction, ray queries, and
// kinematic proxies driven by their nodes. It carries no angular state, so
// angular damping and impulse application points are accepted but inert.
type Engine struct {
	gravity     mgl32.Vec3
	nextID      uint64
	bodies      []*body
	byHandle    map[*Handle]*body
	meshes      []CollisionMesh
	constraints []*pointConstraint
	// onContact, when set, receives the world contact point and normal for
	// every resolved contact.
	onContact func(pos, normal mgl32.Vec3)
}

// NewEngine returns an empty world with default gravity (0, -9.8, 0).
func NewEngine() *Engine {
	return &Engine{
		gravity:  defaultGravity,
		byHandle: make(map[*Handle]*body),
	}
}

// SetGravity replaces the gravity vector.
func (e *Engine) SetGravity(g mgl32.Vec3) {
	e.gravity = g
}

// SetContactHandler registers a callback invoked once per resolved contact
// during Iterate with the world contact point and normal. Pass nil to disable.
func (e *Engine) SetContactHandler(fn func(pos, normal mgl32.Vec3)) {
	e.onContact = fn
}

// BodyCount returns the number of live bodies (including planes and proxies).
func (e *Engine) BodyCount() int {
	return len(e.bodies)
}

// ConstraintCount returns the number of live point constraints.
func (e *Engine) ConstraintCount() int {
	return len(e.constraints)
}

func (e *Engine) addBody(b *body) *Handle {
	e.nextID++
	h := &Handle{id: e.nextID}
	b.handle = h
	if b.recipe.Type == Dynamic && b.recipe.Mass > 0 {
		b.invMass = 1 / b.recipe.Mass
	}
	if b.node != nil {
		b.position = b.node.Transform.Translation
	}
	e.bodies = append(e.bodies, b)
	e.byHandle[h] = b
	return h
}

// scaledHalf returns base half extents scaled componentwise by the node's scale.
func scaledHalf(node *scenegraph.Node, base mgl32.Vec3) mgl32.Vec3 {
	s := node.Transform.Scale
	return mgl32.Vec3{base.X() * s.X(), base.Y() * s.Y(), base.Z() * s.Z()}
}

// AddCube creates a unit-cube body scaled by the node's transform scale.
func (e *Engine) AddCube(node *scenegraph.Node, recipe Recipe) *Handle {
	return e.addBody(&body{
		node:        node,
		shape:       shapeCube,
		halfExtents: scaledHalf(node, mgl32.Vec3{0.5, 0.5, 0.5}),
		recipe:      recipe,
	})
}

// AddSphere creates a sphere body of diameter 1 scaled by the node. Spheres
// collide via their bounding box like every other shape here.
func (e *Engine) AddSphere(node *scenegraph.Node, recipe Recipe) *Handle {
	return e.addBody(&body{
		node:        node,
		shape:       shapeSphere,
		halfExtents: scaledHalf(node, mgl32.Vec3{0.5, 0.5, 0.5}),
		recipe:      recipe,
	})
}

// AddCylinder creates a cylinder body with the given height and radius,
// centered on the node origin.
func (e *Engine) AddCylinder(node *scenegraph.Node, height, radius float32, recipe Recipe) *Handle {
	return e.addBody(&body{
		node:        node,
		shape:       shapeCylinder,
		halfExtents: scaledHalf(node, mgl32.Vec3{radius, height * 0.5, radius}),
		recipe:      recipe,
	})
}

// AddMesh creates a body shaped by the registered collision mesh at meshIndex.
// Unknown indexes fall back to a unit cube so a bad index cannot crash a spawn.
func (e *Engine) AddMesh(node *scenegraph.Node, meshIndex int, recipe Recipe) *Handle {
	half := mgl32.Vec3{0.5, 0.5, 0.5}
	var center mgl32.Vec3
	if meshIndex >= 0 && meshIndex < len(e.meshes) {
		bounds := e.meshes[meshIndex].Bounds
		half = bounds.HalfExtents()
		center = bounds.Center()
	}
	return e.addBody(&body{
		node:         node,
		shape:        shapeMesh,
		halfExtents:  scaledHalf(node, half),
		centerOffset: scaledHalf(node, center),
		recipe:       recipe,
	})
}

// AddInfinitePlane creates a static plane body from the plane equation
// n·x = w (normal xyz, offset w). Plane bodies have no scene node.
func (e *Engine) AddInfinitePlane(plane mgl32.Vec4, recipe Recipe) *Handle {
	recipe.Type = Static
	return e.addBody(&body{
		shape:  shapePlane,
		plane:  plane,
		recipe: recipe,
	})
}

// RegisterCollisionMesh stores mesh geometry and returns its index for AddMesh.
func (e *Engine) RegisterCollisionMesh(mesh CollisionMesh) int {
	e.meshes = append(e.meshes, mesh)
	return len(e.meshes) - 1
}

// ApplyImpulse adds impulse/mass to a dynamic body's velocity. Static and
// kinematic handles ignore it. The application point is accepted for interface
// parity; without angular state it cannot induce spin.
func (e *Engine) ApplyImpulse(h *Handle, impulse, worldPoint mgl32.Vec3) {
	_ = worldPoint
	b := e.byHandle[h]
	if b == nil || b.invMass == 0 {
		return
	}
	b.velocity = b.velocity.Add(impulse.Mul(b.invMass))
}

// ApplyForce accumulates a continuous force applied over the next step.
// Static and kinematic handles ignore it.
func (e *Engine) ApplyForce(h *Handle, force mgl32.Vec3) {
	b := e.byHandle[h]
	if b == nil || b.invMass == 0 {
		return
	}
	b.force = b.force.Add(force)
}

// AddPointConstraint pins bodies a and b together at local anchor offsets.
// Unknown handles are ignored.
func (e *Engine) AddPointConstraint(a, b *Handle, anchorA, anchorB mgl32.Vec3) {
	ba, bb := e.byHandle[a], e.byHandle[b]
	if ba == nil || bb == nil {
		return
	}
	e.constraints = append(e.constraints, &pointConstraint{a: ba, b: bb, anchorA: anchorA, anchorB: anchorB})
}

// NodeFor returns the node associated with a handle, or nil.
func (e *Engine) NodeFor(h *Handle) *scenegraph.Node {
	b := e.byHandle[h]
	if b == nil {
		return nil
	}
	return b.node
}

// SetHandleParent records the entity owning a handle.
func (e *Engine) SetHandleParent(h *Handle, ent *scenegraph.Entity) {
	if b := e.byHandle[h]; b != nil {
		b.entity = ent
	}
}

// RemoveBody destroys the body behind h, drops constraints referencing it, and
// clears its node and entity associations. Unknown handles are ignored.
func (e *Engine) RemoveBody(h *Handle) {
	b := e.byHandle[h]
	if b == nil {
		return
	}
	delete(e.byHandle, h)
	for i, other := range e.bodies {
		if other == b {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			break
		}
	}
	kept := e.constraints[:0]
	for _, c := range e.constraints {
		if c.a != b && c.b != b {
			kept = append(kept, c)
		}
	}
	e.constraints = kept
	b.node = nil
	b.entity = nil
}

// Iterate advances the world by dt seconds: kinematic bodies pull their node
// position, dynamic bodies integrate gravity, accumulated forces, and damping,
// point constraints are satisfied by positional correction, contacts are
// resolved, and final translations are written back into bound nodes.
func (e *Engine) Iterate(dt float32) {
	if dt <= 0 {
		return
	}

	for _, b := range e.bodies {
		switch {
		case b.recipe.Type == Kinematic:
			if b.node != nil {
				b.position = b.node.Transform.Translation
			}
		case b.invMass > 0:
			accel := e.gravity.Add(b.force.Mul(b.invMass))
			b.velocity = b.velocity.Add(accel.Mul(dt))
			if b.recipe.LinearDamping > 0 {
				b.velocity = b.velocity.Mul(1 / (1 + b.recipe.LinearDamping*dt))
			}
			b.position = b.position.Add(b.velocity.Mul(dt))
			b.force = mgl32.Vec3{}
		}
	}

	e.satisfyConstraints()
	e.resolveContacts()

	for _, b := range e.bodies {
		if b.node == nil || b.recipe.Type != Dynamic {
			continue
		}
		b.node.Transform.Translation = b.position
		b.node.InvalidateCachedTransform()
	}
}

// satisfyConstraints moves each constrained pair so their world anchor points
// coincide, split by inverse mass. One pass per step is enough for the
// sandbox's short constraint chains.
func (e *Engine) satisfyConstraints() {
	for _, c := range e.constraints {
		wa := c.a.position.Add(c.anchorA)
		wb := c.b.position.Add(c.anchorB)
		delta := wb.Sub(wa)
		wSum := c.a.invMass + c.b.invMass
		if wSum == 0 {
			continue
		}
		c.a.position = c.a.position.Add(delta.Mul(c.a.invMass / wSum))
		c.b.position = c.b.position.Sub(delta.Mul(c.b.invMass / wSum))
	}
}

func (b *body) aabb() AABB {
	center := b.position.Add(b.centerOffset)
	return AABB{Min: center.Sub(b.halfExtents), Max: center.Add(b.halfExtents)}
}

// penetrationAxis returns the overlap depth and axis index (0=X, 1=Y, 2=Z) of
// minimum penetration between two boxes, or (0, -1) when they do not overlap.
func penetrationAxis(a, b AABB) (depth float32, axis int) {
	overlapX := math32.Min(a.Max.X(), b.Max.X()) - math32.Max(a.Min.X(), b.Min.X())
	overlapY := math32.Min(a.Max.Y(), b.Max.Y()) - math32.Max(a.Min.Y(), b.Min.Y())
	overlapZ := math32.Min(a.Max.Z(), b.Max.Z()) - math32.Max(a.Min.Z(), b.Min.Z())
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// bounceAxis reflects one velocity component with the body's restitution,
// zeroing it below the rest threshold.
func bounceAxis(b *body, axis int) {
	v := -b.velocity[axis] * b.recipe.Restitution
	if math32.Abs(v) < restVelocityThreshold {
		v = 0
	}
	b.velocity[axis] = v
}

// resolveContacts pushes overlapping bodies apart: dynamic bodies against every
// plane, then overlapping box pairs split along the minimum penetration axis
// (static and kinematic sides do not move).
func (e *Engine) resolveContacts() {
	for _, p := range e.bodies {
		if p.shape != shapePlane {
			continue
		}
		n := mgl32.Vec3{p.plane.X(), p.plane.Y(), p.plane.Z()}
		w := p.plane.W()
		for _, b := range e.bodies {
			if b.invMass == 0 || b.shape == shapePlane {
				continue
			}
			r := math32.Abs(n.X())*b.halfExtents.X() +
				math32.Abs(n.Y())*b.halfExtents.Y() +
				math32.Abs(n.Z())*b.halfExtents.Z()
			d := n.Dot(b.position.Add(b.centerOffset)) - w
			if d >= r {
				continue
			}
			b.position = b.position.Add(n.Mul(r - d))
			vn := b.velocity.Dot(n)
			if vn < 0 {
				bounce := -vn * b.recipe.Restitution
				if bounce < restVelocityThreshold {
					bounce = 0
				}
				b.velocity = b.velocity.Sub(n.Mul(vn)).Add(n.Mul(bounce))
			}
			if e.onContact != nil {
				e.onContact(b.position.Sub(n.Mul(r)), n)
			}
		}
	}

	for i := 0; i < len(e.bodies); i++ {
		bi := e.bodies[i]
		if bi.shape == shapePlane {
			continue
		}
		for j := i + 1; j < len(e.bodies); j++ {
			bj := e.bodies[j]
			if bj.shape == shapePlane {
				continue
			}
			if bi.invMass == 0 && bj.invMass == 0 {
				continue
			}
			depth, axis := penetrationAxis(bi.aabb(), bj.aabb())
			if axis < 0 {
				continue
			}
			dir := float32(1)
			if bi.position[axis] > bj.position[axis] {
				dir = -1
			}
			var moveI, moveJ float32
			switch {
			case bi.invMass == 0:
				moveJ = depth * dir
			case bj.invMass == 0:
				moveI = -depth * dir
			default:
				wSum := bi.invMass + bj.invMass
				moveI = -depth * dir * (bi.invMass / wSum)
				moveJ = depth * dir * (bj.invMass / wSum)
			}
			bi.position[axis] += moveI
			bj.position[axis] += moveJ
			if bi.invMass > 0 {
				bounceAxis(bi, axis)
			}
			if bj.invMass > 0 {
				bounceAxis(bj, axis)
			}
			if e.onContact != nil {
				var n mgl32.Vec3
				n[axis] = dir
				contact := bi.position.Add(bj.position.Sub(bi.position).Mul(0.5))
				e.onContact(contact, n)
			}
		}
	}
}

// rayAABB returns the entry distance of a ray into a box via the slab test, or
// (0, false) on a miss. A ray starting inside the box hits at t = 0.
func rayAABB(origin, dir mgl32.Vec3, box AABB) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if math32.Abs(dir[axis]) < 1e-8 {
			if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[axis]
		t1 := (box.Min[axis] - origin[axis]) * inv
		t2 := (box.Max[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// QueryClosestHitRay returns the nearest body hit within maxDist, or a zero
// RayHit on a miss. Kinematic proxies are not pickable: rays are usually cast
// from the camera, which would otherwise always hit its own proxy at t = 0.
func (e *Engine) QueryClosestHitRay(origin, dir mgl32.Vec3, maxDist float32) RayHit {
	if dir.Len() == 0 {
		return RayHit{}
	}
	dir = dir.Normalize()

	var hit RayHit
	closest := maxDist
	for _, b := range e.bodies {
		if b.recipe.Type == Kinematic {
			continue
		}
		var t float32
		var ok bool
		if b.shape == shapePlane {
			n := mgl32.Vec3{b.plane.X(), b.plane.Y(), b.plane.Z()}
			denom := n.Dot(dir)
			if math32.Abs(denom) < 1e-8 {
				continue
			}
			t = (b.plane.W() - n.Dot(origin)) / denom
			ok = t >= 0
		} else {
			t, ok = rayAABB(origin, dir, b.aabb())
		}
		if !ok || t > closest {
			continue
		}
		closest = t
		hit = RayHit{
			Entity:   b.entity,
			Handle:   b.handle,
			WorldPos: origin.Add(dir.Mul(t)),
		}
	}
	return hit
}
