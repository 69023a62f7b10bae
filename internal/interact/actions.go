// Package interact implements the pointer/keyboard-driven query actions: ray
// picking, impulse application, and removal of picked objects. A ray miss makes
// every action a no-op, never an error.
package interact

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/binding"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/scenegraph"
)

// pickMaxDistance bounds interaction ray queries.
const pickMaxDistance = 100

// punchStrength scales the pointer impulse along the view direction.
const punchStrength = 20

var (
	// broadcastImpulse and broadcastPoint are the "kick everything" impulse
	// and its local application point.
	broadcastImpulse = mgl32.Vec3{0, 22, -4}
	broadcastPoint   = mgl32.Vec3{0.2, 0, 0}
)

// Actions bundles the interaction layer's dependencies. All methods run on the
// frame thread during event handling, before the frame's physics step.
type Actions struct {
	scene  *scenegraph.Scene
	world  physics.World
	binder *binding.Binder
	log    *logger.Logger
}

// New returns the interaction actions. log may be nil to disable event logging.
func New(scene *scenegraph.Scene, world physics.World, binder *binding.Binder, log *logger.Logger) *Actions {
	return &Actions{scene: scene, world: world, binder: binder, log: log}
}

func (a *Actions) logf(format string, args ...any) {
	if a.log != nil {
		a.log.Log(fmt.Sprintf(format, args...))
	}
}

// Pick returns the nearest ray hit, or a zero hit on a miss.
func (a *Actions) Pick(origin, dir mgl32.Vec3) physics.RayHit {
	return a.world.QueryClosestHitRay(origin, dir, pickMaxDistance)
}

// Punch applies an impulse along the view direction at the picked point.
// Returns false on a miss.
func (a *Actions) Punch(origin, dir mgl32.Vec3) bool {
	hit := a.Pick(origin, dir)
	if hit.Entity == nil {
		return false
	}
	a.world.ApplyImpulse(hit.Handle, dir.Mul(punchStrength), hit.WorldPos)
	return true
}

// ImpulseAll kicks every physics-bound entity that still has a scene node
// (bodies without one, like the ground plane, are skipped).
func (a *Actions) ImpulseAll() {
	for _, e := range scenegraph.Group[physics.Component](a.scene.Pool()) {
		c := scenegraph.Component[physics.Component](e)
		if c == nil || c.Handle == nil || a.world.NodeFor(c.Handle) == nil {
			continue
		}
		a.world.ApplyImpulse(c.Handle, broadcastImpulse, broadcastPoint)
	}
}

// Remove destroys the picked entity and its physics body. Bodies without an
// associated scene node (the ground plane) are not removable; hitting one is a
// no-op like a miss. The node is detached from the hierarchy only when it has
// no children; a node with children stays in place, now physics-less. Known
// limitation: the subtree under a removed object is not reparented or
// destroyed. Returns false on a miss or a node-less hit.
func (a *Actions) Remove(origin, dir mgl32.Vec3) bool {
	hit := a.Pick(origin, dir)
	if hit.Entity == nil {
		return false
	}
	node := a.world.NodeFor(hit.Handle)
	if node == nil {
		return false
	}
	if len(node.Children()) == 0 {
		node.RemoveFromHierarchy()
	}
	if rc := scenegraph.Component[render.Component](hit.Entity); rc != nil && rc.Mesh != nil {
		rc.Mesh.Release()
		rc.Mesh = nil
	}
	a.binder.Unbind(hit.Entity)
	a.logf("removed object at (%.1f, %.1f, %.1f)", hit.WorldPos.X(), hit.WorldPos.Y(), hit.WorldPos.Z())
	return true
}
