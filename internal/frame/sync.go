// Package frame runs the once-per-tick synchronization between the scene graph
// and the physics world: continuous forces, the camera's kinematic proxy, the
// physics step, and the cached-transform refresh, in that fixed order.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/scenegraph"
)

// antiGravityForce is applied to every physics-bound entity each tick while
// the anti-gravity toggle is active.
var antiGravityForce = mgl32.Vec3{0, 300, 0}

// Synchronizer drives one frame tick. Input-driven spawns, impulses, and
// removals happen before Tick, so the physics step sees them in the same
// frame; rendering reads transforms only after Tick returns.
type Synchronizer struct {
	scene        *scenegraph.Scene
	world        physics.World
	cameraHandle *physics.Handle
	antiGravity  bool
}

// New returns a synchronizer. The camera handle may be set later once the
// camera proxy is bound.
func New(scene *scenegraph.Scene, world physics.World) *Synchronizer {
	return &Synchronizer{scene: scene, world: world}
}

// SetCameraHandle registers the kinematic camera proxy whose node follows the
// camera position each tick.
func (s *Synchronizer) SetCameraHandle(h *physics.Handle) {
	s.cameraHandle = h
}

// SetAntiGravity switches the continuous upward force on or off. Setting the
// current state again is a no-op.
func (s *Synchronizer) SetAntiGravity(active bool) {
	s.antiGravity = active
}

// AntiGravity reports whether the continuous upward force is active.
func (s *Synchronizer) AntiGravity() bool {
	return s.antiGravity
}

// Tick advances one frame:
//  1. apply anti-gravity to every physics-bound entity while active,
//  2. push the camera position into the camera proxy's node (the camera
//     drives its body, not the reverse),
//  3. advance the physics world by dt in a single call,
//  4. finalize cached world transforms for rendering.
func (s *Synchronizer) Tick(dt float32, cameraPos mgl32.Vec3) {
	if s.antiGravity {
		for _, e := range scenegraph.Group[physics.Component](s.scene.Pool()) {
			c := scenegraph.Component[physics.Component](e)
			if c == nil || c.Handle == nil {
				continue
			}
			s.world.ApplyForce(c.Handle, antiGravityForce)
		}
	}

	if s.cameraHandle != nil {
		if node := s.world.NodeFor(s.cameraHandle); node != nil {
			node.Transform.Translation = cameraPos
			node.InvalidateCachedTransform()
		}
	}

	s.world.Iterate(dt)
	s.scene.UpdateCachedTransforms()
}
