// Package sandbox wires the interactive physics sandbox together: scene setup
// (ground plane, camera proxy, imported model), the key/mouse dispatch table,
// and the per-frame update and draw paths.
package sandbox

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"physics-sandbox/internal/binding"
	"physics-sandbox/internal/config"
	"physics-sandbox/internal/debug"
	"physics-sandbox/internal/frame"
	"physics-sandbox/internal/interact"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/meshimport"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/scenegraph"
	"physics-sandbox/internal/spawn"
)

// Camera start state: slightly above the ground, looking down -Z.
var (
	cameraStart = mgl32.Vec3{0, 2, 8}
	groundPlane = mgl32.Vec4{0, 1, 0, 0}
	cameraFovy  = float32(72) // degrees
)

// Options configures App construction. ModelPath is required; construction
// fails without it rather than running a degraded sandbox.
type Options struct {
	ModelPath string
	Prefs     config.Prefs
	Log       *logger.Logger
}

// App is the assembled sandbox. All methods run on the frame thread; Update
// handles input and ticks the simulation, Draw renders the current frame.
type App struct {
	scene   *scenegraph.Scene
	world   *physics.Engine
	binder  *binding.Binder
	spawner *spawn.Spawner
	actions *interact.Actions
	sync    *frame.Synchronizer
	meshes  *render.Registry
	overlay *debug.Debug
	log     *logger.Logger

	camera rl.Camera3D
	// keyActions is the input dispatch table, resolved once at startup. The
	// event set is closed, so there is no dynamic handler registration.
	keyActions map[int32]func()
	visible    []render.Visible
}

// New builds the sandbox: scene graph with root and ground plane, physics
// world, camera proxy, imported collision mesh, spawner, interaction layer,
// and the input dispatch table.
func New(opts Options) (*App, error) {
	if opts.ModelPath == "" {
		return nil, errors.New("model path is required")
	}

	a := &App{
		scene:  scenegraph.NewScene(),
		world:  physics.NewEngine(),
		meshes: render.NewRegistry(),
		log:    opts.Log,
	}
	a.binder = binding.New(a.scene, a.world)

	root := a.scene.CreateNode()
	a.scene.SetRootNode(root)

	// Ground: an infinite static plane bound through the same path as every
	// other body, with its renderable parented to the root (a node never
	// destroyed during the session).
	groundEntity, _ := a.binder.BindPlane(groundPlane, physics.Recipe{Type: physics.Static})
	scenegraph.Attach(a.scene.Pool(), groundEntity, &render.Component{
		Mesh: a.meshes.Primitive(render.KindPlane).Retain(),
		Node: root,
	})

	// Camera proxy: a kinematic sphere whose node follows the camera.
	cameraNode := a.scene.CreateNode()
	cameraNode.Transform.Translation = cameraStart
	root.AddChild(cameraNode)
	_, cameraHandle := a.binder.BindSphere(cameraNode, physics.Recipe{Type: physics.Kinematic})

	a.sync = frame.New(a.scene, a.world)
	a.sync.SetCameraHandle(cameraHandle)

	collisionMesh, err := meshimport.LoadCollisionMesh(opts.ModelPath)
	if err != nil {
		return nil, errors.Wrap(err, "load scene model")
	}
	meshIndex := a.world.RegisterCollisionMesh(collisionMesh)

	recipes, err := spawn.LoadRecipes(opts.Prefs.RecipesPath)
	if err != nil {
		return nil, err
	}

	eventLog := opts.Log
	if !opts.Prefs.LogEvents {
		eventLog = nil
	}
	a.spawner = spawn.New(a.scene, a.world, a.binder, a.meshes, recipes, eventLog)
	a.spawner.SetModel(a.meshes.Model(opts.ModelPath), meshIndex)
	a.actions = interact.New(a.scene, a.world, a.binder, eventLog)

	if opts.Prefs.LogContacts && opts.Log != nil {
		a.world.SetContactHandler(func(pos, normal mgl32.Vec3) {
			opts.Log.Log(fmt.Sprintf("contact at (%.2f, %.2f, %.2f) normal (%.2f, %.2f, %.2f)",
				pos.X(), pos.Y(), pos.Z(), normal.X(), normal.Y(), normal.Z()))
		})
	}

	a.overlay = debug.New()
	a.overlay.ShowFPS = opts.Prefs.ShowFPS
	a.overlay.ShowMemAlloc = opts.Prefs.ShowMemAlloc
	a.overlay.ShowCounts = opts.Prefs.ShowCounts
	a.overlay.SetCountsSource(func() debug.Counts {
		return debug.Counts{
			Bodies:      a.world.BodyCount(),
			Entities:    a.scene.Pool().Len(),
			Constraints: a.world.ConstraintCount(),
		}
	})

	a.camera = rl.Camera3D{
		Position:   rl.NewVector3(cameraStart.X(), cameraStart.Y(), cameraStart.Z()),
		Target:     rl.NewVector3(cameraStart.X(), cameraStart.Y(), cameraStart.Z()-1),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cameraFovy,
		Projection: rl.CameraPerspective,
	}

	a.keyActions = map[int32]func(){
		rl.KeyO:     func() { a.spawner.SpawnCube(a.rayOrigin(), a.rayDir()) },
		rl.KeyP:     func() { a.spawner.SpawnCylinder(a.rayOrigin(), a.rayDir()) },
		rl.KeyL:     func() { a.spawner.SpawnMesh(a.rayOrigin(), a.rayDir()) },
		rl.KeyK:     func() { a.spawner.SpawnHingeRig(a.rayOrigin(), a.rayDir()) },
		rl.KeyR:     func() { a.actions.Remove(a.rayOrigin(), a.rayDir()) },
		rl.KeySpace: func() { a.actions.ImpulseAll() },
	}

	return a, nil
}

// rayOrigin returns the camera position as the origin for pick rays.
func (a *App) rayOrigin() mgl32.Vec3 {
	return mgl32.Vec3{a.camera.Position.X, a.camera.Position.Y, a.camera.Position.Z}
}

// rayDir returns the camera's normalized view direction.
func (a *App) rayDir() mgl32.Vec3 {
	front := mgl32.Vec3{
		a.camera.Target.X - a.camera.Position.X,
		a.camera.Target.Y - a.camera.Position.Y,
		a.camera.Target.Z - a.camera.Position.Z,
	}
	if front.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return front.Normalize()
}

// Update runs one frame of input handling and simulation. Event-driven
// mutations happen first, so the physics step in the same frame sees them.
func (a *App) Update() {
	rl.UpdateCamera(&a.camera, rl.CameraFree)

	for key, action := range a.keyActions {
		if rl.IsKeyPressed(key) {
			action()
		}
	}
	a.sync.SetAntiGravity(rl.IsKeyDown(rl.KeyM))
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.actions.Punch(a.rayOrigin(), a.rayDir())
	}

	a.sync.Tick(rl.GetFrameTime(), a.rayOrigin())
}

// Draw renders the visible list and overlays. Transforms were finalized by the
// tick in Update, so rendering observes post-step state.
func (a *App) Draw() {
	a.visible = render.GatherVisible(a.scene.Pool(), a.visible)

	rl.BeginMode3D(a.camera)
	a.meshes.Draw(a.visible)
	rl.EndMode3D()

	a.overlay.Draw()
}
