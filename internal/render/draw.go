package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 16
	// planeExtent is the drawn size of the ground quad; the physics plane
	// underneath is infinite.
	planeExtent = 2000
)

// defaultMeshColor is the albedo tint for primitives and untextured models.
var defaultMeshColor = rl.NewColor(128, 128, 128, 255)

// gpuMesh is the GPU-side cache for one mesh handle: either a generated
// primitive mesh with a material, or a loaded model.
type gpuMesh struct {
	mesh    rl.Mesh
	mtl     rl.Material
	model   rl.Model
	isModel bool
	// offset recenters meshes raylib generates off-origin (cylinder base sits
	// at Y=0, so it is shifted down by half its height).
	offset mgl32.Vec3
}

func (g gpuMesh) unload() {
	if g.isModel {
		rl.UnloadModel(g.model)
		return
	}
	rl.UnloadMesh(&g.mesh)
}

// ensure creates the GPU cache for a handle on first draw. Meshes are created
// here rather than at registration so GPU work happens after the window and GL
// context exist.
func (r *Registry) ensure(h *MeshHandle) gpuMesh {
	if g, ok := r.gpu[h.key]; ok {
		return g
	}
	var g gpuMesh
	switch h.kind {
	case KindCube:
		g.mesh = rl.GenMeshCube(1, 1, 1)
	case KindSphere:
		g.mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case KindCylinder:
		g.mesh = rl.GenMeshCylinder(0.5, 1, cylinderSlices)
		g.offset = mgl32.Vec3{0, -0.5, 0}
	case KindPlane:
		g.mesh = rl.GenMeshPlane(planeExtent, planeExtent, 1, 1)
	case kindModel:
		g.model = rl.LoadModel(h.path)
		g.isModel = true
	}
	if !g.isModel {
		g.mtl = rl.LoadMaterialDefault()
		if albedo := g.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = defaultMeshColor
		}
	}
	r.gpu[h.key] = g
	return g
}

// Draw renders the visible list. Must be called between BeginMode3D and
// EndMode3D.
func (r *Registry) Draw(visible []Visible) {
	for _, v := range visible {
		g := r.ensure(v.Mesh)
		world := v.World
		if g.offset != (mgl32.Vec3{}) {
			world = world.Mul4(mgl32.Translate3D(g.offset.X(), g.offset.Y(), g.offset.Z()))
		}
		if g.isModel {
			g.model.Transform = rlMatrix(world)
			rl.DrawModel(g.model, rl.NewVector3(0, 0, 0), 1, rl.White)
			continue
		}
		rl.DrawMesh(g.mesh, g.mtl, rlMatrix(world))
	}
}

// rlMatrix converts a column-major mgl32 matrix to raylib's layout. Raylib's
// Mi field holds the same column-major element i.
func rlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
