package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"physics-sandbox/internal/scenegraph"
)

// Component attaches shared renderable geometry to an entity, drawn at its
// node's world transform. The component owns one reference on the mesh handle;
// whoever destroys the entity releases it.
type Component struct {
	Mesh *MeshHandle
	Node *scenegraph.Node
}

// Visible is one renderable instance for the current frame.
type Visible struct {
	Mesh  *MeshHandle
	World mgl32.Mat4
}

// GatherVisible collects every renderable entity's mesh and world transform.
// This is the render hook: called once per frame after the cached transforms
// are final, and consumed by the draw path (or anything else observing the
// frame).
func GatherVisible(pool *scenegraph.Pool, out []Visible) []Visible {
	out = out[:0]
	for _, e := range scenegraph.Group[Component](pool) {
		c := scenegraph.Component[Component](e)
		if c == nil || c.Mesh == nil || c.Node == nil {
			continue
		}
		out = append(out, Visible{Mesh: c.Mesh, World: c.Node.WorldTransform()})
	}
	return out
}
