package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"physics-sandbox/internal/scenegraph"
)

func TestPrimitiveHandlesAreShared(t *testing.T) {
	r := NewRegistry()
	a := r.Primitive(KindCube)
	b := r.Primitive(KindCube)
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.Primitive(KindCylinder))
}

func TestModelHandlesKeyedByPath(t *testing.T) {
	r := NewRegistry()
	a := r.Model("assets/a.gltf")
	assert.Same(t, a, r.Model("assets/a.gltf"))
	assert.NotSame(t, a, r.Model("assets/b.gltf"))
	assert.Equal(t, "model", a.Kind())
}

func TestRetainReleaseCountsReferences(t *testing.T) {
	r := NewRegistry()
	h := r.Primitive(KindCube)
	h.Retain()
	h.Retain()
	assert.Equal(t, 2, h.Refs())

	h.Release()
	assert.Equal(t, 1, h.Refs())
	assert.Same(t, h, r.Primitive(KindCube), "handle stays shared while referenced")

	h.Release()
	assert.NotSame(t, h, r.Primitive(KindCube), "last release forgets the handle")
}

func TestGatherVisibleCollectsRenderables(t *testing.T) {
	scene := scenegraph.NewScene()
	root := scene.CreateNode()
	scene.SetRootNode(root)
	r := NewRegistry()

	node := scene.CreateNode()
	root.AddChild(node)
	e := scene.CreateEntity()
	scenegraph.Attach(scene.Pool(), e, &Component{Mesh: r.Primitive(KindCube).Retain(), Node: node})
	scene.CreateEntity() // entity without renderable

	visible := GatherVisible(scene.Pool(), nil)
	assert.Len(t, visible, 1)
	assert.Equal(t, KindCube, visible[0].Mesh.Kind())

	// Reuses the caller's slice across frames.
	visible = GatherVisible(scene.Pool(), visible)
	assert.Len(t, visible, 1)
}
