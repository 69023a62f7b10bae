// Package render holds the renderable side of the sandbox: shared, immutable
// mesh handles reference-counted across all entities that draw them, the
// renderable component, the per-frame visible list exposed to the renderer,
// and the raylib draw path used by the binary.
package render

// Primitive mesh kinds known to the registry. Model handles carry a file path
// instead of a kind.
const (
	KindCube     = "cube"
	KindSphere   = "sphere"
	KindCylinder = "cylinder"
	KindPlane    = "plane"
	kindModel    = "model"
)

// MeshHandle is a shared reference to one immutable piece of renderable
// geometry. Many entities reference the same handle; each holds one reference
// and releases it on teardown. GPU resources are freed when the last reference
// drops. Handles are never deep-copied.
type MeshHandle struct {
	kind string
	path string // model file path, set for model handles only
	key  string
	refs int
	reg  *Registry
}

// Kind returns the handle's primitive kind, or "model" for imported models.
func (h *MeshHandle) Kind() string {
	return h.kind
}

// Refs returns the current reference count.
func (h *MeshHandle) Refs() int {
	return h.refs
}

// Retain takes one reference and returns the handle for call chaining.
func (h *MeshHandle) Retain() *MeshHandle {
	h.refs++
	return h
}

// Release drops one reference. When the count reaches zero the registry frees
// any GPU resources and forgets the handle.
func (h *MeshHandle) Release() {
	h.refs--
	if h.refs <= 0 {
		h.reg.release(h)
	}
}

// Registry hands out shared mesh handles, one per primitive kind or model
// path, and owns the deferred GPU cache behind them. Everything runs on the
// frame thread.
type Registry struct {
	handles map[string]*MeshHandle
	gpu     map[string]gpuMesh
}

// NewRegistry returns a registry with no handles. GPU resources are created
// lazily on first draw so registration can happen before the window exists.
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]*MeshHandle),
		gpu:     make(map[string]gpuMesh),
	}
}

// Primitive returns the shared handle for a primitive kind, creating it with
// zero references on first use. Callers Retain per entity that uses it.
func (r *Registry) Primitive(kind string) *MeshHandle {
	if h, ok := r.handles[kind]; ok {
		return h
	}
	h := &MeshHandle{kind: kind, key: kind, reg: r}
	r.handles[kind] = h
	return h
}

// Model returns the shared handle for a model file, creating it on first use.
func (r *Registry) Model(path string) *MeshHandle {
	key := kindModel + ":" + path
	if h, ok := r.handles[key]; ok {
		return h
	}
	h := &MeshHandle{kind: kindModel, path: path, key: key, reg: r}
	r.handles[key] = h
	return h
}

// release frees the handle's GPU cache (if loaded) and forgets the handle so a
// later request recreates it fresh.
func (r *Registry) release(h *MeshHandle) {
	if g, ok := r.gpu[h.key]; ok {
		g.unload()
		delete(r.gpu, h.key)
	}
	delete(r.handles, h.key)
}
