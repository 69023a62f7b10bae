// Package meshimport extracts collision geometry from glTF model files. The
// result is a physics.CollisionMesh registered once with the physics world and
// shared by every spawned instance of the model.
package meshimport

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"physics-sandbox/internal/physics"
)

// Byte strides of the extracted layout: three float32 per position, three
// uint32 indices per triangle.
const (
	positionStride      = 3 * 4
	indexStrideTriangle = 3 * 4
)

// LoadCollisionMesh reads a glTF file and flattens every indexed primitive of
// its first mesh into one triangle soup with a model-space bounding box.
// Primitives without indices are skipped; a file yielding no triangles is an
// error so a bad asset fails at startup instead of spawning bodyless meshes.
func LoadCollisionMesh(path string) (physics.CollisionMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return physics.CollisionMesh{}, errors.Wrapf(err, "open gltf %s", path)
	}
	if len(doc.Meshes) == 0 {
		return physics.CollisionMesh{}, errors.Errorf("gltf %s has no meshes", path)
	}
	return FromDocument(doc)
}

// FromDocument extracts the collision mesh from an already decoded document's
// first mesh.
func FromDocument(doc *gltf.Document) (physics.CollisionMesh, error) {
	if len(doc.Meshes) == 0 {
		return physics.CollisionMesh{}, errors.New("gltf document has no meshes")
	}
	mesh := doc.Meshes[0]

	var positions []mgl32.Vec3
	var indices []uint32
	for _, primitive := range mesh.Primitives {
		if primitive.Indices == nil {
			continue
		}
		posAccessor, ok := primitive.Attributes["POSITION"]
		if !ok {
			continue
		}
		primPositions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return physics.CollisionMesh{}, errors.Wrap(err, "read positions")
		}
		primIndices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			return physics.CollisionMesh{}, errors.Wrap(err, "read indices")
		}

		offset := uint32(len(positions))
		for _, p := range primPositions {
			positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})
		}
		for _, i := range primIndices {
			indices = append(indices, i+offset)
		}
	}
	if len(indices) == 0 {
		return physics.CollisionMesh{}, errors.Errorf("mesh %q has no indexed triangles", mesh.Name)
	}

	return physics.CollisionMesh{
		Positions:           positions,
		Indices:             indices,
		IndexStrideTriangle: indexStrideTriangle,
		PositionStride:      positionStride,
		Bounds:              bounds(positions),
	}, nil
}

func bounds(positions []mgl32.Vec3) physics.AABB {
	box := physics.AABB{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		for axis := 0; axis < 3; axis++ {
			box.Min[axis] = math32.Min(box.Min[axis], p[axis])
			box.Max[axis] = math32.Max(box.Max[axis], p[axis])
		}
	}
	return box
}
