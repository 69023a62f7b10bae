package spawn

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"physics-sandbox/internal/physics"
)

// Set holds the per-shape recipes the spawner uses. Recipes are handed to the
// physics world once at creation time and never mutated afterwards.
type Set struct {
	Cube     physics.Recipe
	Cylinder physics.Recipe
	Mesh     physics.Recipe
}

// DefaultRecipes returns the stock spawn recipes: heavy low-bounce cubes,
// heavier slightly bouncier cylinders, light mesh instances.
func DefaultRecipes() Set {
	return Set{
		Cube: physics.Recipe{
			Mass:           10,
			Restitution:    0.05,
			LinearDamping:  0.3,
			AngularDamping: 0.3,
		},
		Cylinder: physics.Recipe{
			Mass:           30,
			Restitution:    0.2,
			LinearDamping:  0.3,
			AngularDamping: 0.3,
		},
		Mesh: physics.Recipe{
			Mass:        1,
			Restitution: 0.05,
		},
	}
}

// recipeDef is the YAML form of one recipe (e.g. assets/recipes.yaml). A
// present section replaces that shape's default wholesale.
type recipeDef struct {
	Mass           float32 `yaml:"mass"`
	Restitution    float32 `yaml:"restitution"`
	LinearDamping  float32 `yaml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping"`
}

type recipeFile struct {
	Cube     *recipeDef `yaml:"cube"`
	Cylinder *recipeDef `yaml:"cylinder"`
	Mesh     *recipeDef `yaml:"mesh"`
}

func (d *recipeDef) recipe() physics.Recipe {
	return physics.Recipe{
		Mass:           d.Mass,
		Restitution:    d.Restitution,
		LinearDamping:  d.LinearDamping,
		AngularDamping: d.AngularDamping,
	}
}

// LoadRecipes reads recipe overrides from a YAML file. A missing file returns
// the defaults without error; a present but malformed file is an error so a
// typo does not silently fall back.
func LoadRecipes(path string) (Set, error) {
	set := DefaultRecipes()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return set, errors.Wrapf(err, "read recipes %s", path)
	}
	var file recipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return set, errors.Wrapf(err, "parse recipes %s", path)
	}
	if file.Cube != nil {
		set.Cube = file.Cube.recipe()
	}
	if file.Cylinder != nil {
		set.Cylinder = file.Cylinder.recipe()
	}
	if file.Mesh != nil {
		set.Mesh = file.Mesh.recipe()
	}
	return set, nil
}
