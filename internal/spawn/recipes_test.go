package spawn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecipes(t *testing.T) {
	set := DefaultRecipes()
	assert.Equal(t, float32(10), set.Cube.Mass)
	assert.Equal(t, float32(0.05), set.Cube.Restitution)
	assert.Equal(t, float32(30), set.Cylinder.Mass)
	assert.Equal(t, float32(0.2), set.Cylinder.Restitution)
}

func TestLoadRecipesMissingFileReturnsDefaults(t *testing.T) {
	set, err := LoadRecipes(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRecipes(), set)
}

func TestLoadRecipesOverridesPresentSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	data := `
cube:
  mass: 2.5
  restitution: 0.9
  linear_damping: 0.1
  angular_damping: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	set, err := LoadRecipes(path)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), set.Cube.Mass)
	assert.Equal(t, float32(0.9), set.Cube.Restitution)
	assert.Equal(t, float32(0.1), set.Cube.LinearDamping)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultRecipes().Cylinder, set.Cylinder)
	assert.Equal(t, DefaultRecipes().Mesh, set.Mesh)
}

func TestLoadRecipesMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cube: [not a mapping"), 0644))

	_, err := LoadRecipes(path)
	assert.Error(t, err)
}
