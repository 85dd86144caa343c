package folder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()

	assert.NoError(t, layout.Validate())
	assert.Equal(t, "model", layout.Root)
	assert.Equal(t, "static/aperture", layout.StaticAperture.Path)
	assert.Equal(t, "dynamic/aperture/interior", layout.ApertureGroupInterior.Path)
	assert.Equal(t, "states.json", layout.ApertureGroup.States)
	assert.Equal(t, `.+\.pts$`, layout.Grid.Pattern)
}

func TestLayoutFromFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "folder.json")
	override := `{
		"root": "radiance",
		"grid": {"path": "sensors", "pattern": ".+\\.pts$"}
	}`
	assert.NoError(t, os.WriteFile(file, []byte(override), 0644))

	layout, err := LayoutFromFile(file)
	assert.NoError(t, err)

	assert.Equal(t, "radiance", layout.Root)
	assert.Equal(t, "sensors", layout.Grid.Path)
	// anything not overridden keeps its default
	assert.Equal(t, "static/opaque", layout.StaticOpaque.Path)
	assert.Equal(t, "states.json", layout.DynamicOpaque.States)
}

func TestLayoutFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "folder.yaml")
	override := "root: radiance\nindoor: inside\n"
	assert.NoError(t, os.WriteFile(file, []byte(override), 0644))

	layout, err := LayoutFromFile(file)
	assert.NoError(t, err)
	assert.Equal(t, "radiance", layout.Root)
	assert.Equal(t, "inside", layout.Indoor)
	assert.Equal(t, "outdoor", layout.Outdoor)
}

func TestLayoutFromDirectory(t *testing.T) {
	dir := t.TempDir()

	layout, err := LayoutFromDirectory(dir)
	assert.NoError(t, err)
	assert.Equal(t, DefaultLayout(), layout)

	file := filepath.Join(dir, "folder.json")
	assert.NoError(t, os.WriteFile(file, []byte(`{"root": "radiance"}`), 0644))

	layout, err = LayoutFromDirectory(dir)
	assert.NoError(t, err)
	assert.Equal(t, "radiance", layout.Root)
}

func TestLayoutValidate(t *testing.T) {
	broken := DefaultLayout()
	broken.Root = ""
	assert.Error(t, broken.Validate())

	broken = DefaultLayout()
	broken.StaticOpaque.GeoPattern = `([`
	assert.Error(t, broken.Validate())

	broken = DefaultLayout()
	broken.ApertureGroup.States = ""
	assert.Error(t, broken.Validate())
}
