package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testProject = "../folder/tests/project_folder"

func run(t *testing.T, args ...string) {
	t.Helper()
	app := App("test")
	err := app.Run(append([]string{"radfolder", "--bare"}, args...))
	assert.NoError(t, err)
}

func readJSONList(t *testing.T, file string) (files []string) {
	t.Helper()
	contents, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(contents, &files))
	return
}

func TestApertureFilesCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	run(t, "aperture-files", "--project", testProject, "--log-file", out)

	assert.Equal(t, []string{
		"model/static/aperture/sample_case.mat",
		"model/static/aperture/sample_case.rad",
	}, readJSONList(t, out))
}

func TestSceneFilesCommandIndoor(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	run(t, "scene-files", "--project", testProject, "--indoor", "--log-file", out)

	files := readJSONList(t, out)
	assert.Len(t, files, 4)
	assert.Contains(t, files, "model/static/opaque/indoor/partition.rad")
}

func TestApertureGroupsCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	run(t, "aperture-groups", "--project", testProject, "--log-file", out)

	contents, err := os.ReadFile(out)
	assert.NoError(t, err)

	var groups []groupOutput
	assert.NoError(t, json.Unmarshal(contents, &groups))
	assert.Len(t, groups, 1)
	assert.Equal(t, "south_window", groups[0].Identifier)
	assert.Equal(t, "aperture", groups[0].Kind)
	assert.Len(t, groups[0].States, 2)
}

func TestGridFilesCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	run(t, "grid-files", "--project", testProject, "--log-file", out)

	assert.Equal(t, []string{
		"model/grid/room_1.pts",
		"model/grid/room_2.pts",
	}, readJSONList(t, out))
}

func TestValidateCommand(t *testing.T) {
	app := App("test")
	err := app.Run([]string{
		"radfolder", "--bare", "validate", "--project", testProject})
	assert.NoError(t, err)
}

func TestValidateManifestCommand(t *testing.T) {
	manifest := filepath.Join(testProject, "model", "dynamic", "aperture", "states.json")
	app := App("test")
	err := app.Run([]string{
		"radfolder", "--bare", "validate", "--manifest", manifest})
	assert.NoError(t, err)
}

func TestValidateCommandFailsOnMissingFiles(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model", "dynamic", "aperture")
	assert.NoError(t, os.MkdirAll(model, 0755))
	manifest := `{"south_window": [{"default": "missing.rad"}]}`
	assert.NoError(t, os.WriteFile(
		filepath.Join(model, "states.json"), []byte(manifest), 0644))

	app := App("test")
	err := app.Run([]string{"radfolder", "--bare", "validate", "--project", dir})
	assert.Error(t, err)
}
