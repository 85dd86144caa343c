package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadOrCreate(dir, false)
	assert.NoError(t, err)
	assert.NotNil(t, s.FullPaths)
	assert.False(t, *s.FullPaths)

	// first run materializes a settings file
	_, err = os.Stat(filepath.Join(dir, "settings.json"))
	assert.NoError(t, err)
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	dir := t.TempDir()
	contents := `{"default_project": "/projects/office", "full_paths": true}`
	err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(contents), 0644)
	assert.NoError(t, err)

	s, err := LoadOrCreate(dir, false)
	assert.NoError(t, err)
	assert.Equal(t, "/projects/office", s.DefaultProject)
	assert.True(t, *s.FullPaths)
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	value := true
	err := Write(dir, Settings{DefaultProject: "/projects/office", FullPaths: &value})
	assert.NoError(t, err)

	s, err := LoadOrCreate(dir, false)
	assert.NoError(t, err)
	assert.Equal(t, "/projects/office", s.DefaultProject)
	assert.True(t, *s.FullPaths)
}
