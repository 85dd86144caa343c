// Package settings handles the user-level configuration for radfolder:
// defaults that apply across projects, loaded from the user's config
// directory and overridable through the environment.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kr/pretty"
	"github.com/sampctl/configor"

	"github.com/radtools/radfolder/print"
	"github.com/radtools/radfolder/util"
)

// Settings represents a local configuration for radfolder
// nolint:lll
type Settings struct {
	DefaultProject string `json:"default_project,omitempty" env:"RADFOLDER_DEFAULT_PROJECT"` // project folder used when a command is run without one
	LayoutFile     string `json:"layout_file,omitempty"     env:"RADFOLDER_LAYOUT_FILE"`     // explicit folder layout file, overrides folder.json discovery
	FullPaths      *bool  `json:"full_paths,omitempty"      env:"RADFOLDER_FULL_PATHS"`      // print full paths instead of project-relative ones
	CI             string `json:"-" yaml:"-"                env:"CI"`                        // so radfolder can detect it is running inside CI
}

// LoadOrCreate reads a settings file from the given config directory,
// creating a default one on first run.
func LoadOrCreate(configDir string, verbose bool) (s *Settings, err error) {
	s = new(Settings)

	err = godotenv.Load(".env")
	// on unix: "open .env: no such file or directory"
	// on windows: "open .env: The system cannot find the file specified"
	if err != nil && !strings.HasPrefix(err.Error(), "open .env") {
		print.Warn("Failed to load .env:", err)
	}

	settingsFiles := []string{
		filepath.Join(configDir, "settings.json"),
		filepath.Join(configDir, "settings.yaml"),
	}
	settingsFile := ""
	for _, file := range settingsFiles {
		if util.Exists(file) {
			settingsFile = file
			break
		}
	}

	if settingsFile != "" {
		cnfgr := configor.New(&configor.Config{
			EnvironmentPrefix:    "RADFOLDER",
			ErrorOnUnmatchedKeys: false,
		})

		err = cnfgr.Load(s, settingsFile)
		if err != nil {
			return nil, err
		}

		if s.FullPaths == nil {
			value := false
			s.FullPaths = &value
		}
		print.Verb("Using settings:", pretty.Sprint(s))
	} else {
		print.Verb("No settings file found, using default settings")

		value := false
		s.FullPaths = &value

		var contents []byte
		contents, err = json.MarshalIndent(s, "", "    ")
		if err != nil {
			return
		}
		err = os.WriteFile(settingsFiles[0], contents, 0644)
		if err != nil {
			return
		}
	}

	return s, nil
}

// Write writes a settings file to the given config directory
func Write(configDir string, s Settings) (err error) {
	settingsFile := filepath.Join(configDir, "settings.json")
	contents, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return
	}
	err = os.WriteFile(settingsFile, contents, 0644)
	if err != nil {
		return
	}
	return
}
