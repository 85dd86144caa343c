// Package commands wires the radfolder command line interface: one command
// per model folder query, plus validation, summary and watch helpers.
package commands

import (
	"encoding/json"
	"os"

	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/folder"
	"github.com/radtools/radfolder/print"
	"github.com/radtools/radfolder/settings"
	"github.com/radtools/radfolder/util"
)

// cfg is the loaded user settings, available to all commands.
var cfg *settings.Settings

var globalFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "output all detailed information - useful for debugging",
	},
	cli.BoolFlag{
		Name:  "bare",
		Usage: "skip loading user settings",
	},
}

// App builds the command line application.
func App(version string) *cli.App {
	app := cli.NewApp()

	app.Name = "radfolder"
	app.Usage = "Queries and validates Radiance model folders for daylight simulation recipes."
	app.Version = version
	app.EnableBashCompletion = true
	app.Flags = globalFlags

	cli.VersionFlag = cli.BoolFlag{
		Name:  "app-version, V",
		Usage: "show the app version number",
	}

	app.Before = func(c *cli.Context) (err error) {
		if c.Bool("verbose") {
			print.SetVerbose()
		}
		if c.Bool("bare") {
			cfg = &settings.Settings{}
			return nil
		}

		configDir := configdir.LocalConfig("radfolder")
		err = os.MkdirAll(configDir, 0755)
		if err != nil {
			return errors.Wrap(err, "failed to create config directory")
		}

		cfg, err = settings.LoadOrCreate(configDir, c.Bool("verbose"))
		if err != nil {
			return errors.Wrap(err, "failed to load user settings")
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:    "aperture-files",
			Aliases: []string{"af"},
			Usage:   "list the static aperture files of a model folder",
			Action:  apertureFiles,
			Flags:   commandFlags(apertureFilesFlags),
		},
		{
			Name:    "scene-files",
			Aliases: []string{"sf"},
			Usage:   "list the static scene files of a model folder",
			Action:  sceneFiles,
			Flags:   commandFlags(sceneFilesFlags),
		},
		{
			Name:   "grid-files",
			Usage:  "list the sensor grid files of a model folder",
			Action: gridFiles,
			Flags:  commandFlags(gridFilesFlags),
		},
		{
			Name:   "view-files",
			Usage:  "list the view files of a model folder",
			Action: viewFiles,
			Flags:  commandFlags(viewFilesFlags),
		},
		{
			Name:    "aperture-groups",
			Aliases: []string{"ag"},
			Usage:   "list the dynamic aperture groups of a model folder",
			Action:  apertureGroups,
			Flags:   commandFlags(apertureGroupsFlags),
		},
		{
			Name:   "dynamic-scene",
			Usage:  "list the dynamic scene groups of a model folder",
			Action: dynamicScene,
			Flags:  commandFlags(dynamicSceneFlags),
		},
		{
			Name:   "view-matrix-files",
			Usage:  "list the files relevant to view matrix calculation",
			Action: viewMatrixFiles,
			Flags:  commandFlags(matrixFilesFlags),
		},
		{
			Name:   "daylight-matrix-files",
			Usage:  "list the files relevant to daylight matrix calculation",
			Action: daylightMatrixFiles,
			Flags:  commandFlags(matrixFilesFlags),
		},
		{
			Name:   "scene-mapping",
			Usage:  "write the octree scene mapping for a model folder",
			Action: sceneMapping,
			Flags:  commandFlags(mappingFlags),
		},
		{
			Name:   "grid-mapping",
			Usage:  "write the sensor grid mapping for a model folder",
			Action: gridMapping,
			Flags:  commandFlags(mappingFlags),
		},
		{
			Name:   "validate",
			Usage:  "check every dynamic group's files and light paths",
			Action: validate,
			Flags:  append(globalFlags, validateFlags...),
		},
		{
			Name:   "summary",
			Usage:  "print an overview of a model folder's groups and states",
			Action: summary,
			Flags:  append(globalFlags, summaryFlags...),
		},
		{
			Name:   "watch",
			Usage:  "reload the model whenever a states manifest changes",
			Action: watch,
			Flags:  append(globalFlags, watchFlags...),
		},
	}

	return app
}

// projectFlag is shared by every command that operates on a model folder.
var projectFlag = cli.StringFlag{
	Name:  "project",
	Value: ".",
	Usage: "project folder containing the model - by default, uses the current directory",
}

// openModel opens the model folder named by the command's flags, falling
// back to the settings default when --project is not set.
func openModel(c *cli.Context) (*folder.Model, error) {
	dir := c.String("project")
	if !c.IsSet("project") && cfg != nil && cfg.DefaultProject != "" {
		dir = cfg.DefaultProject
	}
	dir = util.FullPath(dir)

	if cfg != nil && cfg.LayoutFile != "" {
		layout, err := folder.LayoutFromFile(cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		return folder.NewWithLayout(dir, layout)
	}

	m, err := folder.New(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model folder in %s", dir)
	}
	return m, nil
}

// relPaths reports whether command output should use project-relative paths.
func relPaths(c *cli.Context) bool {
	if c.Bool("full-paths") {
		return false
	}
	if cfg != nil && cfg.FullPaths != nil {
		return !*cfg.FullPaths
	}
	return true
}

// emit writes v as indented JSON to stdout, or to --log-file when set.
func emit(c *cli.Context, v interface{}) error {
	contents, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	contents = append(contents, '\n')

	if file := c.String("log-file"); file != "" {
		err = os.WriteFile(file, contents, 0644)
		return errors.Wrapf(err, "failed to write output to %s", file)
	}

	_, err = os.Stdout.Write(contents)
	return err
}

var outputFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "log-file",
		Usage: "write the output to a file instead of stdout",
	},
	cli.BoolFlag{
		Name:  "full-paths",
		Usage: "print full paths instead of project-relative ones",
	},
}

// commandFlags combines the global flags, a command's own flags and the
// output flags every emitting command shares.
func commandFlags(own []cli.Flag) []cli.Flag {
	combined := make([]cli.Flag, 0, len(globalFlags)+len(own)+len(outputFlags))
	combined = append(combined, globalFlags...)
	combined = append(combined, own...)
	return append(combined, outputFlags...)
}
