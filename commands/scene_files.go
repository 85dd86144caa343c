package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var sceneFilesFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "black-out",
		Usage: "substitute blackout modifiers for the regular ones",
	},
	cli.BoolFlag{
		Name:  "indoor",
		Usage: "only list files from the indoor side of the scene",
	},
	cli.BoolFlag{
		Name:  "outdoor",
		Usage: "only list files from the outdoor side of the scene",
	},
}

func sceneFiles(c *cli.Context) (err error) {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	var files []string
	switch {
	case c.Bool("indoor"):
		files, err = m.SceneFilesIndoor(c.Bool("black-out"), relPaths(c))
	case c.Bool("outdoor"):
		files, err = m.SceneFilesOutdoor(c.Bool("black-out"), relPaths(c))
	default:
		files, err = m.SceneFiles(c.Bool("black-out"), relPaths(c))
	}
	if err != nil {
		return err
	}
	return emit(c, files)
}
