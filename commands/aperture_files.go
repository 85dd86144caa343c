package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var apertureFilesFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "black-out",
		Usage: "substitute blackout modifiers for the regular ones",
	},
}

func apertureFiles(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	files, err := m.ApertureFiles(c.Bool("black-out"), relPaths(c))
	if err != nil {
		return err
	}
	return emit(c, files)
}
