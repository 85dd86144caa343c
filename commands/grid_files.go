package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var gridFilesFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "info",
		Usage: "list grid information files instead of the grids themselves",
	},
}

func gridFiles(c *cli.Context) (err error) {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	var files []string
	if c.Bool("info") {
		files, err = m.GridInfoFiles(relPaths(c))
	} else {
		files, err = m.GridFiles(relPaths(c))
	}
	if err != nil {
		return err
	}
	return emit(c, files)
}
