package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var viewFilesFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "info",
		Usage: "list view information files instead of the views themselves",
	},
}

func viewFiles(c *cli.Context) (err error) {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	var files []string
	if c.Bool("info") {
		files, err = m.ViewInfoFiles(relPaths(c))
	} else {
		files, err = m.ViewFiles(relPaths(c))
	}
	if err != nil {
		return err
	}
	return emit(c, files)
}
