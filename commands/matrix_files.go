package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var matrixFilesFlags = []cli.Flag{
	projectFlag,
}

func viewMatrixFiles(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	files, err := m.ViewMatrixFiles()
	if err != nil {
		return err
	}
	return emit(c, files)
}

func daylightMatrixFiles(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	files, err := m.DaylightMatrixFiles()
	if err != nil {
		return err
	}
	return emit(c, files)
}
