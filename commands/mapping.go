package commands

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/print"
)

var mappingFlags = []cli.Flag{
	projectFlag,
}

func sceneMapping(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	mapping, err := m.OctreeSceneMapping()
	if err != nil {
		return err
	}
	print.Verb("wrote scene_mapping.json to", m.Folder())
	return emit(c, mapping)
}

func gridMapping(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	mapping, err := m.GridMapping()
	if err != nil {
		return err
	}
	print.Verb("wrote grid_mapping.json to", m.Folder())
	return emit(c, mapping)
}
