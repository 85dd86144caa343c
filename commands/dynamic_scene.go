package commands

import (
	"gopkg.in/urfave/cli.v1"
)

var dynamicSceneFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "interior",
		Usage: "list the indoor scene groups instead of the outdoor ones",
	},
	cli.BoolFlag{
		Name:  "direct",
		Usage: "list each group's direct study files instead of its states",
	},
	cli.BoolFlag{
		Name:  "isolation",
		Usage: "select files for an isolation study, apertures stay in their default state",
	},
}

func dynamicScene(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	if c.Bool("direct") || c.Bool("isolation") {
		return emit(c, m.BlackOutSelection(c.Bool("direct"), c.Bool("isolation")))
	}
	return emit(c, groupOutputs(m.NonApertureGroups(c.Bool("interior"))))
}
