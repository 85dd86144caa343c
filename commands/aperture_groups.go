package commands

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/states"
)

var apertureGroupsFlags = []cli.Flag{
	projectFlag,
	cli.BoolFlag{
		Name:  "interior",
		Usage: "list the interior aperture groups instead of the exterior ones",
	},
	cli.BoolFlag{
		Name:  "black-out",
		Usage: "list each group's blackout files instead of its states",
	},
}

// groupOutput is the serialized form of a dynamic group.
type groupOutput struct {
	Identifier string         `json:"identifier"`
	Kind       string         `json:"kind"`
	Interior   bool           `json:"interior"`
	States     []states.State `json:"states"`
}

func groupOutputs(groups []*states.Group) []groupOutput {
	out := make([]groupOutput, len(groups))
	for i, group := range groups {
		out[i] = groupOutput{
			Identifier: group.Identifier,
			Kind:       group.Kind.String(),
			Interior:   group.Interior,
			States:     group.States(),
		}
	}
	return out
}

func apertureGroups(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	if c.Bool("black-out") {
		return emit(c, m.ApertureGroupFilesBlack(nil, relPaths(c)))
	}
	return emit(c, groupOutputs(m.ApertureGroups(c.Bool("interior"))))
}
