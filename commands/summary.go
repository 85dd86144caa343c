package commands

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/states"
)

var summaryFlags = []cli.Flag{
	projectFlag,
}

func summary(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Group", "Kind", "Side", "States", "BSDF"})

	appendGroups := func(groups []*states.Group) {
		for _, group := range groups {
			side := "exterior"
			if group.Interior {
				side = "interior"
			}
			t.AppendRow(table.Row{
				group.Identifier,
				group.Kind.String(),
				side,
				strconv.Itoa(len(group.States())),
				strconv.FormatBool(group.HasTransmissionMatrix()),
			})
		}
	}

	appendGroups(m.ApertureGroups(false))
	appendGroups(m.ApertureGroups(true))
	appendGroups(m.NonApertureGroups(false))
	appendGroups(m.NonApertureGroups(true))

	t.Render()
	return nil
}
