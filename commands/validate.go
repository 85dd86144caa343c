package commands

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/print"
	"github.com/radtools/radfolder/states"
	"github.com/radtools/radfolder/util"
)

var validateFlags = []cli.Flag{
	projectFlag,
	cli.StringFlag{
		Name:  "manifest",
		Usage: "validate a single states manifest against the schema instead of a whole model",
	},
}

func validate(c *cli.Context) error {
	if file := c.String("manifest"); file != "" {
		return validateManifest(file)
	}

	m, err := openModel(c)
	if err != nil {
		return err
	}

	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "model folder in %s is not valid", m.Folder())
	}
	print.Info("model folder in", m.Folder(), "is valid")
	return nil
}

func validateManifest(file string) error {
	raw, err := os.ReadFile(util.FullPath(file))
	if err != nil {
		return errors.Wrapf(err, "failed to read manifest %s", file)
	}

	if err := states.ValidateDocument(raw); err != nil {
		return errors.Wrapf(err, "manifest %s does not match the states schema", file)
	}
	print.Info("manifest", file, "matches the states schema")
	return nil
}
