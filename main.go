package main

import (
	"os"

	"github.com/radtools/radfolder/commands"
	"github.com/radtools/radfolder/print"
)

var version = "master"

func main() {
	err := commands.App(version).Run(os.Args)
	if err != nil {
		print.Erro(err)
		os.Exit(1)
	}
}
