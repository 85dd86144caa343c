package commands

import (
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v1"

	"github.com/radtools/radfolder/print"
)

var watchFlags = []cli.Flag{
	projectFlag,
}

func watch(c *cli.Context) error {
	m, err := openModel(c)
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		close(stop)
	}()

	print.Info("watching states manifests in", m.Folder())
	return m.Watch(stop, func(err error) {
		if err != nil {
			print.Erro("reload failed:", err)
			return
		}
		print.Info("model reloaded")
	})
}
