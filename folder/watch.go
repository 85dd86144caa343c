package folder

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/radtools/radfolder/print"
	"github.com/radtools/radfolder/util"
)

// Watch monitors every states manifest folder and reloads the model when a
// manifest changes. Each reload parses into a fresh group collection and
// swaps it in atomically, so readers querying during a reload see either
// the old or the new result, never a mix. Watch blocks until stop is
// closed; onReload receives the outcome of every reload attempt and may be
// nil.
func (m *Model) Watch(stop <-chan struct{}, onReload func(err error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create new filesystem watcher")
	}
	defer watcher.Close()

	manifests := map[string]bool{}
	for _, sf := range []StatesFolder{
		m.layout.ApertureGroup,
		m.layout.ApertureGroupInterior,
		m.layout.DynamicOpaque,
		m.layout.DynamicOpaqueIndoor,
		m.layout.DynamicNonopaque,
		m.layout.DynamicNonopaqueIndoor,
	} {
		manifests[m.statesFile(sf)] = true

		dir := m.subFolder(sf.Path, true)
		if !util.Exists(dir) {
			continue
		}
		if err = watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		print.Verb("watching", dir)
	}

	for {
		select {
		case <-stop:
			print.Verb("stopping states watcher")
			return nil

		case err := <-watcher.Errors:
			return errors.Wrap(err, "failed while watching states manifests")

		case event := <-watcher.Events:
			if !manifests[util.Posix(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			print.Verb("states manifest changed:", event.Name)
			err := m.Reload()
			if onReload != nil {
				onReload(err)
			}
		}
	}
}
