// Package folder models a project's Radiance model folder: the standardized
// layout that separates static from dynamic, opaque from nonopaque, interior
// from exterior and aperture from non-aperture geometry. It loads the
// dynamic-state manifests through the states package and answers the file
// queries simulation recipes are built on.
package folder

import (
	"os"
	"path"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/radtools/radfolder/states"
	"github.com/radtools/radfolder/util"
)

// Model is a read view over one Radiance model folder. The parsed group
// collections are immutable; Reload builds a fresh set and swaps it in
// wholesale, so concurrent readers never observe a half-updated state.
type Model struct {
	folder string
	layout Layout
	groups atomic.Value // *groupCache
}

// groupCache partitions dynamic groups in the six buckets the folder
// structure distinguishes. Replaced as a whole on every (re)load.
type groupCache struct {
	apertureExterior *states.GroupSet
	apertureInterior *states.GroupSet
	opaqueOutdoor    *states.GroupSet
	opaqueIndoor     *states.GroupSet
	nonopaqueOutdoor *states.GroupSet
	nonopaqueIndoor  *states.GroupSet
}

// New opens a model folder inside a project folder, honoring a folder.json
// or folder.yaml layout override when present. The state manifests are
// parsed eagerly so a malformed manifest surfaces here, not on first query.
func New(projectFolder string) (*Model, error) {
	layout, err := LayoutFromDirectory(projectFolder)
	if err != nil {
		return nil, err
	}
	return NewWithLayout(projectFolder, layout)
}

// NewWithLayout opens a model folder with an explicit layout.
func NewWithLayout(projectFolder string, layout Layout) (*Model, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		folder: util.Posix(util.FullPath(projectFolder)),
		layout: layout,
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Folder returns the full path to the project folder.
func (m *Model) Folder() string {
	return m.folder
}

// Layout returns the folder convention the model was opened with.
func (m *Model) Layout() Layout {
	return m.layout
}

// ModelFolder returns the model root folder, relative to the project folder
// or as a full path.
func (m *Model) ModelFolder(full bool) string {
	if full {
		return path.Join(m.folder, m.layout.Root)
	}
	return m.layout.Root
}

func (m *Model) subFolder(sub string, full bool) string {
	if full {
		return path.Join(m.ModelFolder(true), sub)
	}
	return path.Join(m.layout.Root, sub)
}

// StaticApertureFolder returns the static aperture folder path.
func (m *Model) StaticApertureFolder(full bool) string {
	return m.subFolder(m.layout.StaticAperture.Path, full)
}

// ApertureGroupFolder returns the aperture group folder path, interior or
// exterior.
func (m *Model) ApertureGroupFolder(full, interior bool) string {
	if interior {
		return m.subFolder(m.layout.ApertureGroupInterior.Path, full)
	}
	return m.subFolder(m.layout.ApertureGroup.Path, full)
}

// DynamicSceneFolder returns the dynamic scene folder path for the given
// material kind and side of the model.
func (m *Model) DynamicSceneFolder(kind states.Kind, indoor, full bool) string {
	return m.subFolder(m.dynamicScene(kind, indoor).Path, full)
}

// BSDFFolder returns the folder holding BSDF and transmittance matrix files.
func (m *Model) BSDFFolder(full bool) string {
	return m.subFolder(m.layout.BSDF.Path, full)
}

// GridFolder returns the sensor grids folder path.
func (m *Model) GridFolder(full bool) string {
	return m.subFolder(m.layout.Grid.Path, full)
}

// ViewFolder returns the views folder path.
func (m *Model) ViewFolder(full bool) string {
	return m.subFolder(m.layout.View.Path, full)
}

// IESFolder returns the electric lighting folder path.
func (m *Model) IESFolder(full bool) string {
	return m.subFolder(m.layout.IES.Path, full)
}

func (m *Model) dynamicScene(kind states.Kind, indoor bool) StatesFolder {
	switch {
	case kind == states.KindOpaque && indoor:
		return m.layout.DynamicOpaqueIndoor
	case kind == states.KindOpaque:
		return m.layout.DynamicOpaque
	case kind == states.KindNonopaque && indoor:
		return m.layout.DynamicNonopaqueIndoor
	default:
		return m.layout.DynamicNonopaque
	}
}

func (m *Model) statesFile(sf StatesFolder) string {
	return path.Join(m.ModelFolder(true), sf.Path, sf.States)
}

// Reload re-parses every states manifest and atomically replaces the
// previous result. Callers holding groups from before the swap keep a
// consistent, if stale, view.
func (m *Model) Reload() error {
	cache, err := m.load()
	if err != nil {
		return err
	}
	m.groups.Store(cache)
	return nil
}

func (m *Model) load() (*groupCache, error) {
	parse := func(sf StatesFolder, kind states.Kind, interior bool) (*states.GroupSet, error) {
		return states.ParseFile(readExisting, m.statesFile(sf), kind, interior)
	}

	var (
		cache groupCache
		err   error
	)
	if cache.apertureExterior, err = parse(m.layout.ApertureGroup, states.KindAperture, false); err != nil {
		return nil, err
	}
	if cache.apertureInterior, err = parse(m.layout.ApertureGroupInterior, states.KindAperture, true); err != nil {
		return nil, err
	}
	if cache.opaqueOutdoor, err = parse(m.layout.DynamicOpaque, states.KindOpaque, false); err != nil {
		return nil, err
	}
	if cache.opaqueIndoor, err = parse(m.layout.DynamicOpaqueIndoor, states.KindOpaque, true); err != nil {
		return nil, err
	}
	if cache.nonopaqueOutdoor, err = parse(m.layout.DynamicNonopaque, states.KindNonopaque, false); err != nil {
		return nil, err
	}
	if cache.nonopaqueIndoor, err = parse(m.layout.DynamicNonopaqueIndoor, states.KindNonopaque, true); err != nil {
		return nil, err
	}
	return &cache, nil
}

func (m *Model) cache() *groupCache {
	return m.groups.Load().(*groupCache)
}

// relTo makes full paths relative to the project folder when relPath is set.
func (m *Model) relTo(full string, relPath bool) string {
	if !relPath {
		return util.Posix(full)
	}
	rel, err := filepath.Rel(m.folder, full)
	if err != nil {
		return util.Posix(full)
	}
	return util.Posix(rel)
}

// readExisting reads a file but reports missing files as errors the states
// parser treats as "manifest not materialized yet".
func readExisting(file string) ([]byte, error) {
	if !util.IsFile(file) {
		return nil, errors.Errorf("no file at %s", file)
	}
	return os.ReadFile(file)
}
