package folder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/radtools/radfolder/util"
)

// PatternFolder describes a folder of static geometry: where it lives and
// how geometry, modifier and blackout files are recognized.
type PatternFolder struct {
	Path       string `json:"path" yaml:"path"`
	GeoPattern string `json:"geo_pattern" yaml:"geo_pattern"`
	ModPattern string `json:"mod_pattern" yaml:"mod_pattern"`
	BlkPattern string `json:"blk_pattern" yaml:"blk_pattern"`
}

// StatesFolder describes a folder of dynamic geometry and the name of the
// manifest that declares its groups.
type StatesFolder struct {
	Path   string `json:"path" yaml:"path"`
	States string `json:"states" yaml:"states"`
}

// AssetFolder describes a folder of supporting files matched by a single
// pattern, optionally with an information-file pattern alongside.
type AssetFolder struct {
	Path        string `json:"path" yaml:"path"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	InfoPattern string `json:"info_pattern,omitempty" yaml:"info_pattern,omitempty"`
}

// Layout captures the folder convention of a Radiance model folder. Every
// path is relative to the model root. Projects can override parts of it
// with a folder.json or folder.yaml next to the model folder; anything not
// overridden keeps its default.
type Layout struct {
	// Root is the model folder name inside the project folder.
	Root string `json:"root" yaml:"root"`

	StaticAperture  PatternFolder `json:"static_aperture" yaml:"static_aperture"`
	StaticOpaque    PatternFolder `json:"static_opaque" yaml:"static_opaque"`
	StaticNonopaque PatternFolder `json:"static_nonopaque" yaml:"static_nonopaque"`

	// Indoor and Outdoor name the subfolders that split static scene
	// geometry between the two sides of the model.
	Indoor  string `json:"indoor" yaml:"indoor"`
	Outdoor string `json:"outdoor" yaml:"outdoor"`

	ApertureGroup          StatesFolder `json:"aperture_group" yaml:"aperture_group"`
	ApertureGroupInterior  StatesFolder `json:"aperture_group_interior" yaml:"aperture_group_interior"`
	DynamicOpaque          StatesFolder `json:"dynamic_opaque" yaml:"dynamic_opaque"`
	DynamicOpaqueIndoor    StatesFolder `json:"dynamic_opaque_indoor" yaml:"dynamic_opaque_indoor"`
	DynamicNonopaque       StatesFolder `json:"dynamic_nonopaque" yaml:"dynamic_nonopaque"`
	DynamicNonopaqueIndoor StatesFolder `json:"dynamic_nonopaque_indoor" yaml:"dynamic_nonopaque_indoor"`

	BSDF AssetFolder `json:"bsdf" yaml:"bsdf"`
	Grid AssetFolder `json:"grid" yaml:"grid"`
	View AssetFolder `json:"view" yaml:"view"`
	IES  AssetFolder `json:"ies" yaml:"ies"`
}

// DefaultLayout returns the standard Radiance folder structure.
func DefaultLayout() Layout {
	geometry := `.+\.rad$`
	modifier := `.+\.mat$`
	blackout := `.+\.blk$`

	return Layout{
		Root: "model",

		StaticAperture: PatternFolder{
			Path:       "static/aperture",
			GeoPattern: geometry,
			ModPattern: modifier,
			BlkPattern: blackout,
		},
		StaticOpaque: PatternFolder{
			Path:       "static/opaque",
			GeoPattern: geometry,
			ModPattern: modifier,
			BlkPattern: blackout,
		},
		StaticNonopaque: PatternFolder{
			Path:       "static/nonopaque",
			GeoPattern: geometry,
			ModPattern: modifier,
			BlkPattern: blackout,
		},

		Indoor:  "indoor",
		Outdoor: "outdoor",

		ApertureGroup:          StatesFolder{Path: "dynamic/aperture", States: "states.json"},
		ApertureGroupInterior:  StatesFolder{Path: "dynamic/aperture/interior", States: "states.json"},
		DynamicOpaque:          StatesFolder{Path: "dynamic/opaque", States: "states.json"},
		DynamicOpaqueIndoor:    StatesFolder{Path: "dynamic/opaque/indoor", States: "states.json"},
		DynamicNonopaque:       StatesFolder{Path: "dynamic/nonopaque", States: "states.json"},
		DynamicNonopaqueIndoor: StatesFolder{Path: "dynamic/nonopaque/indoor", States: "states.json"},

		BSDF: AssetFolder{Path: "bsdf", Pattern: `.+\.(xml|mtx)$`},
		Grid: AssetFolder{Path: "grid", Pattern: `.+\.pts$`, InfoPattern: `_info\.json$`},
		View: AssetFolder{Path: "view", Pattern: `.+\.vf$`, InfoPattern: `_info\.json$`},
		IES:  AssetFolder{Path: "ies", Pattern: `.+\.ies$`},
	}
}

// LayoutFromFile reads a layout override and fills anything it leaves out
// from the defaults.
func LayoutFromFile(file string) (layout Layout, err error) {
	contents, err := os.ReadFile(file)
	if err != nil {
		err = errors.Wrapf(err, "failed to read layout from %s", file)
		return
	}

	if filepath.Ext(file) == ".json" {
		err = json.Unmarshal(contents, &layout)
	} else {
		err = yaml.Unmarshal(contents, &layout)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal layout from %s", file)
		return
	}

	err = mergo.Merge(&layout, DefaultLayout())
	if err != nil {
		err = errors.Wrap(err, "failed to merge layout with defaults")
		return
	}

	err = layout.Validate()
	return
}

// LayoutFromDirectory searches a project folder for a folder.json or
// folder.yaml override. The JSON file takes precedence. Without either, the
// default layout is used.
func LayoutFromDirectory(dir string) (Layout, error) {
	for _, name := range []string{"folder.json", "folder.yaml"} {
		file := filepath.Join(dir, name)
		if util.IsFile(file) {
			return LayoutFromFile(file)
		}
	}
	return DefaultLayout(), nil
}

// Validate checks the layout for missing paths and broken patterns.
func (l Layout) Validate() (err error) {
	if l.Root == "" {
		return errors.New("layout does not define a model root folder")
	}

	static := map[string]PatternFolder{
		"static_aperture":  l.StaticAperture,
		"static_opaque":    l.StaticOpaque,
		"static_nonopaque": l.StaticNonopaque,
	}
	for name, pf := range static {
		if pf.Path == "" {
			return errors.Errorf("layout section '%s' does not define a path", name)
		}
		for _, pattern := range []string{pf.GeoPattern, pf.ModPattern, pf.BlkPattern} {
			if _, err = regexp.Compile(pattern); err != nil {
				return errors.Wrapf(err, "layout section '%s' has an invalid pattern", name)
			}
		}
	}

	dynamic := map[string]StatesFolder{
		"aperture_group":           l.ApertureGroup,
		"aperture_group_interior":  l.ApertureGroupInterior,
		"dynamic_opaque":           l.DynamicOpaque,
		"dynamic_opaque_indoor":    l.DynamicOpaqueIndoor,
		"dynamic_nonopaque":        l.DynamicNonopaque,
		"dynamic_nonopaque_indoor": l.DynamicNonopaqueIndoor,
	}
	for name, sf := range dynamic {
		if sf.Path == "" || sf.States == "" {
			return errors.Errorf(
				"layout section '%s' must define both a path and a states file name", name)
		}
	}

	return nil
}
