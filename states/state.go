package states

import (
	"fmt"
	"path"
	"strings"
)

// Matrix phase tags used as keys in State.MatrixPaths.
const (
	PhaseView         = "vmtx"
	PhaseDaylight     = "dmtx"
	PhaseTransmission = "tmtx"
)

// State is one configuration of a dynamic group. It points to the geometry
// file used for normal calculations and, optionally, to a variant used for
// direct sunlight studies plus precomputed matrix files for multi-phase
// simulation. States are immutable once constructed.
type State struct {
	// Identifier is unique within the owning group. When the manifest entry
	// carries no name, a deterministic identifier is generated from the
	// entry's position so repeated parses always agree.
	Identifier string `json:"name"`
	// Default is the geometry file for normal representation, relative to
	// the folder that holds the manifest.
	Default string `json:"default"`
	// Direct is the geometry file for direct studies, often a blacked-out
	// variant. Optional; Default is the per-state fallback.
	Direct string `json:"direct,omitempty"`
	// Black is the file that blacks out the whole aperture. Aperture states only.
	Black string `json:"black,omitempty"`
	// Vmtx, Dmtx and Tmtx are precomputed matrix files for view, daylight
	// and transmission phases. Aperture states only. Tmtx resolves under the
	// bsdf folder, not next to the manifest.
	Vmtx string `json:"vmtx,omitempty"`
	Dmtx string `json:"dmtx,omitempty"`
	Tmtx string `json:"tmtx,omitempty"`
}

// StateFromEntry builds a State from a raw manifest entry. The entry must
// carry a 'default' key. A missing 'name' derives an identifier from index.
func StateFromEntry(group string, entry map[string]interface{}, index int) (s State, err error) {
	get := func(key string) (string, error) {
		raw, ok := entry[key]
		if !ok {
			return "", nil
		}
		value, ok := raw.(string)
		if !ok {
			return "", schemaErrorf(group, index, "'%s' must be a string", key)
		}
		return value, nil
	}

	name, err := get("name")
	if err != nil {
		return
	}
	if name == "" {
		name = fmt.Sprintf("state_%02d", index)
	}

	def, err := get("default")
	if err != nil {
		return
	}
	if _, ok := entry["default"]; !ok {
		err = schemaErrorf(group, index, "missing required 'default' file")
		return
	}
	if def == "" {
		err = schemaErrorf(group, index, "'default' file must not be empty")
		return
	}

	s = State{Identifier: name, Default: normPath(def)}

	for key, target := range map[string]*string{
		"direct": &s.Direct,
		"black":  &s.Black,
		"vmtx":   &s.Vmtx,
		"dmtx":   &s.Dmtx,
	} {
		value, getErr := get(key)
		if getErr != nil {
			err = getErr
			return
		}
		if value != "" {
			*target = normPath(value)
		}
	}

	// tmtx is a bare file name under the bsdf folder, never a relative path
	tmtx, err := get("tmtx")
	if err != nil {
		return
	}
	s.Tmtx = tmtx

	return s, nil
}

// MatrixPaths returns the matrix files declared for this state keyed by
// phase tag. Phases without a file are absent from the map.
func (s State) MatrixPaths() map[string]string {
	paths := map[string]string{}
	if s.Vmtx != "" {
		paths[PhaseView] = s.Vmtx
	}
	if s.Dmtx != "" {
		paths[PhaseDaylight] = s.Dmtx
	}
	if s.Tmtx != "" {
		paths[PhaseTransmission] = s.Tmtx
	}
	return paths
}

// DirectOrDefault returns the direct file when one is declared and falls
// back to the default file otherwise.
func (s State) DirectOrDefault() string {
	if s.Direct != "" {
		return s.Direct
	}
	return s.Default
}

// Validate checks that every file the state refers to exists. The existence
// check is supplied by the caller so validation never owns disk access. The
// tmtx file is excluded here as it resolves under a different root.
func (s State) Validate(exists func(path string) bool) error {
	for _, p := range []string{s.Default, s.Direct, s.Black, s.Vmtx, s.Dmtx} {
		if p == "" {
			continue
		}
		if !exists(p) {
			return &MissingFileError{State: s.Identifier, Path: p}
		}
	}
	return nil
}

func (s State) String() string {
	return fmt.Sprintf("State: %s", s.Identifier)
}

// normPath cleans a manifest path, dropping leading './' segments the way
// the documentation samples write them.
func normPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
