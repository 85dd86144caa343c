package states

import "fmt"

// Kind describes the geometry a dynamic group controls. Aperture groups
// participate in view and daylight matrix calculations; opaque and nonopaque
// groups are dynamic scene geometry.
type Kind int

const (
	KindAperture Kind = iota
	KindOpaque
	KindNonopaque
)

func (k Kind) String() string {
	switch k {
	case KindAperture:
		return "aperture"
	case KindOpaque:
		return "opaque"
	case KindNonopaque:
		return "nonopaque"
	}
	return "unknown"
}

// Group is an ordered collection of states under a shared identifier. Groups
// are constructed by Parse and read-only afterward; updating a group means
// re-parsing its manifest.
type Group struct {
	// Identifier is unique within its parent GroupSet.
	Identifier string
	// Kind and Interior classify the group. Interior apertures feed the view
	// matrix side of multi-phase studies, exterior ones the daylight side.
	Kind     Kind
	Interior bool

	states []State
}

// States returns the states exactly as declared in the manifest. Ordering is
// part of the contract: downstream simulation assigns per-state weighting
// coefficients positionally.
func (g *Group) States() []State {
	return g.states
}

// Files returns the geometry file per state, in state order. With direct set
// it prefers each state's direct file and falls back to the default file for
// states that declare none. The fallback is per-state, not all-or-nothing.
func (g *Group) Files(direct bool) []string {
	files := make([]string, len(g.states))
	for i, s := range g.states {
		if direct {
			files[i] = s.DirectOrDefault()
		} else {
			files[i] = s.Default
		}
	}
	return files
}

// DefaultFiles returns the default geometry file per state.
func (g *Group) DefaultFiles() []string {
	return g.Files(false)
}

// DirectFiles returns the direct geometry file per state, with per-state
// fallback to the default file.
func (g *Group) DirectFiles() []string {
	return g.Files(true)
}

// BlackFile returns the blackout file for the group. By convention every
// state of an aperture group shares one black file, so the first state's
// entry wins. Empty for groups without one.
func (g *Group) BlackFile() string {
	if len(g.states) == 0 {
		return ""
	}
	return g.states[0].Black
}

// HasTransmissionMatrix reports whether any state declares a tmtx file,
// which decides the group's calculation phase in scene and grid mapping.
func (g *Group) HasTransmissionMatrix() bool {
	for _, s := range g.states {
		if s.Tmtx != "" {
			return true
		}
	}
	return false
}

// IsAperture reports whether the group participates in matrix calculations.
func (g *Group) IsAperture() bool {
	return g.Kind == KindAperture
}

// IsInterior reports whether the group sits on the indoor side of the model.
func (g *Group) IsInterior() bool {
	return g.Interior
}

// Validate checks every referenced file through the supplied existence
// check. The first missing file is reported with group, state and path.
func (g *Group) Validate(exists func(path string) bool) error {
	for _, s := range g.states {
		if err := s.Validate(exists); err != nil {
			if missing, ok := err.(*MissingFileError); ok {
				missing.Group = g.Identifier
			}
			return err
		}
	}
	return nil
}

func (g *Group) String() string {
	return fmt.Sprintf("%s group: %s (%d states)", g.Kind, g.Identifier, len(g.states))
}
