package states

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// SkyToken terminates a light path: the last segment light passes through
// before (conceptually) reaching the sky.
const SkyToken = "sky"

// LightPaths maps a sensor-grid identifier to the ordered chain of aperture
// groups a ray passes through to reach that grid, terminating at SkyToken.
// Light paths ride along interior aperture manifests but are keyed by grid,
// not by aperture group, so they are kept apart from the groups themselves.
type LightPaths map[string][]string

// Path returns the ordered segments for a sensor grid.
func (lp LightPaths) Path(grid string) ([]string, bool) {
	segments, ok := lp[grid]
	return segments, ok
}

// Grids returns the sensor-grid identifiers with a declared light path,
// sorted for deterministic iteration.
func (lp LightPaths) Grids() []string {
	grids := make([]string, 0, len(lp))
	for grid := range lp {
		grids = append(grids, grid)
	}
	sort.Strings(grids)
	return grids
}

// Validate checks that every path segment names a declared aperture group
// or the sky token. The caller supplies the membership test so a light path
// may reference apertures from either side of the model.
func (lp LightPaths) Validate(isAperture func(identifier string) bool) error {
	for _, grid := range lp.Grids() {
		for _, segment := range lp[grid] {
			if segment == SkyToken {
				continue
			}
			if !isAperture(segment) {
				return schemaErrorf(LightPathKey, NoState,
					"light path for grid '%s' references undeclared aperture '%s'",
					grid, segment)
			}
		}
	}
	return nil
}

// parseLightPaths decodes the light-path structure, accepting the same two
// forms as state lists: an array of segment strings per grid or a legacy
// object keyed by stringified indices.
func parseLightPaths(raw json.RawMessage) (LightPaths, error) {
	members, err := decodeOrderedObject(raw)
	if err != nil {
		if dup, ok := err.(*duplicateKeyError); ok {
			return nil, schemaErrorf(LightPathKey, NoState,
				"duplicate grid identifier '%s'", dup.key)
		}
		return nil, schemaErrorf(LightPathKey, NoState, "failed to decode light paths: %v", err)
	}

	paths := LightPaths{}
	for _, member := range members {
		if member.key == "" {
			return nil, schemaErrorf(LightPathKey, NoState,
				"grid identifier must not be empty")
		}
		segments, err := normalizeSegments(member.key, member.raw)
		if err != nil {
			return nil, err
		}
		paths[member.key] = segments
	}
	return paths, nil
}

func normalizeSegments(grid string, raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, schemaErrorf(LightPathKey, NoState,
			"light path for grid '%s' must not be empty", grid)
	}

	switch trimmed[0] {
	case '[':
		var segments []string
		if err := json.Unmarshal(raw, &segments); err != nil {
			return nil, schemaErrorf(LightPathKey, NoState,
				"light path for grid '%s' must be a list of strings", grid)
		}
		return segments, nil

	case '{':
		members, err := decodeOrderedObject(raw)
		if err != nil {
			return nil, schemaErrorf(LightPathKey, NoState,
				"failed to decode light path for grid '%s': %v", grid, err)
		}
		type indexed struct {
			index   int
			segment string
		}
		ordered := make([]indexed, 0, len(members))
		for _, member := range members {
			index, err := strconv.Atoi(member.key)
			if err != nil || index < 0 {
				return nil, schemaErrorf(LightPathKey, NoState,
					"light path key '%s' for grid '%s' is not a sequence index",
					member.key, grid)
			}
			var segment string
			if err := json.Unmarshal(member.raw, &segment); err != nil {
				return nil, schemaErrorf(LightPathKey, NoState,
					"light path segment %d for grid '%s' must be a string", index, grid)
			}
			ordered = append(ordered, indexed{index: index, segment: segment})
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].index < ordered[j].index
		})
		segments := make([]string, len(ordered))
		for i, member := range ordered {
			segments[i] = member.segment
		}
		return segments, nil
	}

	return nil, schemaErrorf(LightPathKey, NoState,
		"light path for grid '%s' must be a list or an index-keyed object", grid)
}
