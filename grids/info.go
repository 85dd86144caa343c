// Package grids reads the sensor-grid information files that ride along a
// Radiance model folder. Grid info ties sensor grids to the light paths used
// when mapping grids onto calculation phases.
package grids

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Info is one sensor grid's entry in a grid _info.json file.
type Info struct {
	Identifier string `json:"identifier"`
	FullID     string `json:"full_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Count      int    `json:"count"`
	// StartLine is only present in model grid info files written after a
	// simulation run.
	StartLine *int `json:"start_ln,omitempty"`
	// LightPath holds one ordered segment chain per entry. The first
	// identifier of each chain names the aperture group (or static aperture
	// sentinel) light enters through.
	LightPath [][]string `json:"light_path,omitempty"`
}

// GroupIdentifiers returns the leading identifier of every light-path chain
// declared for the grid. Empty when the grid has no light path.
func (i Info) GroupIdentifiers() []string {
	ids := make([]string, 0, len(i.LightPath))
	for _, chain := range i.LightPath {
		if len(chain) == 0 {
			continue
		}
		ids = append(ids, chain[0])
	}
	return ids
}

// ReadInfo parses a grid information file. A missing file yields an empty
// list so callers can treat grids as optional.
func ReadInfo(file string) ([]Info, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read grid info from %s", file)
	}

	var info []Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal grid info from %s", file)
	}
	return info, nil
}
