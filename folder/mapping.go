package folder

import (
	"encoding/json"
	"os"
	"path"

	"github.com/pkg/errors"

	"github.com/radtools/radfolder/grids"
)

// StaticAperturesSentinel stands in for the static apertures wherever a
// light path or mapping entry needs an identifier for them.
const StaticAperturesSentinel = "__static_apertures__"

// threePhaseIdentifier names the single three-phase scene entry.
const threePhaseIdentifier = "__three_phase__"

// SceneMappingEntry lists the scene files that build the octree for one
// state of one light path.
type SceneMappingEntry struct {
	LightPath        string   `json:"light_path,omitempty"`
	Identifier       string   `json:"identifier"`
	SceneFiles       []string `json:"scene_files,omitempty"`
	SceneFilesDirect []string `json:"scene_files_direct,omitempty"`
}

// SceneMapping groups octree inputs by calculation phase. Aperture-group
// states without a transmission matrix are two-phase; states with one get a
// direct-only five-phase entry next to the shared three-phase scene.
type SceneMapping struct {
	TwoPhase   []SceneMappingEntry `json:"two_phase"`
	ThreePhase []SceneMappingEntry `json:"three_phase"`
	FivePhase  []SceneMappingEntry `json:"five_phase"`
}

// OctreeSceneMapping builds the scene mapping for the model and writes it
// to scene_mapping.json in the project folder.
func (m *Model) OctreeSceneMapping() (mapping SceneMapping, err error) {
	sceneFiles, err := m.SceneFiles(false, true)
	if err != nil {
		return
	}
	sceneFilesDirect, err := m.SceneFiles(true, true)
	if err != nil {
		return
	}
	apertureFiles, err := m.ApertureFiles(false, true)
	if err != nil {
		return
	}
	apertureFilesBlack, err := m.ApertureFiles(true, true)
	if err != nil {
		return
	}

	mapping.TwoPhase = []SceneMappingEntry{}
	mapping.ThreePhase = []SceneMappingEntry{}
	mapping.FivePhase = []SceneMappingEntry{}

	// static apertures form their own two-phase light path, with every
	// aperture group blacked out
	hasAperture, err := m.HasAperture()
	if err != nil {
		return
	}
	if hasAperture {
		groupsBlack := m.ApertureGroupFilesBlack(nil, true)
		mapping.TwoPhase = append(mapping.TwoPhase, SceneMappingEntry{
			LightPath:  StaticAperturesSentinel,
			Identifier: StaticAperturesSentinel,
			SceneFiles: concat(sceneFiles, apertureFiles, groupsBlack),
			SceneFilesDirect: concat(
				sceneFilesDirect, apertureFiles, groupsBlack),
		})
	}

	// one entry per aperture-group state; static apertures and the other
	// groups stay black while the state's own file is visible
	bucket := groupBucket{set: m.cache().apertureExterior, sub: m.layout.ApertureGroup.Path}
	for _, group := range bucket.set.Groups() {
		othersBlack := m.ApertureGroupFilesBlack([]string{group.Identifier}, true)
		for _, state := range group.States() {
			if state.Tmtx == "" {
				stateFile := m.resolve(bucket, []string{state.Default}, true)
				mapping.TwoPhase = append(mapping.TwoPhase, SceneMappingEntry{
					LightPath:  group.Identifier,
					Identifier: state.Identifier,
					SceneFiles: concat(
						sceneFiles, apertureFilesBlack, stateFile, othersBlack),
					SceneFilesDirect: concat(
						sceneFilesDirect, apertureFilesBlack, stateFile, othersBlack),
				})
				continue
			}

			stateFile := m.resolve(bucket, []string{state.DirectOrDefault()}, true)
			mapping.FivePhase = append(mapping.FivePhase, SceneMappingEntry{
				LightPath:  group.Identifier,
				Identifier: state.Identifier,
				SceneFilesDirect: concat(
					sceneFilesDirect, apertureFilesBlack, stateFile, othersBlack),
			})
		}
	}

	mapping.ThreePhase = append(mapping.ThreePhase, SceneMappingEntry{
		Identifier:       threePhaseIdentifier,
		SceneFiles:       concat(sceneFiles, apertureFiles),
		SceneFilesDirect: concat(sceneFilesDirect, apertureFilesBlack),
	})

	err = m.writeMappingFile("scene_mapping.json", mapping)
	return
}

// GridMappingEntry lists the sensor grids served by one light path.
type GridMappingEntry struct {
	Identifier string       `json:"identifier"`
	Grids      []grids.Info `json:"grid"`
}

// GridMapping groups sensor grids by calculation phase. Grids lit through
// groups without a transmission matrix are two-phase, the rest three-phase;
// five-phase mirrors three-phase.
type GridMapping struct {
	TwoPhase   []GridMappingEntry `json:"two_phase"`
	ThreePhase []GridMappingEntry `json:"three_phase"`
	FivePhase  []GridMappingEntry `json:"five_phase"`
}

// GridMapping builds the grid mapping from the grid information file and
// writes it to grid_mapping.json in the project folder.
func (m *Model) GridMapping() (mapping GridMapping, err error) {
	info, err := grids.ReadInfo(path.Join(m.GridFolder(true), "_info.json"))
	if err != nil {
		return
	}

	mtxGroups := map[string]bool{}
	nonMtxGroups := map[string]bool{}
	for _, group := range m.cache().apertureExterior.Groups() {
		if group.HasTransmissionMatrix() {
			mtxGroups[group.Identifier] = true
		} else {
			nonMtxGroups[group.Identifier] = true
		}
	}

	twoPhase := newGridBuckets()
	threePhase := newGridBuckets()

	for _, grid := range info {
		for _, lightPath := range grid.GroupIdentifiers() {
			switch {
			case nonMtxGroups[lightPath]:
				twoPhase.add(lightPath, grid)
			case mtxGroups[lightPath]:
				threePhase.add(lightPath, grid)
			default:
				// anything else resolves to the static apertures
				twoPhase.add(StaticAperturesSentinel, grid)
			}
		}
	}

	mapping.TwoPhase = twoPhase.entries()
	mapping.ThreePhase = threePhase.entries()
	mapping.FivePhase = threePhase.entries()

	err = m.writeMappingFile("grid_mapping.json", mapping)
	return
}

// gridBuckets accumulates grids per light path, preserving first-seen order.
type gridBuckets struct {
	order  []string
	byPath map[string][]grids.Info
}

func newGridBuckets() *gridBuckets {
	return &gridBuckets{byPath: map[string][]grids.Info{}}
}

func (b *gridBuckets) add(lightPath string, grid grids.Info) {
	if _, ok := b.byPath[lightPath]; !ok {
		b.order = append(b.order, lightPath)
	}
	b.byPath[lightPath] = append(b.byPath[lightPath], grid)
}

func (b *gridBuckets) entries() []GridMappingEntry {
	entries := make([]GridMappingEntry, len(b.order))
	for i, lightPath := range b.order {
		entries[i] = GridMappingEntry{Identifier: lightPath, Grids: b.byPath[lightPath]}
	}
	return entries
}

func (m *Model) writeMappingFile(name string, mapping interface{}) error {
	contents, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", name)
	}
	file := path.Join(m.folder, name)
	if err := os.WriteFile(file, contents, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return nil
}

func concat(lists ...[]string) []string {
	var combined []string
	for _, list := range lists {
		combined = append(combined, list...)
	}
	return combined
}
