package folder

import (
	"os"
	"path"
	"regexp"
	"sort"

	"github.com/pkg/errors"

	"github.com/radtools/radfolder/util"
)

// findFiles lists the files directly inside a model subfolder whose names
// match pattern. A subfolder that does not exist yields no files, so
// partially materialized projects query cleanly. Results are sorted by name
// for deterministic output.
func (m *Model) findFiles(sub, pattern string, relPath bool) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid file pattern for %s", sub)
	}

	dir := m.subFolder(sub, true)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list files in %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !re.MatchString(entry.Name()) {
			continue
		}
		files = append(files, m.relTo(path.Join(dir, entry.Name()), relPath))
	}
	sort.Strings(files)
	return files, nil
}

// matchFiles pairs modifier files with geometry files of the same stem,
// modifier first, the way Radiance expects them on an octree command line.
// A geometry file without a matching modifier is an error.
func matchFiles(modifiers, geometries []string) ([]string, error) {
	stems := map[string]string{}
	for _, mod := range modifiers {
		stems[util.TrimExt(mod)] = mod
	}

	combined := make([]string, 0, len(geometries)*2)
	for _, geo := range geometries {
		mod, ok := stems[util.TrimExt(geo)]
		if !ok {
			return nil, errors.Errorf("failed to find matching modifier for %s", geo)
		}
		combined = append(combined, mod, geo)
	}
	return combined, nil
}

func (m *Model) patternFiles(pf PatternFolder, sub string, blackOut, relPath bool) ([]string, error) {
	geometries, err := m.findFiles(sub, pf.GeoPattern, relPath)
	if err != nil {
		return nil, err
	}

	pattern := pf.ModPattern
	if blackOut {
		pattern = pf.BlkPattern
	}
	modifiers, err := m.findFiles(sub, pattern, relPath)
	if err != nil {
		return nil, err
	}

	return matchFiles(modifiers, geometries)
}

// ApertureFiles returns geometry and modifier files for static apertures.
// Set blackOut for isolation studies of aperture groups, which need the
// static apertures blacked.
func (m *Model) ApertureFiles(blackOut, relPath bool) ([]string, error) {
	return m.patternFiles(
		m.layout.StaticAperture, m.layout.StaticAperture.Path, blackOut, relPath)
}

type sceneSection struct {
	pf  PatternFolder
	sub string
}

// sceneSections returns every folder static scene files may live in: the
// opaque and nonopaque roots plus their indoor and outdoor subfolders.
func (m *Model) sceneSections() []sceneSection {
	var sections []sceneSection
	for _, pf := range []PatternFolder{m.layout.StaticOpaque, m.layout.StaticNonopaque} {
		for _, sub := range []string{
			pf.Path,
			path.Join(pf.Path, m.layout.Indoor),
			path.Join(pf.Path, m.layout.Outdoor),
		} {
			sections = append(sections, sceneSection{pf: pf, sub: sub})
		}
	}
	return sections
}

func (m *Model) sceneFilesFiltered(blackOut, relPath bool, keep func(sub string) bool) ([]string, error) {
	var files []string
	for _, section := range m.sceneSections() {
		if !keep(section.sub) {
			continue
		}
		matched, err := m.patternFiles(section.pf, section.sub, blackOut, relPath)
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}
	return files, nil
}

// SceneFiles returns geometry and modifier files for the whole static
// scene. Set blackOut for direct sunlight studies.
func (m *Model) SceneFiles(blackOut, relPath bool) ([]string, error) {
	return m.sceneFilesFiltered(blackOut, relPath, func(string) bool { return true })
}

// SceneFilesIndoor returns the static scene files on the indoor side only,
// the set that joins interior dynamic groups in view matrix calculation.
func (m *Model) SceneFilesIndoor(blackOut, relPath bool) ([]string, error) {
	return m.sceneFilesFiltered(blackOut, relPath, func(sub string) bool {
		return path.Base(sub) == m.layout.Indoor
	})
}

// SceneFilesOutdoor returns the static scene files outside the indoor
// subfolders, the set that joins exterior dynamic groups in daylight matrix
// calculation.
func (m *Model) SceneFilesOutdoor(blackOut, relPath bool) ([]string, error) {
	return m.sceneFilesFiltered(blackOut, relPath, func(sub string) bool {
		return path.Base(sub) != m.layout.Indoor
	})
}

// GridFiles returns the sensor grid files.
func (m *Model) GridFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.Grid.Path, m.layout.Grid.Pattern, relPath)
}

// GridInfoFiles returns the sensor grid information files.
func (m *Model) GridInfoFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.Grid.Path, m.layout.Grid.InfoPattern, relPath)
}

// ViewFiles returns the view files.
func (m *Model) ViewFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.View.Path, m.layout.View.Pattern, relPath)
}

// ViewInfoFiles returns the view information files.
func (m *Model) ViewInfoFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.View.Path, m.layout.View.InfoPattern, relPath)
}

// BSDFFiles returns in-model BSDF and transmittance matrix files.
func (m *Model) BSDFFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.BSDF.Path, m.layout.BSDF.Pattern, relPath)
}

// IESFiles returns electric lighting description files.
func (m *Model) IESFiles(relPath bool) ([]string, error) {
	return m.findFiles(m.layout.IES.Path, m.layout.IES.Pattern, relPath)
}

// HasAperture reports whether the model has at least one static aperture.
func (m *Model) HasAperture() (bool, error) {
	files, err := m.ApertureFiles(false, true)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}
