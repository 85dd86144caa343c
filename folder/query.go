package folder

import (
	"path"

	"github.com/pkg/errors"

	"github.com/radtools/radfolder/states"
	"github.com/radtools/radfolder/util"
)

// ApertureGroups returns the dynamic aperture groups on one side of the
// model, in manifest declaration order.
func (m *Model) ApertureGroups(interior bool) []*states.Group {
	if interior {
		return m.cache().apertureInterior.Groups()
	}
	return m.cache().apertureExterior.Groups()
}

// NonApertureGroups returns the dynamic scene groups on one side of the
// model, opaque groups first, each in manifest declaration order.
func (m *Model) NonApertureGroups(interior bool) []*states.Group {
	cache := m.cache()
	if interior {
		return append(cache.opaqueIndoor.Groups(), cache.nonopaqueIndoor.Groups()...)
	}
	return append(cache.opaqueOutdoor.Groups(), cache.nonopaqueOutdoor.Groups()...)
}

// HasDynamicAperture reports whether any aperture group is declared on
// either side of the model.
func (m *Model) HasDynamicAperture() bool {
	cache := m.cache()
	return cache.apertureExterior.Len() > 0 || cache.apertureInterior.Len() > 0
}

// HasDynamicNonAperture reports whether any dynamic scene group is declared.
func (m *Model) HasDynamicNonAperture() bool {
	cache := m.cache()
	return cache.opaqueOutdoor.Len() > 0 || cache.opaqueIndoor.Len() > 0 ||
		cache.nonopaqueOutdoor.Len() > 0 || cache.nonopaqueIndoor.Len() > 0
}

// LightPaths returns the light paths declared alongside the interior
// aperture groups, keyed by sensor-grid identifier.
func (m *Model) LightPaths() states.LightPaths {
	return m.cache().apertureInterior.LightPaths()
}

// groupBucket ties a parsed group set to the folder its file paths are
// relative to.
type groupBucket struct {
	set *states.GroupSet
	sub string
}

func (m *Model) buckets() []groupBucket {
	cache := m.cache()
	return []groupBucket{
		{cache.apertureExterior, m.layout.ApertureGroup.Path},
		{cache.apertureInterior, m.layout.ApertureGroupInterior.Path},
		{cache.opaqueOutdoor, m.layout.DynamicOpaque.Path},
		{cache.opaqueIndoor, m.layout.DynamicOpaqueIndoor.Path},
		{cache.nonopaqueOutdoor, m.layout.DynamicNonopaque.Path},
		{cache.nonopaqueIndoor, m.layout.DynamicNonopaqueIndoor.Path},
	}
}

// resolve turns manifest-relative file names into project-relative or full
// paths under the bucket's folder.
func (m *Model) resolve(bucket groupBucket, files []string, relPath bool) []string {
	resolved := make([]string, len(files))
	for i, f := range files {
		full := path.Join(m.subFolder(bucket.sub, true), f)
		resolved[i] = m.relTo(full, relPath)
	}
	return resolved
}

// ViewMatrixFiles returns the files relevant to view matrix calculation:
// every interior dynamic group's default files plus the static indoor
// scene. Exterior-only dynamic groups are excluded.
func (m *Model) ViewMatrixFiles() ([]string, error) {
	files, err := m.SceneFilesIndoor(false, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect static indoor files")
	}
	for _, bucket := range m.buckets() {
		if !bucket.set.Interior() {
			continue
		}
		for _, group := range bucket.set.Groups() {
			files = append(files, m.resolve(bucket, group.DefaultFiles(), true)...)
		}
	}
	return files, nil
}

// DaylightMatrixFiles returns the files relevant to daylight matrix
// calculation: every exterior dynamic group's default files plus the static
// outdoor scene. Indoor-only dynamic groups are excluded.
func (m *Model) DaylightMatrixFiles() ([]string, error) {
	files, err := m.SceneFilesOutdoor(false, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect static outdoor files")
	}
	for _, bucket := range m.buckets() {
		if bucket.set.Interior() {
			continue
		}
		for _, group := range bucket.set.Groups() {
			files = append(files, m.resolve(bucket, group.DefaultFiles(), true)...)
		}
	}
	return files, nil
}

// BlackOutSelection returns the per-group geometry files a study should
// load. For plain direct studies every group contributes its direct files.
// Isolation studies override that for apertures: isolating one aperture
// needs every other aperture in its normal default state, so only the
// opaque dynamic scene is blacked out, even when directStudy is set.
func (m *Model) BlackOutSelection(directStudy, isolationStudy bool) []string {
	var files []string
	for _, bucket := range m.buckets() {
		for _, group := range bucket.set.Groups() {
			direct := directStudy
			if isolationStudy {
				direct = group.Kind == states.KindOpaque
			}
			files = append(files, m.resolve(bucket, group.Files(direct), true)...)
		}
	}
	return files
}

// ApertureGroupFilesBlack returns the blackout file of every exterior
// aperture group not named in exclude. Isolation studies use this to black
// every group but the one under study.
func (m *Model) ApertureGroupFilesBlack(exclude []string, relPath bool) []string {
	excluded := map[string]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	cache := m.cache()
	var files []string
	for _, group := range cache.apertureExterior.Groups() {
		if excluded[group.Identifier] {
			continue
		}
		black := group.BlackFile()
		if black == "" {
			continue
		}
		full := path.Join(m.ApertureGroupFolder(true, false), black)
		files = append(files, m.relTo(full, relPath))
	}
	return files
}

// Validate runs the opt-in existence checks over every dynamic group: state
// files under their manifest folder, tmtx files under the bsdf folder, and
// light-path references against the declared aperture groups.
func (m *Model) Validate() error {
	cache := m.cache()

	for _, bucket := range m.buckets() {
		root := m.subFolder(bucket.sub, true)
		exists := func(rel string) bool {
			return util.IsFile(path.Join(root, rel))
		}
		if err := bucket.set.Validate(exists); err != nil {
			return err
		}

		for _, group := range bucket.set.Groups() {
			for _, state := range group.States() {
				if state.Tmtx == "" {
					continue
				}
				if !util.IsFile(path.Join(m.BSDFFolder(true), state.Tmtx)) {
					return &states.MissingFileError{
						Group: group.Identifier,
						State: state.Identifier,
						Path:  state.Tmtx,
					}
				}
			}
		}
	}

	isAperture := func(id string) bool {
		if _, ok := cache.apertureExterior.Group(id); ok {
			return true
		}
		_, ok := cache.apertureInterior.Group(id)
		return ok
	}
	return m.LightPaths().Validate(isAperture)
}
