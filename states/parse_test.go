package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const treesArrayForm = `{
	"outdoor_trees": [
		{"name": "0_summer", "default": "trees.summer.000.rad", "direct": "trees.direct.000.rad"},
		{"name": "1_winter", "default": "trees.winter.001.rad", "direct": "trees.direct.001.rad"}
	]
}`

const treesIndexedForm = `{
	"outdoor_trees": {
		"1": {"name": "1_winter", "default": "trees.winter.001.rad", "direct": "trees.direct.001.rad"},
		"0": {"name": "0_summer", "default": "trees.summer.000.rad", "direct": "trees.direct.000.rad"}
	}
}`

func TestParseArrayForm(t *testing.T) {
	set, err := Parse([]byte(treesArrayForm), KindNonopaque, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"outdoor_trees"}, set.Identifiers())

	group, ok := set.Group("outdoor_trees")
	assert.True(t, ok)
	assert.False(t, group.IsAperture())
	assert.False(t, group.IsInterior())

	s := group.States()
	assert.Len(t, s, 2)
	assert.Equal(t, "0_summer", s[0].Identifier)
	assert.Equal(t, "trees.summer.000.rad", s[0].Default)
	assert.Equal(t, "1_winter", s[1].Identifier)
	assert.Equal(t, "trees.winter.001.rad", s[1].Default)
}

func TestParseLegacyFormEquivalence(t *testing.T) {
	fromArray, err := Parse([]byte(treesArrayForm), KindNonopaque, false)
	assert.NoError(t, err)
	fromIndexed, err := Parse([]byte(treesIndexedForm), KindNonopaque, false)
	assert.NoError(t, err)

	// indexed keys are declared out of order above; sorting them ascending
	// must recover the exact array-form group
	assert.Equal(t, fromArray, fromIndexed)
}

func TestParseIdempotence(t *testing.T) {
	first, err := Parse([]byte(treesArrayForm), KindOpaque, true)
	assert.NoError(t, err)
	second, err := Parse([]byte(treesArrayForm), KindOpaque, true)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseGeneratedIdentifiers(t *testing.T) {
	raw := `{"ground": [
		{"default": "ground.summer.rad"},
		{"default": "ground.winter.rad"}
	]}`

	set, err := Parse([]byte(raw), KindOpaque, false)
	assert.NoError(t, err)
	group, _ := set.Group("ground")
	assert.Equal(t, "state_00", group.States()[0].Identifier)
	assert.Equal(t, "state_01", group.States()[1].Identifier)

	// generation is deterministic across repeated parses
	again, err := Parse([]byte(raw), KindOpaque, false)
	assert.NoError(t, err)
	assert.Equal(t, set, again)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantGroup string
		wantState int
	}{
		{"missing default", `{"ground": [{"name": "0_bare"}]}`, "ground", 0},
		{"missing default second state",
			`{"ground": [{"default": "a.rad"}, {"name": "1_x"}]}`, "ground", 1},
		{"empty default", `{"ground": [{"default": ""}]}`, "ground", 0},
		{"empty state list", `{"ground": []}`, "ground", NoState},
		{"empty state map", `{"ground": {}}`, "ground", NoState},
		{"entry not an object", `{"ground": ["nope"]}`, "ground", 0},
		{"scalar group value", `{"ground": 12}`, "ground", NoState},
		{"non numeric state key", `{"ground": {"first": {"default": "a.rad"}}}`,
			"ground", NoState},
		{"duplicate state identifier",
			`{"ground": [{"name": "x", "default": "a.rad"}, {"name": "x", "default": "b.rad"}]}`,
			"ground", 1},
		{"duplicate group identifier",
			`{"ground": [{"default": "a.rad"}], "ground": [{"default": "b.rad"}]}`,
			"ground", NoState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse([]byte(tt.raw), KindOpaque, false)
			assert.Nil(t, set)
			assert.Error(t, err)

			schemaErr, ok := err.(*SchemaError)
			if assert.True(t, ok, "expected a SchemaError, got %T", err) {
				assert.Equal(t, tt.wantGroup, schemaErr.Group)
				assert.Equal(t, tt.wantState, schemaErr.State)
			}
		})
	}
}

func TestParseTopLevelShapeErrors(t *testing.T) {
	for _, raw := range []string{`[]`, `"states"`, `{`, ``} {
		set, err := Parse([]byte(raw), KindAperture, false)
		assert.Nil(t, set)
		assert.Error(t, err)
	}
}

func TestParseApertureStates(t *testing.T) {
	raw := `{
		"south_window": [
			{
				"name": "0_clear",
				"default": "./south_window..default..000.rad",
				"direct": "./south_window..direct..000.rad",
				"black": "./south_window..black.rad",
				"tmtx": "clear.xml",
				"vmtx": "./south_window..mtx.rad",
				"dmtx": "./south_window..mtx.rad"
			}
		]
	}`

	set, err := Parse([]byte(raw), KindAperture, false)
	assert.NoError(t, err)
	group, _ := set.Group("south_window")
	assert.True(t, group.IsAperture())
	assert.True(t, group.HasTransmissionMatrix())
	assert.Equal(t, "south_window..black.rad", group.BlackFile())

	s := group.States()[0]
	// leading ./ segments are dropped during normalization
	assert.Equal(t, "south_window..default..000.rad", s.Default)
	assert.Equal(t, map[string]string{
		PhaseView:         "south_window..mtx.rad",
		PhaseDaylight:     "south_window..mtx.rad",
		PhaseTransmission: "clear.xml",
	}, s.MatrixPaths())
}

func TestDirectFilesPerStateFallback(t *testing.T) {
	raw := `{"shades": [
		{"name": "0_up", "default": "shades.up.rad", "direct": "shades.up.blk.rad"},
		{"name": "1_down", "default": "shades.down.rad"}
	]}`

	set, err := Parse([]byte(raw), KindOpaque, false)
	assert.NoError(t, err)
	group, _ := set.Group("shades")

	assert.Equal(t, []string{"shades.up.rad", "shades.down.rad"}, group.Files(false))
	// fallback is per state: 1_down has no direct file so its default is used
	assert.Equal(t, []string{"shades.up.blk.rad", "shades.down.rad"}, group.Files(true))
}

func TestDirectFilesAllOrNone(t *testing.T) {
	allDirect := `{"g": [
		{"name": "a", "default": "a.rad", "direct": "a.blk.rad"},
		{"name": "b", "default": "b.rad", "direct": "b.blk.rad"}
	]}`
	set, err := Parse([]byte(allDirect), KindOpaque, false)
	assert.NoError(t, err)
	group, _ := set.Group("g")
	assert.Equal(t, []string{"a.blk.rad", "b.blk.rad"}, group.DirectFiles())

	noDirect := `{"g": [
		{"name": "a", "default": "a.rad"},
		{"name": "b", "default": "b.rad"}
	]}`
	set, err = Parse([]byte(noDirect), KindOpaque, false)
	assert.NoError(t, err)
	group, _ = set.Group("g")
	assert.Equal(t, group.DefaultFiles(), group.DirectFiles())
}

func TestParseLightPaths(t *testing.T) {
	raw := `{
		"skylight": [{"name": "0_open", "default": "skylight.rad"}],
		"light_path": {
			"room_1": ["skylight", "sky"],
			"room_2": {"1": "sky", "0": "skylight"}
		}
	}`

	set, err := Parse([]byte(raw), KindAperture, true)
	assert.NoError(t, err)
	assert.Equal(t, []string{"skylight"}, set.Identifiers())

	paths := set.LightPaths()
	assert.Equal(t, []string{"room_1", "room_2"}, paths.Grids())

	segments, ok := paths.Path("room_1")
	assert.True(t, ok)
	assert.Equal(t, []string{"skylight", "sky"}, segments)

	// indexed form recovers the same ordering as the array form
	segments, ok = paths.Path("room_2")
	assert.True(t, ok)
	assert.Equal(t, []string{"skylight", "sky"}, segments)

	assert.NoError(t, paths.Validate(func(id string) bool { return id == "skylight" }))

	err = paths.Validate(func(id string) bool { return false })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared aperture")
}

func TestParseLightPathsRejectedOutsideInteriorApertures(t *testing.T) {
	raw := `{
		"ground": [{"default": "ground.rad"}],
		"light_path": {"room": ["ground", "sky"]}
	}`

	for _, tt := range []struct {
		kind     Kind
		interior bool
	}{
		{KindAperture, false},
		{KindOpaque, true},
		{KindNonopaque, false},
	} {
		set, err := Parse([]byte(raw), tt.kind, tt.interior)
		assert.Nil(t, set)
		assert.Error(t, err)
	}
}

func TestGroupSetValidate(t *testing.T) {
	set, err := Parse([]byte(treesArrayForm), KindNonopaque, false)
	assert.NoError(t, err)

	present := map[string]bool{
		"trees.summer.000.rad": true,
		"trees.winter.001.rad": true,
		"trees.direct.000.rad": true,
		"trees.direct.001.rad": true,
	}
	assert.NoError(t, set.Validate(func(p string) bool { return present[p] }))

	delete(present, "trees.winter.001.rad")
	err = set.Validate(func(p string) bool { return present[p] })
	assert.Error(t, err)

	missing, ok := err.(*MissingFileError)
	if assert.True(t, ok) {
		assert.Equal(t, "outdoor_trees", missing.Group)
		assert.Equal(t, "1_winter", missing.State)
		assert.Equal(t, "trees.winter.001.rad", missing.Path)
	}
}

func TestParseFileMissingManifest(t *testing.T) {
	read := func(string) ([]byte, error) {
		return nil, assert.AnError
	}
	set, err := ParseFile(read, "states.json", KindAperture, false)
	assert.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Groups())
}
