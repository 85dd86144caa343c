package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFromEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   map[string]interface{}
		index   int
		want    State
		wantErr bool
	}{
		{"named state",
			map[string]interface{}{"name": "0_clear", "default": "w.rad"},
			0,
			State{Identifier: "0_clear", Default: "w.rad"},
			false},
		{"generated identifier",
			map[string]interface{}{"default": "w.rad"},
			3,
			State{Identifier: "state_03", Default: "w.rad"},
			false},
		{"path normalization",
			map[string]interface{}{
				"name":    "0_clear",
				"default": "./w..default..000.rad",
				"direct":  "./w..direct..000.rad",
			},
			0,
			State{
				Identifier: "0_clear",
				Default:    "w..default..000.rad",
				Direct:     "w..direct..000.rad",
			},
			false},
		{"tmtx kept verbatim",
			map[string]interface{}{"default": "w.rad", "tmtx": "clear.xml"},
			0,
			State{Identifier: "state_00", Default: "w.rad", Tmtx: "clear.xml"},
			false},
		{"missing default",
			map[string]interface{}{"name": "0_clear"},
			0, State{}, true},
		{"default not a string",
			map[string]interface{}{"default": 42.0},
			0, State{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StateFromEntry("g", tt.entry, tt.index)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateValidate(t *testing.T) {
	s := State{
		Identifier: "0_clear",
		Default:    "w.default.rad",
		Direct:     "w.direct.rad",
	}

	assert.NoError(t, s.Validate(func(string) bool { return true }))

	err := s.Validate(func(p string) bool { return p == "w.default.rad" })
	assert.Error(t, err)
	missing, ok := err.(*MissingFileError)
	if assert.True(t, ok) {
		assert.Equal(t, "0_clear", missing.State)
		assert.Equal(t, "w.direct.rad", missing.Path)
	}
}

func TestStateValidateSkipsTmtx(t *testing.T) {
	// tmtx resolves under the bsdf folder so the state-level check must not
	// look for it next to the manifest
	s := State{Identifier: "0_clear", Default: "w.rad", Tmtx: "clear.xml"}
	assert.NoError(t, s.Validate(func(p string) bool { return p == "w.rad" }))
}
