package states

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// LightPathKey is the reserved top-level manifest key that carries the
// light-path structure for interior aperture manifests. It never names a
// group.
const LightPathKey = "light_path"

// GroupSet is the result of parsing one states manifest: the groups in
// declaration order plus, for interior aperture manifests, the light paths
// declared alongside them. A GroupSet is immutable; reloading a manifest
// produces a fresh set.
type GroupSet struct {
	kind     Kind
	interior bool

	order      []string
	groups     map[string]*Group
	lightPaths LightPaths
}

// Parse transforms decoded manifest content into a GroupSet. The manifest
// itself carries no kind marker, so the caller states what it describes.
//
// Every group value is either an array of state entries (preferred) or a
// legacy object keyed by stringified indices; the legacy form is normalized
// by sorting its numeric keys ascending before states are built. Duplicate
// group identifiers, empty state lists, non-object entries and entries
// without a 'default' file all fail with a SchemaError; no groups are
// returned in that case.
func Parse(raw []byte, kind Kind, interior bool) (*GroupSet, error) {
	members, err := decodeOrderedObject(raw)
	if err != nil {
		if dup, ok := err.(*duplicateKeyError); ok {
			return nil, schemaErrorf(dup.key, NoState, "duplicate group identifier")
		}
		return nil, &SchemaError{State: NoState, Reason: err.Error()}
	}

	set := &GroupSet{
		kind:     kind,
		interior: interior,
		groups:   map[string]*Group{},
	}

	for _, member := range members {
		if member.key == "" {
			return nil, schemaErrorf("", NoState, "group identifier must not be empty")
		}

		if member.key == LightPathKey {
			if kind != KindAperture || !interior {
				return nil, schemaErrorf(member.key, NoState,
					"light paths are only valid in interior aperture manifests")
			}
			set.lightPaths, err = parseLightPaths(member.raw)
			if err != nil {
				return nil, err
			}
			continue
		}

		group, err := parseGroup(member.key, member.raw, kind, interior)
		if err != nil {
			return nil, err
		}
		set.order = append(set.order, group.Identifier)
		set.groups[group.Identifier] = group
	}

	return set, nil
}

// ParseFile is a convenience wrapper for callers that already resolved the
// manifest path. A missing file yields an empty set so parsing can proceed
// against not-yet-materialized projects.
func ParseFile(read func(string) ([]byte, error), file string, kind Kind, interior bool) (*GroupSet, error) {
	raw, err := read(file)
	if err != nil {
		return &GroupSet{kind: kind, interior: interior, groups: map[string]*Group{}}, nil
	}
	set, err := Parse(raw, kind, interior)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse states from %s", file)
	}
	return set, nil
}

// Kind returns the kind the set was parsed with.
func (s *GroupSet) Kind() Kind {
	return s.kind
}

// Interior reports which side of the model the set describes.
func (s *GroupSet) Interior() bool {
	return s.interior
}

// Len returns the number of groups in the set.
func (s *GroupSet) Len() int {
	return len(s.order)
}

// Identifiers returns group identifiers in manifest declaration order.
func (s *GroupSet) Identifiers() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Groups returns the groups in manifest declaration order.
func (s *GroupSet) Groups() []*Group {
	groups := make([]*Group, len(s.order))
	for i, id := range s.order {
		groups[i] = s.groups[id]
	}
	return groups
}

// Group looks a group up by identifier.
func (s *GroupSet) Group(identifier string) (*Group, bool) {
	g, ok := s.groups[identifier]
	return g, ok
}

// LightPaths returns the light paths declared alongside an interior aperture
// manifest. Empty for every other manifest kind.
func (s *GroupSet) LightPaths() LightPaths {
	return s.lightPaths
}

// Validate runs the opt-in existence check over every group in the set.
func (s *GroupSet) Validate(exists func(path string) bool) error {
	for _, id := range s.order {
		if err := s.groups[id].Validate(exists); err != nil {
			return err
		}
	}
	return nil
}

func parseGroup(identifier string, raw json.RawMessage, kind Kind, interior bool) (*Group, error) {
	entries, err := normalizeStateList(identifier, raw)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, schemaErrorf(identifier, NoState, "group has no states")
	}

	group := &Group{Identifier: identifier, Kind: kind, Interior: interior}
	seen := map[string]bool{}
	for i, entry := range entries {
		var fields map[string]interface{}
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, schemaErrorf(identifier, i, "state entry must be an object")
		}
		state, err := StateFromEntry(identifier, fields, i)
		if err != nil {
			return nil, err
		}
		if seen[state.Identifier] {
			return nil, schemaErrorf(identifier, i,
				"duplicate state identifier '%s'", state.Identifier)
		}
		seen[state.Identifier] = true
		group.states = append(group.states, state)
	}
	return group, nil
}

// normalizeStateList accepts both manifest forms for a group value and
// always hands back an ordered list of raw entries. The two forms never
// leak past this point.
func normalizeStateList(group string, raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, schemaErrorf(group, NoState, "group value must not be empty")
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, schemaErrorf(group, NoState, "failed to decode state list: %v", err)
		}
		return entries, nil

	case '{':
		members, err := decodeOrderedObject(raw)
		if err != nil {
			if dup, ok := err.(*duplicateKeyError); ok {
				return nil, schemaErrorf(group, NoState,
					"duplicate state index '%s'", dup.key)
			}
			return nil, schemaErrorf(group, NoState, "failed to decode state map: %v", err)
		}
		type indexed struct {
			index int
			raw   json.RawMessage
		}
		ordered := make([]indexed, 0, len(members))
		for _, member := range members {
			index, err := strconv.Atoi(member.key)
			if err != nil || index < 0 {
				return nil, schemaErrorf(group, NoState,
					"state key '%s' is not a sequence index", member.key)
			}
			ordered = append(ordered, indexed{index: index, raw: member.raw})
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].index < ordered[j].index
		})
		entries := make([]json.RawMessage, len(ordered))
		for i, member := range ordered {
			entries[i] = member.raw
		}
		return entries, nil
	}

	return nil, schemaErrorf(group, NoState,
		"group value must be an array of states or an index-keyed object")
}

type objectMember struct {
	key string
	raw json.RawMessage
}

type duplicateKeyError struct {
	key string
}

func (e *duplicateKeyError) Error() string {
	return "duplicate key '" + e.key + "'"
}

// decodeOrderedObject walks a JSON object token by token so that key
// declaration order survives and duplicate keys surface as errors instead
// of silently overwriting each other.
func decodeOrderedObject(raw []byte) ([]objectMember, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode manifest")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level value must be an object")
	}

	var members []objectMember
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode manifest")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key must be a string")
		}
		if seen[key] {
			return nil, &duplicateKeyError{key: key}
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "failed to decode value of '%s'", key)
		}
		members = append(members, objectMember{key: key, raw: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "failed to decode manifest")
	}

	return members, nil
}
