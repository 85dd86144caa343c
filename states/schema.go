package states

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema describes the accepted shape of a states manifest: group
// identifiers mapping to either an array of state entries or an index-keyed
// object, plus the reserved light_path structure.
const manifestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"propertyNames": {"minLength": 1},
	"properties": {
		"light_path": {
			"type": "object",
			"additionalProperties": {
				"oneOf": [
					{"type": "array", "minItems": 1, "items": {"type": "string"}},
					{
						"type": "object",
						"minProperties": 1,
						"propertyNames": {"pattern": "^[0-9]+$"},
						"additionalProperties": {"type": "string"}
					}
				]
			}
		}
	},
	"additionalProperties": {
		"oneOf": [
			{"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/state"}},
			{
				"type": "object",
				"minProperties": 1,
				"propertyNames": {"pattern": "^[0-9]+$"},
				"additionalProperties": {"$ref": "#/definitions/state"}
			}
		]
	},
	"definitions": {
		"state": {
			"type": "object",
			"required": ["default"],
			"properties": {
				"name": {"type": "string"},
				"default": {"type": "string", "minLength": 1},
				"direct": {"type": "string"},
				"black": {"type": "string"},
				"vmtx": {"type": "string"},
				"dmtx": {"type": "string"},
				"tmtx": {"type": "string"}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidateDocument checks raw manifest content against the states schema
// before any structural parsing. It catches shape problems with better
// positional messages than the parser's own checks, but the parser does not
// rely on it having run.
func ValidateDocument(raw []byte) error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(
			"states.schema.json", strings.NewReader(manifestSchema)); err != nil {
			schemaErr = errors.Wrap(err, "failed to load states schema")
			return
		}
		compiledSchema, schemaErr = compiler.Compile("states.schema.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "failed to decode states manifest")
	}

	if err := compiledSchema.Validate(doc); err != nil {
		return errors.Wrap(err, "states manifest does not match schema")
	}
	return nil
}
