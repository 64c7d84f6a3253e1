// internal/common/validation/criterion.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"community-assist/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// criterionSchemas holds one JSON schema per criterion type. A criterion
// value that fails its schema is malformed catalog data: the owning program
// is skipped with a recorded reason, the rest of the batch still scores.
var criterionSchemas = map[models.CriterionType]map[string]interface{}{
	models.CriterionIncome: {
		"type": "object",
		"properties": map[string]interface{}{
			"fpl_percentage": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
				"maximum": 500,
			},
		},
		"additionalProperties": false,
	},
	models.CriterionHousehold: {
		"type": "object",
		"properties": map[string]interface{}{
			"has_children": map[string]interface{}{"type": "boolean"},
			"min_size":     map[string]interface{}{"type": "integer", "minimum": 1},
			"max_size":     map[string]interface{}{"type": "integer", "minimum": 1},
		},
		"additionalProperties": false,
	},
	models.CriterionCategorical: {
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"elderly", "veteran", "disabled", "pregnant"},
			},
			"min_age": map[string]interface{}{"type": "integer", "minimum": 0},
		},
		"additionalProperties": false,
	},
	models.CriterionGeographic: {
		"type": "object",
		"properties": map[string]interface{}{
			"counties": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"states": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"additionalProperties": false,
	},
	models.CriterionSituational: {
		"type": "object",
		"properties": map[string]interface{}{
			"situations": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string"},
				"minItems": 1,
			},
		},
		"required":             []interface{}{"situations"},
		"additionalProperties": false,
	},
}

// ValidateCriterion checks a criterion's structured value against the
// schema for its type. An empty value is treated as an empty object.
func ValidateCriterion(c models.EligibilityCriterion) error {
	schema, ok := criterionSchemas[c.Type]
	if !ok {
		return fmt.Errorf("unknown criterion type %q", c.Type)
	}

	value := c.Value
	if len(value) == 0 {
		value = json.RawMessage(`{}`)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(value)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("criterion value is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("criterion value failed schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
