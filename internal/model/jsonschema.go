package model

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

var nullDefault = json.RawMessage("null")

// ScopeSchema returns the JSON Schema of one research scope. Every property
// is a nullable string defaulting to null and carrying its description;
// undeclared properties are rejected.
func ScopeSchema(scope Scope) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema)
	var order []string
	for _, f := range fieldRegistry.ByScope(scope) {
		order = append(order, f.Key)
		props[f.Key] = &jsonschema.Schema{
			Types:       []string{"string", "null"},
			Description: f.Description,
			Default:     nullDefault,
		}
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          scope.Description(),
		Properties:           props,
		PropertyOrder:        order,
		AdditionalProperties: falseSchema(),
	}
}

// JSONSchema returns the JSON Schema of the whole checklist.
func JSONSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(Scopes))
	order := make([]string, 0, len(Scopes))
	for _, scope := range Scopes {
		order = append(order, string(scope))
		props[string(scope)] = ScopeSchema(scope)
	}
	return &jsonschema.Schema{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		Title:                aggregateName,
		Type:                 "object",
		Description:          ResearchScopesDescription,
		Properties:           props,
		PropertyOrder:        order,
		AdditionalProperties: falseSchema(),
	}
}

// falseSchema matches nothing, the equivalent of `false`.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
