package model

import "strings"

// FieldSpec describes one optional-text attribute of a research scope.
// Every attribute defaults to absent; Description tells whatever process
// populates the field what belongs in it.
type FieldSpec struct {
	Key         string `json:"key"`
	Scope       Scope  `json:"scope"`
	Description string `json:"description"`
}

// Path returns the dotted address of the field inside ResearchScopes,
// e.g. "regulation.frameworks".
func (f FieldSpec) Path() string {
	return string(f.Scope) + "." + f.Key
}

// researchField builds the spec for an optional text attribute. The
// description is mandatory; a missing one is a definition error and
// aborts schema construction.
func researchField(key, description string) FieldSpec {
	if strings.TrimSpace(key) == "" {
		panic("model: research field declared without a key")
	}
	if strings.TrimSpace(description) == "" {
		panic("model: research field " + key + " declared without a description")
	}
	return FieldSpec{Key: key, Description: description}
}

// FieldRegistry is an indexed collection of research field specs.
type FieldRegistry struct {
	Fields  []FieldSpec
	byPath  map[string]*FieldSpec
	byScope map[Scope][]FieldSpec
}

// NewFieldRegistry creates a FieldRegistry with indexed lookups.
func NewFieldRegistry(fields []FieldSpec) *FieldRegistry {
	r := &FieldRegistry{
		Fields:  fields,
		byPath:  make(map[string]*FieldSpec, len(fields)),
		byScope: make(map[Scope][]FieldSpec),
	}
	for i := range r.Fields {
		f := &r.Fields[i]
		r.byPath[f.Path()] = f
		r.byScope[f.Scope] = append(r.byScope[f.Scope], *f)
	}
	return r
}

// ByKey returns the field spec for a dotted path ("scope.key"), or nil if
// not found.
func (r *FieldRegistry) ByKey(path string) *FieldSpec {
	return r.byPath[path]
}

// ByScope returns the field specs of one scope in declaration order.
func (r *FieldRegistry) ByScope(scope Scope) []FieldSpec {
	return r.byScope[scope]
}

// Len returns the number of registered fields.
func (r *FieldRegistry) Len() int {
	return len(r.Fields)
}

var fieldRegistry = NewFieldRegistry(concatFields(
	regulationSchema.fields,
	societalSchema.fields,
	stakeholderSchema.fields,
	industrySchema.fields,
))

// Fields returns the registry of every research field across all scopes.
func Fields() *FieldRegistry {
	return fieldRegistry
}

func concatFields(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
