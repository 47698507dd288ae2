package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/esg-research/internal/model"
)

// MetadataValidateResearchChecklist describes the validate_research_checklist tool.
var MetadataValidateResearchChecklist = &mcp.Tool{
	Name: "validate_research_checklist",
	Description: "Check a partial ESG research checklist against the schema. " +
		"Top-level keys are scopes, nested keys are attributes, values are strings or null. " +
		"Returns the normalized checklist with every attribute present (null when absent) " +
		"and per-scope progress, or the offending key when the checklist is rejected.",
}

// InputValidateResearchChecklist is the input for the ValidateResearchChecklist tool.
type InputValidateResearchChecklist struct {
	Checklist map[string]any `json:"checklist" jsonschema:"Partial checklist keyed by scope, then attribute."`
}

// Issue describes why a checklist was rejected.
type Issue struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// OutputValidateResearchChecklist is the output for the ValidateResearchChecklist tool.
type OutputValidateResearchChecklist struct {
	Valid bool `json:"valid"`
	// Issue is set when Valid is false.
	Issue *Issue `json:"issue,omitempty"`
	// Checklist is the normalized checklist when Valid is true.
	Checklist model.Document       `json:"checklist,omitempty"`
	Progress  []model.ScopeProgress `json:"progress,omitempty"`
	Complete  bool                  `json:"complete"`
}

// ValidateResearchChecklist validates and normalizes a checklist. Structural
// problems are reported in the output rather than as tool errors so the
// caller can correct the offending key.
func ValidateResearchChecklist(_ context.Context, _ *mcp.CallToolRequest, input InputValidateResearchChecklist) (*mcp.CallToolResult, OutputValidateResearchChecklist, error) {
	scopes, err := checklistFrom(input.Checklist)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return nil, OutputValidateResearchChecklist{
				Issue: &Issue{Key: ve.Key, Reason: ve.Reason(), Detail: ve.Detail},
			}, nil
		}
		return nil, OutputValidateResearchChecklist{}, err
	}

	return nil, OutputValidateResearchChecklist{
		Valid:     true,
		Checklist: scopes.Document(),
		Progress:  scopes.Progress(),
		Complete:  scopes.Complete(),
	}, nil
}

// MetadataSetResearchField describes the set_research_field tool.
var MetadataSetResearchField = &mcp.Tool{
	Name: "set_research_field",
	Description: "Record one attribute of the ESG research checklist and return the updated checklist. " +
		"Address the attribute by dotted path, e.g. regulation.frameworks or industry_forces.opportunity. " +
		"A null value marks the attribute absent.",
}

// InputSetResearchField is the input for the SetResearchField tool.
type InputSetResearchField struct {
	Checklist map[string]any `json:"checklist,omitempty" jsonschema:"Current checklist. Omit to start from an empty one."`
	Path      string         `json:"path" jsonschema:"Dotted attribute path: scope, a dot, then the attribute key."`
	Value     *string        `json:"value" jsonschema:"Text to record, or null to clear the attribute."`
}

// OutputSetResearchField is the output for the SetResearchField tool.
type OutputSetResearchField struct {
	Checklist model.Document `json:"checklist"`
	// Missing is the number of attributes still absent.
	Missing int `json:"missing"`
}

// SetResearchField writes a single attribute into a checklist.
func SetResearchField(_ context.Context, _ *mcp.CallToolRequest, input InputSetResearchField) (*mcp.CallToolResult, OutputSetResearchField, error) {
	if input.Path == "" {
		return nil, OutputSetResearchField{}, eris.New("tool: path is required")
	}
	scopes, err := checklistFrom(input.Checklist)
	if err != nil {
		return nil, OutputSetResearchField{}, err
	}
	if err := scopes.Set(input.Path, input.Value); err != nil {
		return nil, OutputSetResearchField{}, err
	}
	return nil, OutputSetResearchField{
		Checklist: scopes.Document(),
		Missing:   len(scopes.Missing()),
	}, nil
}

// MetadataMissingResearchFields describes the missing_research_fields tool.
var MetadataMissingResearchFields = &mcp.Tool{
	Name: "missing_research_fields",
	Description: "List the attributes of an ESG research checklist that are still absent, " +
		"with their descriptions, optionally restricted to one scope.",
}

// InputMissingResearchFields is the input for the MissingResearchFields tool.
type InputMissingResearchFields struct {
	Checklist map[string]any `json:"checklist,omitempty" jsonschema:"Current checklist. Omit to start from an empty one."`
	Scope     string         `json:"scope,omitempty" jsonschema:"Restrict the listing to one research scope."`
}

// OutputMissingResearchFields is the output for the MissingResearchFields tool.
type OutputMissingResearchFields struct {
	Missing  []model.FieldSpec     `json:"missing"`
	Progress []model.ScopeProgress `json:"progress"`
	Complete bool                  `json:"complete"`
}

// MissingResearchFields reports the absent attributes of a checklist.
func MissingResearchFields(_ context.Context, _ *mcp.CallToolRequest, input InputMissingResearchFields) (*mcp.CallToolResult, OutputMissingResearchFields, error) {
	selected, err := scopesFor(input.Scope)
	if err != nil {
		return nil, OutputMissingResearchFields{}, err
	}
	scopes, err := checklistFrom(input.Checklist)
	if err != nil {
		return nil, OutputMissingResearchFields{}, err
	}

	want := make(map[model.Scope]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}

	out := OutputMissingResearchFields{Missing: []model.FieldSpec{}, Complete: true}
	for _, f := range scopes.Missing() {
		if want[f.Scope] {
			out.Missing = append(out.Missing, f)
		}
	}
	for _, p := range scopes.Progress() {
		if want[p.Scope] {
			out.Progress = append(out.Progress, p)
			out.Complete = out.Complete && p.Complete()
		}
	}
	return nil, out, nil
}
