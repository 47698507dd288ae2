package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/esg-research/internal/model"
)

// MetadataDescribeResearchScope describes the describe_research_scope tool.
var MetadataDescribeResearchScope = &mcp.Tool{
	Name: "describe_research_scope",
	Description: "List the attributes of the ESG research checklist with their descriptions. " +
		"Scopes: regulation, societal_expectations, stakeholder_pressure, industry_forces. " +
		"Omit scope to describe the whole checklist. Every attribute is optional text; " +
		"use null when nothing is known.",
}

// InputDescribeResearchScope is the input for the DescribeResearchScope tool.
type InputDescribeResearchScope struct {
	Scope string `json:"scope,omitempty" jsonschema:"Research scope to describe. Empty means every scope."`
}

// ScopeInfo describes one research scope and its attributes.
type ScopeInfo struct {
	Scope       model.Scope       `json:"scope"`
	Description string            `json:"description"`
	Fields      []model.FieldSpec `json:"fields"`
}

// OutputDescribeResearchScope is the output for the DescribeResearchScope tool.
type OutputDescribeResearchScope struct {
	// Checklist is the record-level description of the whole checklist.
	Checklist string      `json:"checklist"`
	Scopes    []ScopeInfo `json:"scopes"`
}

// DescribeResearchScope returns the attribute metadata of one or all scopes.
func DescribeResearchScope(_ context.Context, _ *mcp.CallToolRequest, input InputDescribeResearchScope) (*mcp.CallToolResult, OutputDescribeResearchScope, error) {
	scopes, err := scopesFor(input.Scope)
	if err != nil {
		return nil, OutputDescribeResearchScope{}, err
	}

	out := OutputDescribeResearchScope{Checklist: model.ResearchScopesDescription}
	for _, scope := range scopes {
		out.Scopes = append(out.Scopes, ScopeInfo{
			Scope:       scope,
			Description: scope.Description(),
			Fields:      model.Fields().ByScope(scope),
		})
	}
	return nil, out, nil
}
