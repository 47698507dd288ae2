package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/esg-research/internal/model"
	"github.com/sells-group/esg-research/internal/research"
)

// MetadataBuildResearchPrompt describes the build_research_prompt tool.
var MetadataBuildResearchPrompt = &mcp.Tool{
	Name: "build_research_prompt",
	Description: "Render the instructions for researching one scope of the ESG checklist for a company. " +
		"The prompt lists every attribute with its description and any values already recorded, " +
		"and asks for a JSON object with exactly the scope's keys.",
}

// InputBuildResearchPrompt is the input for the BuildResearchPrompt tool.
type InputBuildResearchPrompt struct {
	Company   string         `json:"company,omitempty" jsonschema:"Company under research."`
	Scope     string         `json:"scope" jsonschema:"Research scope the prompt covers."`
	Checklist map[string]any `json:"checklist,omitempty" jsonschema:"Current checklist; recorded values are listed as context."`
}

// OutputBuildResearchPrompt is the output for the BuildResearchPrompt tool.
type OutputBuildResearchPrompt struct {
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

// BuildResearchPrompt renders the generation prompt for a scope.
func BuildResearchPrompt(_ context.Context, _ *mcp.CallToolRequest, input InputBuildResearchPrompt) (*mcp.CallToolResult, OutputBuildResearchPrompt, error) {
	scope, err := model.ParseScope(input.Scope)
	if err != nil {
		return nil, OutputBuildResearchPrompt{}, eris.Wrap(err, "tool: scope")
	}
	scopes, err := checklistFrom(input.Checklist)
	if err != nil {
		return nil, OutputBuildResearchPrompt{}, err
	}
	rec, err := scopes.Record(scope)
	if err != nil {
		return nil, OutputBuildResearchPrompt{}, err
	}

	prompt, err := research.BuildPrompt(input.Company, scope, rec)
	if err != nil {
		return nil, OutputBuildResearchPrompt{}, err
	}
	return nil, OutputBuildResearchPrompt{System: research.SystemText, Prompt: prompt}, nil
}
