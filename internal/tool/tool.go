// Package tool exposes the ESG research checklist to agents as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
)

// NewServer creates an MCP server with every checklist tool registered.
func NewServer(name, version string) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(s, MetadataDescribeResearchScope, DescribeResearchScope)
	mcp.AddTool(s, MetadataValidateResearchChecklist, ValidateResearchChecklist)
	mcp.AddTool(s, MetadataSetResearchField, SetResearchField)
	mcp.AddTool(s, MetadataMissingResearchFields, MissingResearchFields)
	mcp.AddTool(s, MetadataBuildResearchPrompt, BuildResearchPrompt)

	zap.L().Debug("mcp tools registered",
		zap.String("server", name),
		zap.String("version", version),
	)
	return s
}

// checklistFrom parses a tool argument. A missing checklist is the empty one.
func checklistFrom(doc map[string]any) (model.ResearchScopes, error) {
	if doc == nil {
		return model.NewResearchScopes(), nil
	}
	return model.ResearchScopesFromDocument(model.Document(doc))
}

// scopesFor resolves an optional scope filter to the scopes it selects.
func scopesFor(name string) ([]model.Scope, error) {
	if name == "" {
		return model.Scopes, nil
	}
	scope, err := model.ParseScope(name)
	if err != nil {
		return nil, eris.Wrap(err, "tool: scope")
	}
	return []model.Scope{scope}, nil
}
