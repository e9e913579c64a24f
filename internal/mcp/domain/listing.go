package domain

import (
	"context"

	"github.com/dimlab/dimcheck/internal/analysis"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListUnitsTool defines the MCP tool schema for the catalog listing.
func ListUnitsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_units",
		Description: "Lists all physical symbols, units, and constants available for equation " +
			"checking, including any custom variables configured for the session.",
	}
}

// ListUnitsHandler formats the catalog, constants (when enabled), and
// the session's custom variables into a categorized text block.
func ListUnitsHandler(settings Settings) mcp.ToolHandlerFor[struct{}, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		listing := analysis.ListUnits(settings.CustomVariables, settings.IncludeConstants)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: listing}},
		}, nil, nil
	}
}
