package service

import (
	"github.com/dimlab/dimcheck/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(mcpServer *mcp.Server, settings domain.Settings) {
	mcp.AddTool(mcpServer, domain.CheckEquationTool(), domain.CheckEquationHandler(settings))
	mcp.AddTool(mcpServer, domain.AddCustomVariableTool(), domain.AddCustomVariableHandler(settings))
	mcp.AddTool(mcpServer, domain.ListUnitsTool(), domain.ListUnitsHandler(settings))
}

// registerResources registers readable MCP resources.
func registerResources(mcpServer *mcp.Server) {
	mcpServer.AddResource(domain.GuideResource(), domain.GuideResourceHandler())
}

// registerPrompts registers MCP prompt templates.
func registerPrompts(mcpServer *mcp.Server) {
	mcpServer.AddPrompt(domain.AnalyzeEquationPrompt(), domain.AnalyzeEquationHandler())
}
