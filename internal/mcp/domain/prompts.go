package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeEquationPrompt defines the prompt template for equation analysis.
func AnalyzeEquationPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "analyze_equation",
		Description: "Generates a request to analyze a physics equation for dimensional consistency.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "equation",
				Description: "physics equation to analyze, e.g. 'F = m * a'",
				Required:    true,
			},
		},
	}
}

// AnalyzeEquationHandler renders the analysis prompt for an equation.
func AnalyzeEquationHandler() mcp.PromptHandler {
	return func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		equation := ""
		if req != nil && req.Params != nil {
			equation = req.Params.Arguments["equation"]
		}
		if equation == "" {
			return nil, fmt.Errorf("prompt argument %q is required", "equation")
		}
		text := fmt.Sprintf("Please analyze this physics equation for dimensional consistency: %s. "+
			"Use the check_equation tool to verify it, and explain what the equation represents "+
			"and whether it is physically meaningful.", equation)
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	}
}
