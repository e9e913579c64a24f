package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// guideURI addresses the static dimensional-analysis guide resource.
const guideURI = "physics://dimensional-analysis"

const guideText = "Dimensional analysis is a powerful tool in physics for checking " +
	"the consistency of equations. Every physical quantity has dimensions " +
	"expressed in terms of fundamental units: length [L], mass [M], time [T], " +
	"electric current [I], thermodynamic temperature [Θ], amount of substance [N], " +
	"and luminous intensity [J].\n\n" +
	"Key principles:\n" +
	"1. Both sides of an equation must have the same dimensions\n" +
	"2. Arguments to transcendental functions (sin, cos, exp, log) must be dimensionless\n" +
	"3. Dimensional analysis can reveal errors in equations before numerical calculations\n" +
	"4. It helps derive relationships between physical quantities\n\n" +
	"Available tools:\n" +
	"- check_equation: validate dimensional consistency\n" +
	"- list_units: show all available units and variables\n" +
	"- add_custom_variable: propose a variable for the session configuration\n\n" +
	"Custom variables are configured per session, e.g. " +
	"custom_variables='g=9.81*meter/second**2,A=meter**2'."

// GuideResource defines the static dimensional-analysis guide.
func GuideResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "dimensional_analysis_guide",
		Title:       "Dimensional Analysis",
		Description: "Guide to dimensional analysis and equation validation",
		MIMEType:    "text/plain",
		URI:         guideURI,
	}
}

// GuideResourceHandler serves the guide text.
func GuideResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := guideURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "text/plain", Text: guideText},
			},
		}, nil
	}
}
