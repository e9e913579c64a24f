package analysis

import (
	"fmt"
	"strings"
)

// ListUnits formats the catalog into a categorized, human-readable
// block. Constants are included when includeConstants is set, and the
// custom-variables section resolves each name's canonical unit string
// from a freshly built symbol table.
func ListUnits(customSpec string, includeConstants bool) string {
	var b strings.Builder
	b.WriteString("Available Physical Units and Constants\n\n")

	for _, category := range categoryOrder {
		fmt.Fprintf(&b, "## %s\n", category)
		for _, entry := range catalog {
			if entry.category != category {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", entry.symbol, entry.description)
		}
		b.WriteString("\n")
	}

	if includeConstants {
		fmt.Fprintf(&b, "## %s\n", categoryConstants)
		for _, entry := range constants {
			fmt.Fprintf(&b, "- %s: %s\n", entry.symbol, entry.description)
		}
		b.WriteString("\n")
	}

	if strings.TrimSpace(customSpec) != "" {
		b.WriteString("## Custom Variables\n")
		table := BuildSymbolTable(customSpec)
		bindings, err := CustomVariables(customSpec)
		if err != nil {
			fmt.Fprintf(&b, "- error: %v\n", err)
		}
		for _, binding := range bindings {
			if q, ok := table[binding.Name]; ok {
				fmt.Fprintf(&b, "- %s: %s\n", binding.Name, q.UnitString())
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("Usage: reference these symbols in equations like 'F = m * a' or 'E = m * c**2'.\n")
	b.WriteString("Custom variables: use the 'add_custom_variable' tool to define your own symbols.")
	return b.String()
}
