// Package domain defines the MCP tool, resource, and prompt surface for
// dimensional analysis: input/output schemas and the handlers binding
// them to the analysis core.
package domain

// Settings holds per-session configuration supplied by the host. It is
// captured by value at registration time and never mutated: handlers
// rebuild the symbol table from it on every invocation, so concurrent
// tool calls observe the same immutable configuration.
type Settings struct {
	// VerboseOutput includes per-side expressions and magnitudes in
	// check_equation output.
	VerboseOutput bool `env:"DIMCHECK_VERBOSE_OUTPUT" envDefault:"false"`
	// IncludeConstants includes the physical constants section in
	// list_units output.
	IncludeConstants bool `env:"DIMCHECK_INCLUDE_CONSTANTS" envDefault:"true"`
	// CustomVariables is a comma-separated "name=unitExpr" specification
	// merged into the symbol table, overriding catalog defaults.
	CustomVariables string `env:"DIMCHECK_CUSTOM_VARIABLES"`
}
