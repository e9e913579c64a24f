package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Session.VerboseOutput {
		t.Fatal("expected verbose output off by default")
	}
	if !cfg.Session.IncludeConstants {
		t.Fatal("expected constants included by default")
	}
	if cfg.Session.CustomVariables != "" {
		t.Fatalf("expected no custom variables, got %q", cfg.Session.CustomVariables)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("DIMCHECK_MCP_TRANSPORT", "http")
	t.Setenv("DIMCHECK_MCP_HTTP_ADDR", "localhost:9090")
	t.Setenv("DIMCHECK_VERBOSE_OUTPUT", "true")
	t.Setenv("DIMCHECK_INCLUDE_CONSTANTS", "false")
	t.Setenv("DIMCHECK_CUSTOM_VARIABLES", "g=9.81*meter/second**2")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:9090" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if !cfg.Session.VerboseOutput {
		t.Fatal("expected verbose output enabled")
	}
	if cfg.Session.IncludeConstants {
		t.Fatal("expected constants disabled")
	}
	if cfg.Session.CustomVariables != "g=9.81*meter/second**2" {
		t.Fatalf("expected env custom variables, got %q", cfg.Session.CustomVariables)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DIMCHECK_MCP_TRANSPORT", "http")
	t.Setenv("DIMCHECK_CUSTOM_VARIABLES", "g=9.81*meter/second**2")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-transport", "stdio", "-custom-variables", "A=meter**2", "-verbose"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected flag transport, got %q", cfg.Transport)
	}
	if cfg.Session.CustomVariables != "A=meter**2" {
		t.Fatalf("expected flag custom variables, got %q", cfg.Session.CustomVariables)
	}
	if !cfg.Session.VerboseOutput {
		t.Fatal("expected verbose flag to apply")
	}
}
