// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/dimlab/dimcheck/internal/mcp/domain"
	"github.com/dimlab/dimcheck/internal/mcp/service"
	"github.com/dimlab/dimcheck/internal/platform/config"
	"github.com/dimlab/dimcheck/internal/platform/otel"
)

// Config holds MCP command configuration. Session settings are delivered
// per process: one stdio session per invocation, shared by all HTTP
// sessions when the HTTP transport is selected.
type Config struct {
	Transport string `env:"DIMCHECK_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"DIMCHECK_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Session   domain.Settings
}

// ParseConfig parses environment and flags into a Config. Flags override
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.BoolVar(&cfg.Session.VerboseOutput, "verbose", cfg.Session.VerboseOutput, "include per-side expressions and magnitudes in check_equation output")
	fs.BoolVar(&cfg.Session.IncludeConstants, "include-constants", cfg.Session.IncludeConstants, "include physical constants in list_units output")
	fs.StringVar(&cfg.Session.CustomVariables, "custom-variables", cfg.Session.CustomVariables, "custom variables as 'name=unitExpr,...' (e.g. 'g=9.81*meter/second**2,A=meter**2')")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
		Session:   cfg.Session,
	})
}
