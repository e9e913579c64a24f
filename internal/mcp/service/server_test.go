// Package service tests the MCP server wiring.
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dimlab/dimcheck/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestNewConfiguresServer(t *testing.T) {
	server := New(domain.Settings{})
	if server == nil || server.mcpServer == nil {
		t.Fatal("expected configured server")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := Run(ctx, Config{Transport: "carrier-pigeon"})
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// connectClient connects an in-memory client session to a fresh server.
func connectClient(t *testing.T, settings domain.Settings) *mcp.ClientSession {
	t.Helper()

	server := New(settings)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(clientCancel)
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
		session.Close()
	})
	return session
}

func TestCheckEquationOverSession(t *testing.T) {
	session := connectClient(t, domain.Settings{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "check_equation",
		Arguments: map[string]any{"equation": "F = m * a"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected tool error")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if !strings.Contains(text.Text, "dimensionally consistent") {
		t.Fatalf("unexpected text %q", text.Text)
	}
}

func TestListToolsOverSession(t *testing.T) {
	session := connectClient(t, domain.Settings{IncludeConstants: true})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	found := map[string]bool{}
	for _, tool := range tools.Tools {
		found[tool.Name] = true
	}
	for _, name := range []string{"check_equation", "add_custom_variable", "list_units"} {
		if !found[name] {
			t.Errorf("expected tool %q to be registered", name)
		}
	}
}

func TestReadGuideResourceOverSession(t *testing.T) {
	session := connectClient(t, domain.Settings{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "physics://dimensional-analysis"})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected one content entry, got %d", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "Dimensional analysis") {
		t.Fatal("expected guide text")
	}
}

func TestGetPromptOverSession(t *testing.T) {
	session := connectClient(t, domain.Settings{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := session.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "analyze_equation",
		Arguments: map[string]string{"equation": "E = m * c**2"},
	})
	if err != nil {
		t.Fatalf("get prompt: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "E = m * c**2") {
		t.Fatalf("expected equation in prompt, got %q", text.Text)
	}
}
