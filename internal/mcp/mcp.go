// Package mcp provides the vaultbridge MCP server, exposing FileVault
// commands as tools a front-end can call.
package mcp

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/deixis/vaultbridge"
	"github.com/deixis/vaultbridge/internal/bridge"
	"github.com/deixis/vaultbridge/internal/locator"
	"github.com/deixis/vaultbridge/internal/report"
	"github.com/deixis/vaultbridge/internal/vault"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	bridge *bridge.Bridge
	client *vault.Client
	store  report.Store // nil when run history is disabled
}

// NewServer creates an MCP server with every vaultbridge tool registered.
func NewServer(b *bridge.Bridge, store report.Store) *mcp.Server {
	h := &handler{
		bridge: b,
		client: &vault.Client{Runner: b},
		store:  store,
	}

	s := mcp.NewServer(&mcp.Implementation{Name: "vaultbridge", Version: vaultbridge.Version}, &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	})

	mcp.AddTool(s, &mcp.Tool{
		Name: "vault_run",
		Description: `Run FileVault with a raw argument list and return the normalized result.

Arguments are passed through untouched, e.g. ["info", "secret.fv", "-v"].
Prefer the typed vault_* tools when one fits.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "vault_locate",
		Description: "Report the FileVault executable the bridge would run, or every path it tried.",
	}, h.locateHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "vault_inspect",
		Description: "Fetch the stored result of an earlier run by the run_id printed in its output.",
	}, h.inspectHandler)

	registerCommandTools(s, h)

	return s
}

func (h *handler) invoke(ctx context.Context, cmd vault.Command) (*mcp.CallToolResult, any, error) {
	inv, err := h.client.Do(ctx, cmd)
	if err != nil {
		return errorResult(formatInvokeError(err))
	}
	return textResult(formatInvocation(inv))
}

func formatInvokeError(err error) string {
	var nf *locator.NotFoundError
	if errors.As(err, &nf) {
		var b strings.Builder
		fmt.Fprintln(&b, "FileVault executable not found. Tried:")
		for _, p := range nf.Paths() {
			fmt.Fprintf(&b, "  %s\n", p)
		}
		return b.String()
	}
	return err.Error()
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
