package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deixis/vaultbridge/internal/bridge"
	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type runParams struct {
	Args []string `json:"args" jsonschema:"FileVault arguments, in order, without the executable name"`
}

// rawCommand adapts a raw argv to vault.Command.
type rawCommand []string

func (rawCommand) Name() string     { return "run" }
func (c rawCommand) Args() []string { return c }

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	return h.invoke(ctx, rawCommand(params.Args))
}

type locateParams struct{}

func (h *handler) locateHandler(ctx context.Context, req *mcp.CallToolRequest, _ locateParams) (*mcp.CallToolResult, any, error) {
	path, err := h.bridge.Locate()
	if err != nil {
		return errorResult(formatInvokeError(err))
	}
	return textResult(fmt.Sprintf("Executable: %s\n", path))
}

func formatInvocation(inv *bridge.Invocation) string {
	var b strings.Builder
	writeResult(&b, inv.RunID, inv.Result)
	fmt.Fprintf(&b, "Duration: %s\n", inv.Duration.Round(time.Millisecond))
	if inv.Truncated {
		fmt.Fprintln(&b, "Output was truncated.")
	}
	return b.String()
}

func writeResult(b *strings.Builder, runID string, res normalize.CommandResult) {
	if res.Success {
		fmt.Fprintln(b, "Status: OK")
	} else {
		fmt.Fprintln(b, "Status: FAIL")
	}
	fmt.Fprintf(b, "Run: %s\n", runID)
	fmt.Fprintf(b, "Exit code: %d\n", res.ExitCode)
	fmt.Fprintln(b)

	if !res.Success {
		fmt.Fprintln(b, "Error:")
		writeIndented(b, res.Error)
		fmt.Fprintln(b)
	}
	if res.Stdout != "" {
		fmt.Fprintln(b, "Stdout:")
		writeIndented(b, res.Stdout)
		fmt.Fprintln(b)
	}
	if res.Stderr != "" {
		fmt.Fprintln(b, "Stderr:")
		writeIndented(b, res.Stderr)
		fmt.Fprintln(b)
	}
}

func writeIndented(b *strings.Builder, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
}
