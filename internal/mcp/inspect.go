package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deixis/vaultbridge/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID from an earlier vault_* result"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}
	if h.store == nil {
		return errorResult("Run history is disabled.")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}
	return textResult(formatRecord(rec))
}

func formatRecord(rec *report.Record) string {
	var b strings.Builder
	writeResult(&b, rec.ID, rec.Result)
	fmt.Fprintf(&b, "Executable: %s\n", rec.Executable)
	fmt.Fprintf(&b, "Args: %s\n", strings.Join(rec.Args, " "))
	fmt.Fprintf(&b, "Started: %s\n", rec.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %s\n", rec.Duration.Round(time.Millisecond))
	return b.String()
}
