package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/nmdc-mcp/internal/nmdc"
)

// GetRecordsHandler serves the no-argument collection tools (data objects,
// biosamples, data generation, functional annotations).
type GetRecordsHandler struct {
	Collection nmdc.Collection
	NewClient  ClientFactory
}

func (h *GetRecordsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromArgs(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client := h.NewClient()
	defer client.Close()

	records, err := client.GetRecords(ctx, h.Collection, q)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(records)), nil
}
