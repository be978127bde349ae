package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// BiosampleByLatLongHandler filters biosamples by coordinate comparisons.
// The comparison operators are handed to the client untouched.
type BiosampleByLatLongHandler struct {
	NewClient ClientFactory
}

func (h *BiosampleByLatLongHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	latCmp, err := parseRawStringArgument(args, "lat_comparison")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lonCmp, err := parseRawStringArgument(args, "lon_comparison")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lat, err := parseFloatArgument(args, "lat")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	long, err := parseFloatArgument(args, "long")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q, err := queryFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Only paging size and projection apply; the filter is built from the coordinates.
	q.Filter = ""
	q.AllPages = false

	client := h.NewClient()
	defer client.Close()

	records, err := client.GetRecordsByLatLong(ctx, latCmp, lonCmp, lat, long, q)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(records)), nil
}
