package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type IDMinter interface {
	Mint(ctx context.Context, nmdcType string, count int) ([]string, error)
}

// MintIDsHandler mints new NMDC identifiers. Its catalog entry is inactive,
// so the server never registers it.
type MintIDsHandler struct {
	Minter IDMinter
}

func (h *MintIDsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	nmdcType, err := parseStringArgument(args, "nmdc_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := 1
	if raw, ok := args["count"].(float64); ok && int(raw) > 0 {
		count = int(raw)
	}
	ids, err := h.Minter.Mint(ctx, nmdcType, count)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(ids))), nil
}
