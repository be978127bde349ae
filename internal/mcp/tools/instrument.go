package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/nmdc-mcp/internal/logging"
)

// Instrument wraps a tool handler with per-invocation logging. Each call is
// tagged with a fresh invocation id; errors are logged and returned as-is.
func Instrument(name string, next server.ToolHandlerFunc, log logging.Logger) server.ToolHandlerFunc {
	log = log.WithName("tools").WithValues("tool", name)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callLog := log.WithValues("invocation", uuid.NewString())
		callLog.Debug("tool invoked", "arguments", req.GetArguments())

		start := time.Now()
		result, err := next(ctx, req)
		elapsed := time.Since(start).String()
		if err != nil {
			callLog.Error(err, "tool failed", "elapsed", elapsed)
			return nil, err
		}
		if result != nil && result.IsError {
			callLog.Info("tool rejected arguments", "elapsed", elapsed)
			return result, nil
		}
		if callLog.DebugEnabled() {
			text := resultText(result)
			callLog.Debug("tool completed", "elapsed", elapsed, "bytes", len(text), "tokens", estimateTokens(text))
		} else {
			callLog.Info("tool completed", "elapsed", elapsed)
		}
		return result, nil
	}
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var text string
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			text += tc.Text
		case *mcp.TextContent:
			text += tc.Text
		}
	}
	return text
}
