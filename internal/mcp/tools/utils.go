package tools

import (
	"encoding/json"
	"fmt"

	"github.com/roivaz/nmdc-mcp/internal/nmdc"
)

func parseFloatArgument(args map[string]any, name string) (float64, error) {
	switch v := args[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("%s must be provided", name)
	default:
		return 0, fmt.Errorf("%s must be a number", name)
	}
}

func parseStringArgument(args map[string]any, name string) (string, error) {
	switch v := args[name].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%s must be provided", name)
		}
		return v, nil
	case nil:
		return "", fmt.Errorf("%s must be provided", name)
	default:
		return "", fmt.Errorf("%s must be a string", name)
	}
}

// parseRawStringArgument accepts any string, empty included. Only a missing
// key or a non-string value is rejected.
func parseRawStringArgument(args map[string]any, name string) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s must be provided", name)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return v, nil
}

// queryFromArgs reads the optional paging arguments shared by the record
// tools. Absent arguments leave the zero value so the client applies its defaults.
func queryFromArgs(args map[string]any) (nmdc.Query, error) {
	var q nmdc.Query
	switch v := args["max_page_size"].(type) {
	case nil:
	case float64:
		if v < 1 {
			return q, fmt.Errorf("max_page_size must be positive")
		}
		q.MaxPageSize = int(v)
	case int:
		if v < 1 {
			return q, fmt.Errorf("max_page_size must be positive")
		}
		q.MaxPageSize = v
	default:
		return q, fmt.Errorf("max_page_size must be a number")
	}
	if v, ok := args["fields"].(string); ok {
		q.Fields = v
	}
	if v, ok := args["filter"].(string); ok {
		q.Filter = v
	}
	if v, ok := args["all_pages"].(bool); ok {
		q.AllPages = v
	}
	return q, nil
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
