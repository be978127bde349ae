package tools

import (
	"context"
	"encoding/json"

	"github.com/roivaz/nmdc-mcp/internal/nmdc"
)

// SearchClient is the slice of *nmdc.Client the record tools depend on.
type SearchClient interface {
	GetRecords(ctx context.Context, collection nmdc.Collection, q nmdc.Query) (json.RawMessage, error)
	GetRecordsByLatLong(ctx context.Context, latComparison, lonComparison string, latitude, longitude float64, q nmdc.Query) (json.RawMessage, error)
	Close()
}

// ClientFactory hands out a new SearchClient for every invocation. Handlers
// close the client before returning.
type ClientFactory func() SearchClient

func NewNMDCClientFactory(cfg nmdc.Config) ClientFactory {
	return func() SearchClient {
		return nmdc.NewClient(cfg)
	}
}
