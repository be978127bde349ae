package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/nmdc-mcp/internal/config"
	"github.com/roivaz/nmdc-mcp/internal/logging"
	"github.com/roivaz/nmdc-mcp/internal/mcp/tools"
	"github.com/roivaz/nmdc-mcp/internal/nmdc"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Name         string
	Version      string
	Transport    string
	HTTPAddr     string
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Logger       logging.Logger
}

// DefaultConfig builds the production wiring from viper settings. Every
// record tool gets a factory so each invocation talks through its own client.
func DefaultConfig(log logging.Logger) Config {
	clientCfg := nmdc.Config{
		BaseURL:   config.APIURL(),
		Timeout:   config.RequestTimeout(),
		UserAgent: config.UserAgent(),
		Logger:    log,
	}
	newClient := tools.NewNMDCClientFactory(clientCfg)

	minter := nmdc.NewMinter(nmdc.MinterConfig{
		BaseURL:      config.APIURL(),
		ClientID:     config.ClientID(),
		ClientSecret: config.ClientSecret(),
		Timeout:      config.RequestTimeout(),
		UserAgent:    config.UserAgent(),
	})

	return Config{
		Name:      config.ServerName(),
		Version:   Version,
		Transport: config.Transport(),
		HTTPAddr:  config.HTTPAddr(),
		ToolAdapters: map[string]ToolAdapter{
			ToolDataObjects:        &tools.GetRecordsHandler{Collection: nmdc.DataObjects, NewClient: newClient},
			ToolBiosamples:         &tools.GetRecordsHandler{Collection: nmdc.Biosamples, NewClient: newClient},
			ToolDataGeneration:     &tools.GetRecordsHandler{Collection: nmdc.DataGeneration, NewClient: newClient},
			ToolFunctionalData:     &tools.GetRecordsHandler{Collection: nmdc.FunctionalAnnotations, NewClient: newClient},
			ToolBiosampleByLatLong: &tools.BiosampleByLatLongHandler{NewClient: newClient},
			ToolMintedIDs:          &tools.MintIDsHandler{Minter: minter},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp"),
			server.WithStateLess(true),
		},
		Logger: log,
	}
}
