package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"sigs.k8s.io/yaml"
)

const (
	ToolDataObjects        = "get_data_objects"
	ToolBiosamples         = "get_biosamples"
	ToolDataGeneration     = "get_data_generation"
	ToolFunctionalData     = "get_functional_data"
	ToolBiosampleByLatLong = "get_biosample_by_lat_long_data"
	ToolMintedIDs          = "get_minted_ids"
)

// Endpoint is one entry of the tool catalog. Inactive endpoints are
// documented but never registered with the MCP server.
type Endpoint struct {
	Tool   mcp.Tool
	Active bool
}

const comparisonHelp = `MUST BE ONE OF THE FOLLOWING:
eq  - Matches values that are equal to the given value.
gt  - Matches if values are greater than the given value.
lt  - Matches if values are less than the given value.
gte - Matches if values are greater or equal to the given value.
lte - Matches if values are less or equal to the given value.`

func pagingOptions(defaultPageSize string, withFilter bool) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithNumber("max_page_size",
			mcp.Description("Maximum number of records per page (default: "+defaultPageSize+")"),
		),
		mcp.WithString("fields",
			mcp.Description("Optional: comma separated list of fields to return (e.g., 'id,name')"),
		),
	}
	if withFilter {
		opts = append(opts,
			mcp.WithString("filter",
				mcp.Description(`Optional: NMDC filter document (e.g., '{"ecosystem_category": "Terrestrial"}')`),
			),
			mcp.WithBoolean("all_pages",
				mcp.Description("Follow pagination and return every matching record (default: false)"),
			),
		)
	}
	return opts
}

func recordsTool(name, description string) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, pagingOptions("100", true)...)
	return mcp.NewTool(name, opts...)
}

// Catalog returns every endpoint the adapter knows about, active or not.
func Catalog() []Endpoint {
	latLongOpts := []mcp.ToolOption{
		mcp.WithDescription("Get biosample records from the NMDC API by latitude and longitude comparison."),
		mcp.WithString("lat_comparison",
			mcp.Required(),
			mcp.Description("The comparison to use to query the record for latitude. "+comparisonHelp),
		),
		mcp.WithString("lon_comparison",
			mcp.Required(),
			mcp.Description("The comparison to use to query the record for longitude. "+comparisonHelp),
		),
		mcp.WithNumber("lat",
			mcp.Required(),
			mcp.Description("The latitude to compare against (e.g., 45.5)"),
		),
		mcp.WithNumber("long",
			mcp.Required(),
			mcp.Description("The longitude to compare against (e.g., -122.6)"),
		),
	}
	latLongOpts = append(latLongOpts, pagingOptions("25", false)...)

	return []Endpoint{
		{Active: true, Tool: recordsTool(ToolDataObjects, "Get data objects from NMDC API.")},
		{Active: true, Tool: recordsTool(ToolBiosamples, "Get biosamples from NMDC API.")},
		{Active: true, Tool: recordsTool(ToolDataGeneration, "Get data generation records from NMDC API.")},
		{Active: true, Tool: recordsTool(ToolFunctionalData, "Get functional data from NMDC API.")},
		{Active: true, Tool: mcp.NewTool(ToolBiosampleByLatLong, latLongOpts...)},
		{Active: false, Tool: mcp.NewTool(ToolMintedIDs,
			mcp.WithDescription("Get minted IDs from NMDC API."),
			mcp.WithString("nmdc_type",
				mcp.Required(),
				mcp.Description("NMDC schema class to mint identifiers for (e.g., 'nmdc:Biosample')"),
			),
			mcp.WithNumber("count",
				mcp.Description("Number of identifiers to mint (default: 1)"),
			),
		)},
	}
}

type catalogEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Active      bool     `json:"active"`
	Required    []string `json:"required,omitempty"`
	Optional    []string `json:"optional,omitempty"`
}

// CatalogYAML renders the catalog for the "tools" command.
func CatalogYAML() ([]byte, error) {
	var entries []catalogEntry
	for _, ep := range Catalog() {
		required := map[string]bool{}
		for _, r := range ep.Tool.InputSchema.Required {
			required[r] = true
		}
		entry := catalogEntry{
			Name:        ep.Tool.Name,
			Description: ep.Tool.Description,
			Active:      ep.Active,
			Required:    ep.Tool.InputSchema.Required,
		}
		for prop := range ep.Tool.InputSchema.Properties {
			if !required[prop] {
				entry.Optional = append(entry.Optional, prop)
			}
		}
		sort.Strings(entry.Optional)
		entries = append(entries, entry)
	}
	return yaml.Marshal(entries)
}
