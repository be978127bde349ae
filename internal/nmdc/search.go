package nmdc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Collection names an NMDC schema collection served under /nmdcschema.
type Collection string

const (
	DataObjects           Collection = "data_object_set"
	Biosamples            Collection = "biosample_set"
	DataGeneration        Collection = "data_generation_set"
	FunctionalAnnotations Collection = "functional_annotation_agg"
)

const (
	DefaultPageSize        = 100
	DefaultLatLongPageSize = 25
)

// Query narrows a collection fetch. The zero value fetches the first page of
// DefaultPageSize records with every field.
type Query struct {
	Filter      string
	MaxPageSize int
	Fields      string
	AllPages    bool
}

// GetRecords returns the raw "resources" array of a collection. With
// AllPages set, next_page_token is followed and the pages are concatenated.
func (c *Client) GetRecords(ctx context.Context, collection Collection, q Query) (json.RawMessage, error) {
	if q.MaxPageSize <= 0 {
		q.MaxPageSize = DefaultPageSize
	}

	body, err := c.fetchPage(ctx, collection, q, "")
	if err != nil {
		return nil, err
	}
	resources := gjson.GetBytes(body, "resources")
	if !resources.Exists() {
		return nil, upstreamError(c.collectionURL(collection, q, ""), 0, errors.New(`response has no "resources" field`))
	}
	next := gjson.GetBytes(body, "next_page_token").String()
	if !q.AllPages || next == "" {
		return json.RawMessage(resources.Raw), nil
	}

	items := rawItems(resources)
	seen := map[string]bool{}
	for next != "" && !seen[next] {
		seen[next] = true
		c.log.Debug("following page token", "collection", string(collection), "records", len(items))
		body, err = c.fetchPage(ctx, collection, q, next)
		if err != nil {
			return nil, err
		}
		page := gjson.GetBytes(body, "resources")
		if !page.Exists() {
			return nil, upstreamError(c.collectionURL(collection, q, next), 0, errors.New(`response has no "resources" field`))
		}
		items = append(items, rawItems(page)...)
		next = gjson.GetBytes(body, "next_page_token").String()
	}
	return json.RawMessage("[" + strings.Join(items, ",") + "]"), nil
}

// GetRecordsByLatLong fetches biosamples whose lat_lon coordinates satisfy
// both comparisons. Operators are passed to the API as given.
func (c *Client) GetRecordsByLatLong(ctx context.Context, latComparison, lonComparison string, latitude, longitude float64, q Query) (json.RawMessage, error) {
	if q.MaxPageSize <= 0 {
		q.MaxPageSize = DefaultLatLongPageSize
	}
	q.Filter = LatLongFilter(latComparison, lonComparison, latitude, longitude)
	return c.GetRecords(ctx, Biosamples, q)
}

// LatLongFilter renders the NMDC filter document for a coordinate query, e.g.
// {"lat_lon.latitude": {"$gte": 10}, "lat_lon.longitude": {"$lte": 20}}.
func LatLongFilter(latComparison, lonComparison string, latitude, longitude float64) string {
	return fmt.Sprintf(`{"lat_lon.latitude": {%s: %s}, "lat_lon.longitude": {%s: %s}}`,
		operatorKey(latComparison), formatFloat(latitude),
		operatorKey(lonComparison), formatFloat(longitude))
}

func (c *Client) fetchPage(ctx context.Context, collection Collection, q Query, pageToken string) ([]byte, error) {
	res := c.Fetch(ctx, c.collectionURL(collection, q, pageToken))
	if !res.OK() {
		return nil, fmt.Errorf("get %s records: %w", collection, res.Err)
	}
	return res.Body, nil
}

func (c *Client) collectionURL(collection Collection, q Query, pageToken string) string {
	params := url.Values{}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	params.Set("max_page_size", strconv.Itoa(q.MaxPageSize))
	if q.Fields != "" {
		params.Set("projection", q.Fields)
	}
	if pageToken != "" {
		params.Set("page_token", pageToken)
	}
	return fmt.Sprintf("%s/nmdcschema/%s?%s", c.baseURL, url.PathEscape(string(collection)), params.Encode())
}

func rawItems(arr gjson.Result) []string {
	var items []string
	arr.ForEach(func(_, value gjson.Result) bool {
		items = append(items, value.Raw)
		return true
	})
	return items
}

func operatorKey(op string) string {
	b, _ := json.Marshal("$" + op)
	return string(b)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
