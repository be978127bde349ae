package nmdc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/roivaz/nmdc-mcp/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.microbiomedata.org"
	DefaultUserAgent = "nmdc-app/1.0"

	DefaultTimeout   = 30 * time.Second

	maxErrorBody = 512
)

// rawGetTimeout bounds FetchJSON regardless of the client timeout.
var rawGetTimeout = DefaultTimeout

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    logging.Logger
}

// Client talks to the NMDC runtime API. A Client owns its transport, so
// callers that create one per invocation should Close it when done.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        logging.Logger
}

// Result is the outcome of a single GET: either a JSON body or a *FetchError.
type Result struct {
	Body       []byte
	StatusCode int
	Err        *FetchError
}

func (r Result) OK() bool { return r.Err == nil }

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Logger.Logr().GetSink() == nil {
		cfg.Logger = logging.Discard()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		log: cfg.Logger.WithName("nmdc"),
	}
}

// Close releases idle connections held by the client's transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Fetch issues one GET against rawURL. Non-2xx statuses and bodies that are
// not valid JSON are reported as upstream errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{Err: &FetchError{Kind: KindTransportError, URL: rawURL, Err: fmt.Errorf("create request: %w", err)}}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "url", rawURL, "elapsed", time.Since(start).String(), "error", err.Error())
		return Result{Err: transportError(rawURL, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{StatusCode: resp.StatusCode, Err: transportError(rawURL, fmt.Errorf("read body: %w", err))}
	}
	c.log.Debug("request completed", "url", rawURL, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{StatusCode: resp.StatusCode, Err: upstreamError(rawURL, resp.StatusCode, errors.New(truncate(body)))}
	}
	if !gjson.ValidBytes(body) {
		return Result{StatusCode: resp.StatusCode, Err: upstreamError(rawURL, resp.StatusCode, errors.New("response is not valid JSON"))}
	}
	return Result{Body: body, StatusCode: resp.StatusCode}
}

// FetchJSON performs a GET with a 30 second ceiling and returns the decoded
// body. Every failure, whatever its kind, yields nil.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) any {
	ctx, cancel := context.WithTimeout(ctx, rawGetTimeout)
	defer cancel()

	res := c.Fetch(ctx, rawURL)
	if !res.OK() {
		c.log.Debug("raw fetch suppressed failure", "url", rawURL, "kind", string(res.Err.Kind))
		return nil
	}
	return gjson.ParseBytes(res.Body).Value()
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
