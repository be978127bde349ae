package nmdc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned by Mint when no client id or secret is configured.
var ErrMissingCredentials = errors.New("nmdc minter: client id and client secret are required")

// MinterConfig carries everything the minter needs. Credentials are passed in
// explicitly rather than read from the environment at call time.
type MinterConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	UserAgent    string
}

// Minter requests new NMDC identifiers from the /pids/mint endpoint.
type Minter struct {
	cfg        MinterConfig
	httpClient *http.Client
}

func NewMinter(cfg MinterConfig) *Minter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Minter{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

type mintRequest struct {
	SchemaClass struct {
		ID string `json:"id"`
	} `json:"schema_class"`
	HowMany int `json:"how_many"`
}

// Mint asks for count identifiers of the given schema class (e.g.
// "nmdc:Biosample") and returns them in the order the API produced them.
func (m *Minter) Mint(ctx context.Context, nmdcType string, count int) ([]string, error) {
	if m.cfg.ClientID == "" || m.cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if nmdcType == "" {
		return nil, errors.New("nmdc minter: schema class is required")
	}
	if count <= 0 {
		count = 1
	}

	cc := clientcredentials.Config{
		ClientID:     m.cfg.ClientID,
		ClientSecret: m.cfg.ClientSecret,
		TokenURL:     m.cfg.BaseURL + "/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	client := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, m.httpClient))
	client.Timeout = m.cfg.Timeout
	defer client.CloseIdleConnections()

	var payload mintRequest
	payload.SchemaClass.ID = nmdcType
	payload.HowMany = count
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode mint request: %w", err)
	}

	mintURL := m.cfg.BaseURL + "/pids/mint"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mintURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create mint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", m.cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(mintURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(mintURL, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(mintURL, resp.StatusCode, errors.New(truncate(respBody)))
	}

	ids := gjson.ParseBytes(respBody)
	if !ids.IsArray() {
		return nil, upstreamError(mintURL, resp.StatusCode, errors.New("mint response is not a list"))
	}
	out := make([]string, 0, count)
	for _, id := range ids.Array() {
		out = append(out, id.String())
	}
	return out, nil
}
