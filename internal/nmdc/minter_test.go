package nmdc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintServer(t *testing.T, mintStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "my-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "my-secret", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/pids/mint", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"id": "nmdc:Biosample"}, body["schema_class"])
		assert.Equal(t, float64(2), body["how_many"])
		if mintStatus != http.StatusOK {
			w.WriteHeader(mintStatus)
			return
		}
		_, _ = w.Write([]byte(`["nmdc:bsm-11-abc","nmdc:bsm-11-def"]`))
	})
	return httptest.NewServer(mux)
}

func TestMint_Success(t *testing.T) {
	srv := mintServer(t, http.StatusOK)
	defer srv.Close()

	m := NewMinter(MinterConfig{BaseURL: srv.URL, ClientID: "my-id", ClientSecret: "my-secret"})
	ids, err := m.Mint(context.Background(), "nmdc:Biosample", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"nmdc:bsm-11-abc", "nmdc:bsm-11-def"}, ids)
}

func TestMint_UpstreamError(t *testing.T) {
	srv := mintServer(t, http.StatusForbidden)
	defer srv.Close()

	m := NewMinter(MinterConfig{BaseURL: srv.URL, ClientID: "my-id", ClientSecret: "my-secret"})
	_, err := m.Mint(context.Background(), "nmdc:Biosample", 2)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUpstreamError))
}

func TestMint_MissingCredentials(t *testing.T) {
	m := NewMinter(MinterConfig{BaseURL: "http://127.0.0.1:0"})
	_, err := m.Mint(context.Background(), "nmdc:Biosample", 1)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestMint_TimeoutBoundsMintRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/pids/mint", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`["nmdc:bsm-11-late"]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := NewMinter(MinterConfig{BaseURL: srv.URL, ClientID: "my-id", ClientSecret: "my-secret", Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := m.Mint(context.Background(), "nmdc:Biosample", 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransportTimeout), err.Error())
	assert.Less(t, time.Since(start), time.Second)
}
