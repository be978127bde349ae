package nmdc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(Config{BaseURL: baseURL, Timeout: timeout})
}

func TestFetchJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nmdc-app/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"nmdc:bsm-11-x","count":2,"tags":["soil"]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	defer c.Close()

	got := c.FetchJSON(context.Background(), srv.URL+"/anything")
	require.NotNil(t, got)
	body, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "nmdc:bsm-11-x", body["id"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, []any{"soil"}, body["tags"])
}

func TestFetchJSON_FailuresReturnNil(t *testing.T) {
	statusSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/html":
			_, _ = w.Write([]byte("<html>nope</html>"))
		}
	}))
	defer statusSrv.Close()

	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer slowSrv.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	cases := map[string]struct {
		client *Client
		url    string
	}{
		"not found":        {testClient(statusSrv.URL, time.Second), statusSrv.URL + "/missing"},
		"server error":     {testClient(statusSrv.URL, time.Second), statusSrv.URL + "/broken"},
		"malformed body":   {testClient(statusSrv.URL, time.Second), statusSrv.URL + "/html"},
		"timeout":          {testClient(slowSrv.URL, 50*time.Millisecond), slowSrv.URL},
		"connection error": {testClient(closedURL, time.Second), closedURL},
		"invalid url":      {testClient(statusSrv.URL, time.Second), "://not a url"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			defer tc.client.Close()
			assert.NotPanics(t, func() {
				assert.Nil(t, tc.client.FetchJSON(context.Background(), tc.url))
			})
		})
	}
}

func TestFetch_ClassifiesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(200 * time.Millisecond)
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50*time.Millisecond)
	defer c.Close()

	res := c.Fetch(context.Background(), srv.URL+"/slow")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindTransportTimeout, res.Err.Kind)

	c2 := testClient(srv.URL, time.Second)
	defer c2.Close()
	res = c2.Fetch(context.Background(), srv.URL+"/gateway")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindUpstreamError, res.Err.Kind)
	assert.Equal(t, http.StatusBadGateway, res.Err.StatusCode)
	assert.True(t, IsKind(res.Err, KindUpstreamError))
	assert.Contains(t, res.Err.Error(), "502")
}

func TestFetch_CancelledContextIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res := c.Fetch(ctx, srv.URL)
	require.NotNil(t, res.Err)
	assert.Equal(t, KindTransportTimeout, res.Err.Kind)
}

func TestFetch_EmptyArrayIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, time.Second)
	defer c.Close()

	res := c.Fetch(context.Background(), srv.URL)
	require.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", string(res.Body))
}

func TestFetchJSON_CeilingBelowClientTimeout(t *testing.T) {
	old := rawGetTimeout
	rawGetTimeout = 50 * time.Millisecond
	defer func() { rawGetTimeout = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	defer c.Close()

	start := time.Now()
	assert.Nil(t, c.FetchJSON(context.Background(), srv.URL))
	assert.Less(t, time.Since(start), time.Second)
}
