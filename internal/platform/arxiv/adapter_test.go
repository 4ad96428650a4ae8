package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaperDigest/internal/platform"
)

func testConfig(base string) *Config {
	cfg := DefaultConfig()
	cfg.APIBase = base
	cfg.WebBase = base
	cfg.RequestDelay = 0
	cfg.RetryWait = 0.001
	cfg.Retries = 2
	cfg.Timeout = 5
	return cfg
}

func TestAdapter_BuildAPIURL(t *testing.T) {
	a, err := NewAdapter(testConfig("http://export.arxiv.org/api/query"))
	require.NoError(t, err)

	tests := []struct {
		q    platform.Query
		want string
	}{
		{platform.Query{Term: "phase field", Field: "all"}, `all:"phase field"`},
		{platform.Query{Term: "George em Karniadakis"}, `all:"George em Karniadakis"`},
		{platform.Query{Term: `"brittle fracture"`, Field: "ti"}, `ti:"brittle fracture"`},
	}

	for _, tt := range tests {
		u, err := url.Parse(a.buildAPIURL(tt.q))
		require.NoError(t, err)
		assert.Equal(t, "export.arxiv.org", u.Host)

		v := u.Query()
		assert.Equal(t, tt.want, v.Get("search_query"))
		assert.Equal(t, "0", v.Get("start"))
		assert.Equal(t, "20", v.Get("max_results"))
		assert.Equal(t, "submittedDate", v.Get("sortBy"))
		assert.Equal(t, "descending", v.Get("sortOrder"))
	}
}

func TestAdapter_BuildWebURL(t *testing.T) {
	cfg := testConfig("https://arxiv.org/search/advanced")
	cfg.MaxResults = 30
	a, err := NewAdapter(cfg)
	require.NoError(t, err)

	u, err := url.Parse(a.buildWebURL(platform.Query{Term: "neural operator", Field: "abs"}))
	require.NoError(t, err)
	v := u.Query()
	assert.Equal(t, `"neural operator"`, v.Get("terms-0-term"))
	assert.Equal(t, "abstract", v.Get("terms-0-field"))
	assert.Equal(t, "50", v.Get("size"))
	assert.Equal(t, "-announced_date_first", v.Get("order"))
}

func TestAdapter_SearchViaAPI(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(feed(`<entry><id>1</id><title>t</title></entry><entry><id>2</id></entry>`)))
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	res, err := a.Search(context.Background(), platform.Query{Term: "fracture", Field: "all"})
	require.NoError(t, err)
	assert.Equal(t, `all:"fracture"`, gotQuery)
	assert.Equal(t, 42, res.Total)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "1", res.Records[0].ID)
}

func TestAdapter_SearchEmptyTerm(t *testing.T) {
	a, err := NewAdapter(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = a.Search(context.Background(), platform.Query{Term: "   "})
	assert.Error(t, err)
}

func TestAdapter_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(feed("")))
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	res, err := a.Search(context.Background(), platform.Query{Term: "fracture"})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAdapter_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = a.Search(context.Background(), platform.Query{Term: "fracture"})
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAdapter_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = a.Search(context.Background(), platform.Query{Term: "fracture"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAdapter_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<feed><entry>"))
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = a.Search(context.Background(), platform.Query{Term: "fracture"})
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestAdapter_RequestDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed("")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RequestDelay = 0.2
	a, err := NewAdapter(cfg)
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := a.Search(context.Background(), platform.Query{Term: "fracture"})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestAdapter_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed("")))
	}))
	defer srv.Close()

	a, err := NewAdapter(testConfig(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Search(ctx, platform.Query{Term: "fracture"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"max_results zero", func(c *Config) { c.MaxResults = 0 }},
		{"max_results too large", func(c *Config) { c.MaxResults = 2001 }},
		{"negative start", func(c *Config) { c.Start = -1 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative delay", func(c *Config) { c.RequestDelay = -1 }},
		{"bad sort_by", func(c *Config) { c.SortBy = "date" }},
		{"bad sort_order", func(c *Config) { c.SortOrder = "up" }},
		{"empty api_base", func(c *Config) { c.APIBase = "" }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
