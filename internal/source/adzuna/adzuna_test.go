package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/source"
)

const searchPayload = `{
  "count": 3,
  "results": [
    {
      "id": "4001",
      "title": "Backend Engineer",
      "description": "<p>Build Go services. Fully remote team.</p>",
      "company": {"display_name": "Acme"},
      "location": {"display_name": "Austin, TX"},
      "salary_min": 120000,
      "salary_max": 150000,
      "redirect_url": "https://www.adzuna.com/land/ad/4001",
      "created": "2025-08-01T12:00:00Z"
    },
    {
      "id": "4002",
      "title": "Platform Engineer",
      "description": "On-site role in Denver.",
      "company": {"display_name": "Initech"},
      "location": {},
      "salary_min": 0,
      "salary_max": 0,
      "redirect_url": "",
      "created": "not-a-date"
    },
    {
      "id": "4003",
      "title": "",
      "description": "missing title, must be dropped",
      "company": {"display_name": "Ghost Co"},
      "location": {"display_name": "Nowhere"}
    }
  ]
}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	a := New("test-id", "test-key", "us", zap.NewNop())
	a.APIURL = server.URL
	return a, server
}

func TestFetchNormalizesListings(t *testing.T) {
	var gotQuery map[string]string
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"app_id":  r.URL.Query().Get("app_id"),
			"app_key": r.URL.Query().Get("app_key"),
			"what":    r.URL.Query().Get("what"),
			"where":   r.URL.Query().Get("where"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	})

	got, err := a.Fetch(context.Background(), jobs.Query{Keywords: "golang", Location: "Austin"})
	require.NoError(t, err)

	assert.Equal(t, "test-id", gotQuery["app_id"])
	assert.Equal(t, "test-key", gotQuery["app_key"])
	assert.Equal(t, "golang", gotQuery["what"])
	assert.Equal(t, "Austin", gotQuery["where"])

	// Third listing has no title and is dropped at the boundary.
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "4001", first.ExternalID)
	assert.Equal(t, jobs.SourceAdzuna, first.Source)
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Austin, TX", first.Location)
	assert.NotContains(t, first.Description, "<p>")
	require.NotNil(t, first.Salary)
	assert.Equal(t, "120,000–150,000 per year", *first.Salary)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, "2025-08-01", *first.PostedAt)
	assert.True(t, first.Remote)

	second := got[1]
	assert.Equal(t, "Unknown", second.Location)
	assert.Nil(t, second.Salary)
	assert.Nil(t, second.PostedAt)
	assert.False(t, second.Remote)
	// Fallback URL synthesized from the listing id.
	assert.Equal(t, "https://www.adzuna.com/details/4002", second.URL)
}

func TestFetchRemoteOnlyDropsOnsite(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPayload))
	})

	got, err := a.Fetch(context.Background(), jobs.Query{Keywords: "golang", RemoteOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "4001", got[0].ExternalID)
}

func TestFetchWithoutCredentials(t *testing.T) {
	a := New("", "", "us", zap.NewNop())

	got, err := a.Fetch(context.Background(), jobs.Query{Keywords: "golang"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, source.ErrNotConfigured)
}

func TestFetchBadStatus(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := a.Fetch(context.Background(), jobs.Query{Keywords: "golang"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestFetchMalformedPayload(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance page</html>"))
	})

	_, err := a.Fetch(context.Background(), jobs.Query{Keywords: "golang"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
