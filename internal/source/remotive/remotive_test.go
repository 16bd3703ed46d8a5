package remotive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
)

const searchPayload = `{
  "job-count": 3,
  "jobs": [
    {
      "id": 7001,
      "url": "https://remotive.com/remote-jobs/software-dev/backend-engineer-7001",
      "title": "Backend Engineer",
      "company_name": "Acme",
      "category": "Software Development",
      "job_type": "full_time",
      "publication_date": "2025-08-02T08:00:00",
      "candidate_required_location": "Worldwide",
      "salary": "$100,000/year",
      "description": "<div><p>Own our Go services end to end.</p></div>"
    },
    {
      "id": 7002,
      "url": "",
      "title": "Data Engineer",
      "company_name": "Globex",
      "publication_date": "",
      "candidate_required_location": "USA Only",
      "salary": "",
      "description": "ETL pipelines."
    },
    {
      "id": 7003,
      "url": "https://remotive.com/remote-jobs/x",
      "title": "Unnamed Co Role",
      "company_name": "",
      "candidate_required_location": "Worldwide",
      "description": "company missing"
    }
  ]
}`

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPayload))
	}))
	t.Cleanup(server.Close)

	a := New(zap.NewNop())
	a.APIURL = server.URL
	return a
}

func TestFetchNormalizes(t *testing.T) {
	a := newTestAdapter(t)

	got, err := a.Fetch(context.Background(), jobs.Query{Keywords: "engineer"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "7001", first.ExternalID)
	assert.Equal(t, jobs.SourceRemotive, first.Source)
	assert.True(t, first.Remote)
	assert.Equal(t, "Worldwide", first.Location)
	assert.Equal(t, "Own our Go services end to end.", first.Description)
	require.NotNil(t, first.Salary)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, "2025-08-02", *first.PostedAt)

	second := got[1]
	assert.Nil(t, second.Salary)
	assert.Nil(t, second.PostedAt)
	// Fallback URL synthesized from the listing id.
	assert.Equal(t, "https://remotive.com/remote-jobs/7002", second.URL)
}

func TestFetchFiltersByLocation(t *testing.T) {
	a := newTestAdapter(t)

	got, err := a.Fetch(context.Background(), jobs.Query{Keywords: "engineer", Location: "Berlin"})
	require.NoError(t, err)

	// Worldwide listings survive a location preference, region-locked ones
	// that do not mention it are dropped.
	require.Len(t, got, 1)
	assert.Equal(t, "7001", got[0].ExternalID)
}
