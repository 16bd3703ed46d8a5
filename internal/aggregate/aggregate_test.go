package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/source"
)

type stubAdapter struct {
	name  string
	jobs  []jobs.Job
	err   error
	delay time.Duration
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context, _ jobs.Query) ([]jobs.Job, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.jobs, nil
}

func job(id string, src jobs.Source, title, company string) jobs.Job {
	return jobs.Job{
		ExternalID: id,
		Source:     src,
		Title:      title,
		Company:    company,
		Location:   "Unknown",
		URL:        fmt.Sprintf("https://example.com/%s", id),
	}
}

func TestAggregatePartialFailureIsolation(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&stubAdapter{name: "adzuna", jobs: []jobs.Job{job("a1", jobs.SourceAdzuna, "Backend Engineer", "Acme")}},
		&stubAdapter{name: "jooble", err: errors.New("bad status: 500 Internal Server Error")},
		&stubAdapter{name: "remotive", jobs: []jobs.Job{job("r1", jobs.SourceRemotive, "SRE", "Globex")}},
		&stubAdapter{name: "themuse", jobs: []jobs.Job{job("m1", jobs.SourceTheMuse, "Platform Engineer", "Hooli")}},
	}

	result := New(adapters, zap.NewNop()).Aggregate(context.Background(), jobs.Query{Keywords: "go"})

	require.Len(t, result.Jobs, 3)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "jooble")
	assert.Contains(t, result.Errors[0], "bad status")
}

func TestAggregateKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	// The slower first adapter must still contribute first.
	adapters := []source.Adapter{
		&stubAdapter{name: "adzuna", delay: 50 * time.Millisecond,
			jobs: []jobs.Job{job("a1", jobs.SourceAdzuna, "Backend Engineer", "Acme")}},
		&stubAdapter{name: "remotive",
			jobs: []jobs.Job{job("r1", jobs.SourceRemotive, "SRE", "Globex")}},
	}

	result := New(adapters, zap.NewNop()).Aggregate(context.Background(), jobs.Query{})

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, jobs.SourceAdzuna, result.Jobs[0].Source)
	assert.Equal(t, jobs.SourceRemotive, result.Jobs[1].Source)
}

func TestAggregateDedupAcrossSources(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&stubAdapter{name: "adzuna",
			jobs: []jobs.Job{job("a1", jobs.SourceAdzuna, "Backend Engineer", "Acme")}},
		&stubAdapter{name: "remotive",
			jobs: []jobs.Job{job("r1", jobs.SourceRemotive, "backend   engineer", "ACME")}},
	}

	result := New(adapters, zap.NewNop()).Aggregate(context.Background(), jobs.Query{})

	// The earlier-registered source is authoritative for duplicates.
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "Backend Engineer", result.Jobs[0].Title)
	assert.Equal(t, "Acme", result.Jobs[0].Company)
	assert.Equal(t, jobs.SourceAdzuna, result.Jobs[0].Source)
}

func TestAggregateAllSourcesFailing(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&stubAdapter{name: "adzuna", err: source.ErrNotConfigured},
		&stubAdapter{name: "jooble", err: source.ErrNotConfigured},
	}

	result := New(adapters, zap.NewNop()).Aggregate(context.Background(), jobs.Query{})

	assert.Empty(t, result.Jobs)
	assert.Len(t, result.Errors, 2)
}
