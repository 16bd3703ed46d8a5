// Package themuse adapts The Muse public jobs API to the canonical job
// shape. The API key raises rate limits but is optional; the adapter only
// requires it when configured to.
package themuse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/source"
)

const defaultAPIURL = "https://www.themuse.com/api/public/jobs"

type Adapter struct {
	APIKey     string
	APIURL     string
	HTTPClient *http.Client

	logger *zap.Logger
}

func New(apiKey string, log *zap.Logger) *Adapter {
	return &Adapter{
		APIKey: apiKey,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: source.DefaultTimeout,
		},
		logger: logger.WithFields(log, logger.SourceFields(string(jobs.SourceTheMuse), "")...),
	}
}

func (a *Adapter) Name() string { return string(jobs.SourceTheMuse) }

type response struct {
	Results []entry `json:"results"`
	Page    int     `json:"page"`
}

type entry struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Contents        string     `json:"contents"`
	PublicationDate string     `json:"publication_date"`
	Locations       []namedRef `json:"locations"`
	Company         namedRef   `json:"company"`
	Refs            refs       `json:"refs"`
}

type namedRef struct {
	Name string `json:"name"`
}

type refs struct {
	LandingPage string `json:"landing_page"`
}

func (a *Adapter) Fetch(ctx context.Context, query jobs.Query) ([]jobs.Job, error) {
	q := url.Values{}
	q.Set("page", "1")
	if a.APIKey != "" {
		q.Set("api_key", a.APIKey)
	}
	if query.Location != "" {
		q.Set("location", query.Location)
	}

	var resp response
	if err := source.GetJSON(ctx, a.HTTPClient, a.APIURL, q, &resp); err != nil {
		return nil, fmt.Errorf("themuse search: %w", err)
	}

	keywords := strings.ToLower(strings.TrimSpace(query.Keywords))

	out := make([]jobs.Job, 0, len(resp.Results))
	for _, e := range resp.Results {
		job, ok := a.normalize(e, query, keywords)
		if !ok {
			continue
		}
		out = append(out, job)
	}

	return out, nil
}

func (a *Adapter) normalize(e entry, query jobs.Query, keywords string) (jobs.Job, bool) {
	id := strconv.FormatInt(e.ID, 10)
	description := source.StripHTML(e.Contents)

	// The Muse has no keyword parameter; filter client-side on title and
	// description so results respect the search tuple.
	if keywords != "" &&
		!strings.Contains(strings.ToLower(e.Name), keywords) &&
		!strings.Contains(strings.ToLower(description), keywords) {
		return jobs.Job{}, false
	}

	var locations []string
	for _, loc := range e.Locations {
		if name := strings.TrimSpace(loc.Name); name != "" {
			locations = append(locations, name)
		}
	}

	location := "Unknown"
	if len(locations) > 0 {
		location = strings.Join(locations, "; ")
	}

	remote := source.InferRemote(append(locations, e.Name, description)...)
	if query.RemoteOnly && !remote {
		return jobs.Job{}, false
	}

	listingURL := strings.TrimSpace(e.Refs.LandingPage)
	if listingURL == "" {
		listingURL = fmt.Sprintf("https://www.themuse.com/jobs/%s", id)
	}

	job := jobs.Job{
		ExternalID:  id,
		Source:      jobs.SourceTheMuse,
		Title:       strings.TrimSpace(e.Name),
		Company:     strings.TrimSpace(e.Company.Name),
		Location:    location,
		Description: description,
		Salary:      nil, // The Muse does not expose salary data.
		URL:         listingURL,
		PostedAt:    source.NormalizeDate(e.PublicationDate),
		Remote:      remote,
	}

	if err := job.Validate(); err != nil {
		a.logger.Debug("skipping malformed themuse listing",
			zap.String("external_id", id),
			zap.Error(err),
		)
		return jobs.Job{}, false
	}

	return job, true
}
