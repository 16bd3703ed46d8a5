// Package jooble adapts the Jooble search API to the canonical job shape.
// Jooble is POST-based: the API key is part of the URL path.
package jooble

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/source"
)

const defaultAPIURL = "https://jooble.org/api"

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
		logger: logger.WithFields(log, logger.SourceFields(string(jobs.SourceJooble), "")...),
	}
}

func (a *Adapter) Name() string { return string(jobs.SourceJooble) }

type request struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
}

type response struct {
	TotalCount int     `json:"totalCount"`
	Jobs       []entry `json:"jobs"`
}

// entry mirrors one Jooble listing. The id is numeric on the wire.
type entry struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Type     string `json:"type"`
	Link     string `json:"link"`
	Company  string `json:"company"`
	Updated  string `json:"updated"`
}

func (a *Adapter) Fetch(ctx context.Context, query jobs.Query) ([]jobs.Job, error) {
	if a.APIKey == "" {
		return nil, source.ErrNotConfigured
	}

	payload := request{Keywords: query.Keywords, Location: query.Location}
	endpoint := fmt.Sprintf("%s/%s", a.APIURL, a.APIKey)

	var resp response
	if err := source.PostJSON(ctx, a.HTTPClient, endpoint, payload, &resp); err != nil {
		return nil, fmt.Errorf("jooble search: %w", err)
	}

	out := make([]jobs.Job, 0, len(resp.Jobs))
	for _, e := range resp.Jobs {
		job, ok := a.normalize(e, query)
		if !ok {
			continue
		}
		out = append(out, job)
	}

	return out, nil
}

func (a *Adapter) normalize(e entry, query jobs.Query) (jobs.Job, bool) {
	id := strconv.FormatInt(e.ID, 10)
	description := source.StripHTML(e.Snippet)

	remote := strings.EqualFold(strings.TrimSpace(e.Type), "remote") ||
		source.InferRemote(e.Title, e.Location, description)
	if query.RemoteOnly && !remote {
		return jobs.Job{}, false
	}

	location := strings.TrimSpace(e.Location)
	if location == "" {
		location = "Unknown"
	}

	listingURL := strings.TrimSpace(e.Link)
	if listingURL == "" {
		listingURL = fmt.Sprintf("https://jooble.org/desc/%s", id)
	}

	// Jooble pre-formats salary as free text; empty means unknown.
	var salary *string
	if s := strings.TrimSpace(e.Salary); s != "" {
		salary = &s
	}

	job := jobs.Job{
		ExternalID:  id,
		Source:      jobs.SourceJooble,
		Title:       strings.TrimSpace(e.Title),
		Company:     strings.TrimSpace(e.Company),
		Location:    location,
		Description: description,
		Salary:      salary,
		URL:         listingURL,
		PostedAt:    source.NormalizeDate(e.Updated),
		Remote:      remote,
	}

	if err := job.Validate(); err != nil {
		a.logger.Debug("skipping malformed jooble listing",
			zap.String("external_id", id),
			zap.Error(err),
		)
		return jobs.Job{}, false
	}

	return job, true
}
