// Package remotive adapts the Remotive public API to the canonical job
// shape. Remotive needs no credentials and lists remote jobs exclusively.
package remotive

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

const defaultAPIURL = "https://remotive.com/api/remote-jobs"

type Adapter struct {
	APIURL     string
	HTTPClient *http.Client

	logger *zap.Logger
}

func New(log *zap.Logger) *Adapter {
	return &Adapter{
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: source.DefaultTimeout,
		},
		logger: logger.WithFields(log, logger.SourceFields(string(jobs.SourceRemotive), "")...),
	}
}

func (a *Adapter) Name() string { return string(jobs.SourceRemotive) }

type response struct {
	JobCount int     `json:"job-count"`
	Jobs     []entry `json:"jobs"`
}

type entry struct {
	ID                        int64  `json:"id"`
	URL                       string `json:"url"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	Category                  string `json:"category"`
	JobType                   string `json:"job_type"`
	PublicationDate           string `json:"publication_date"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Salary                    string `json:"salary"`
	Description               string `json:"description"`
}

func (a *Adapter) Fetch(ctx context.Context, query jobs.Query) ([]jobs.Job, error) {
	q := url.Values{}
	if query.Keywords != "" {
		q.Set("search", query.Keywords)
	}

	var resp response
	if err := source.GetJSON(ctx, a.HTTPClient, a.APIURL, q, &resp); err != nil {
		return nil, fmt.Errorf("remotive search: %w", err)
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

	// Remotive restricts candidate location even though every role is
	// remote; an explicit location preference still filters on it.
	location := strings.TrimSpace(e.CandidateRequiredLocation)
	if location == "" {
		location = "Unknown"
	}
	if query.Location != "" && location != "Unknown" &&
		!strings.Contains(strings.ToLower(location), strings.ToLower(query.Location)) &&
		!strings.Contains(strings.ToLower(location), "worldwide") &&
		!strings.Contains(strings.ToLower(location), "anywhere") {
		return jobs.Job{}, false
	}

	listingURL := strings.TrimSpace(e.URL)
	if listingURL == "" {
		listingURL = fmt.Sprintf("https://remotive.com/remote-jobs/%s", id)
	}

	var salary *string
	if s := strings.TrimSpace(e.Salary); s != "" {
		salary = &s
	}

	job := jobs.Job{
		ExternalID:  id,
		Source:      jobs.SourceRemotive,
		Title:       strings.TrimSpace(e.Title),
		Company:     strings.TrimSpace(e.CompanyName),
		Location:    location,
		Description: source.StripHTML(e.Description),
		Salary:      salary,
		URL:         listingURL,
		PostedAt:    source.NormalizeDate(e.PublicationDate),
		Remote:      true,
	}

	if err := job.Validate(); err != nil {
		a.logger.Debug("skipping malformed remotive listing",
			zap.String("external_id", id),
			zap.Error(err),
		)
		return jobs.Job{}, false
	}

	return job, true
}
