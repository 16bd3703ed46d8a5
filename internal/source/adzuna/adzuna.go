// Package adzuna adapts the Adzuna search API to the canonical job shape.
package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/source"
)

const (
	defaultAPIURL  = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry = "us"
	resultsPerPage = 50
)

// Adapter fetches listings from Adzuna. Requires an app id / app key pair;
// without both it skips cleanly.
type Adapter struct {
	AppID      string
	AppKey     string
	Country    string
	APIURL     string
	HTTPClient *http.Client

	logger *zap.Logger
}

func New(appID, appKey, country string, log *zap.Logger) *Adapter {
	if country = strings.TrimSpace(country); country == "" {
		country = defaultCountry
	}
	return &Adapter{
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		APIURL:  defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: source.DefaultTimeout,
		},
		logger: logger.WithFields(log, logger.SourceFields(string(jobs.SourceAdzuna), "")...),
	}
}

func (a *Adapter) Name() string { return string(jobs.SourceAdzuna) }

type response struct {
	Results []result `json:"results"`
	Count   int      `json:"count"`
}

type result struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Company     company `json:"company"`
	Location    area    `json:"location"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
}

type company struct {
	DisplayName string `json:"display_name"`
}

type area struct {
	DisplayName string `json:"display_name"`
}

// Fetch queries the first page of Adzuna results for the search tuple.
func (a *Adapter) Fetch(ctx context.Context, query jobs.Query) ([]jobs.Job, error) {
	if a.AppID == "" || a.AppKey == "" {
		return nil, source.ErrNotConfigured
	}

	q := url.Values{}
	q.Set("app_id", a.AppID)
	q.Set("app_key", a.AppKey)
	q.Set("results_per_page", fmt.Sprintf("%d", resultsPerPage))
	q.Set("what", query.Keywords)
	if query.Location != "" {
		q.Set("where", query.Location)
	}
	q.Set("content-type", "application/json")

	endpoint := fmt.Sprintf("%s/%s/search/1", a.APIURL, a.Country)

	var resp response
	if err := source.GetJSON(ctx, a.HTTPClient, endpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}

	out := make([]jobs.Job, 0, len(resp.Results))
	for _, r := range resp.Results {
		job, ok := a.normalize(r, query)
		if !ok {
			continue
		}
		out = append(out, job)
	}

	return out, nil
}

func (a *Adapter) normalize(r result, query jobs.Query) (jobs.Job, bool) {
	description := source.StripHTML(r.Description)
	remote := source.InferRemote(r.Title, r.Location.DisplayName, description)
	if query.RemoteOnly && !remote {
		return jobs.Job{}, false
	}

	location := strings.TrimSpace(r.Location.DisplayName)
	if location == "" {
		location = "Unknown"
	}

	listingURL := strings.TrimSpace(r.RedirectURL)
	if listingURL == "" {
		// Adzuna occasionally omits the redirect; the details page is
		// always addressable by id.
		listingURL = fmt.Sprintf("https://www.adzuna.com/details/%s", r.ID)
	}

	job := jobs.Job{
		ExternalID:  r.ID,
		Source:      jobs.SourceAdzuna,
		Title:       strings.TrimSpace(r.Title),
		Company:     strings.TrimSpace(r.Company.DisplayName),
		Location:    location,
		Description: description,
		Salary:      source.FormatSalary(r.SalaryMin, r.SalaryMax, "", "year"),
		URL:         listingURL,
		PostedAt:    source.NormalizeDate(r.Created),
		Remote:      remote,
	}

	if err := job.Validate(); err != nil {
		a.logger.Debug("skipping malformed adzuna listing",
			zap.String("external_id", r.ID),
			zap.Error(err),
		)
		return jobs.Job{}, false
	}

	return job, true
}
