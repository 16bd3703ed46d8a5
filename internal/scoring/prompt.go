package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/pii"
)

//go:embed prompt.md
var promptTemplate string

// maxDescriptionRunes bounds how much of a listing's description enters the
// prompt. Batches of five already make prompts large; full descriptions from
// some providers run to tens of kilobytes.
const maxDescriptionRunes = 1500

// promptProfile is the candidate profile as serialized into the prompt. The
// resume text is PII-scrubbed before it leaves the process.
type promptProfile struct {
	Resume           string   `json:"resume"`
	Keywords         []string `json:"keywords"`
	Locations        []string `json:"preferredLocations"`
	RemotePreference string   `json:"remotePreference"`
	MinimumSalary    int      `json:"minimumSalary,omitempty"`
	DealBreakers     []string `json:"dealBreakers"`
}

// promptJob is one listing as serialized into the prompt, PII-scrubbed and
// trimmed.
type promptJob struct {
	ExternalID  string `json:"externalId"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	Remote      bool   `json:"remote"`
	PostedAt    string `json:"postedAt,omitempty"`
	Description string `json:"description"`
}

func buildPrompt(batch []jobs.Job, profile jobs.Profile) (string, error) {
	p := promptProfile{
		Resume:           pii.Scrub(profile.Resume),
		Keywords:         profile.Keywords,
		Locations:        profile.Locations,
		RemotePreference: string(profile.RemotePreference),
		MinimumSalary:    profile.MinimumSalary,
		DealBreakers:     profile.DealBreakers,
	}

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	listings := make([]promptJob, 0, len(batch))
	for _, job := range batch {
		listing := promptJob{
			ExternalID:  job.ExternalID,
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			Remote:      job.Remote,
			Description: pii.Scrub(truncateRunes(job.Description, maxDescriptionRunes)),
		}
		if job.Salary != nil {
			listing.Salary = *job.Salary
		}
		if job.PostedAt != nil {
			listing.PostedAt = *job.PostedAt
		}
		listings = append(listings, listing)
	}

	jobsJSON, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal jobs payload: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{PROFILE_JSON}}", string(profileJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOBS_JSON}}", string(jobsJSON))
	return prompt, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
