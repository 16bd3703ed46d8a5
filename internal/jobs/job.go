package jobs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Source identifies the provider a listing came from. It is part of the
// audit trail and survives deduplication.
type Source string

const (
	SourceAdzuna   Source = "adzuna"
	SourceJooble   Source = "jooble"
	SourceRemotive Source = "remotive"
	SourceTheMuse  Source = "themuse"
)

// Job is the canonical, source-agnostic listing shape every adapter must
// produce. Instances are immutable once they leave an adapter: dedup and
// scoring derive new records rather than mutating in place.
type Job struct {
	ExternalID  string  `json:"external_id" validate:"required"`
	Source      Source  `json:"source" validate:"required,oneof=adzuna jooble remotive themuse"`
	Title       string  `json:"title" validate:"required"`
	Company     string  `json:"company" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Description string  `json:"description"`
	Salary      *string `json:"salary,omitempty"`
	URL         string  `json:"url" validate:"required,url"`
	PostedAt    *string `json:"posted_at,omitempty"`
	Remote      bool    `json:"remote"`
}

// ScoredJob is a Job annotated with the AI match score and its reasoning.
type ScoredJob struct {
	Job
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether the job satisfies the canonical contract.
// Adapters call it before emitting a listing; anything failing validation is
// dropped at the adapter boundary and never passed downstream.
func (j *Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("canonical job validation: %w", err)
	}
	return nil
}

// DumpToTmpFile writes the scored jobs to a temporary JSON file and returns
// its name. Useful for operators inspecting a run's output.
func DumpToTmpFile(scored []ScoredJob) (string, error) {
	file, err := os.CreateTemp("", "scored_jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scored); err != nil {
		return "", err
	}
	return file.Name(), nil
}
