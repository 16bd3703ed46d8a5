package jobs

import "strings"

// RemotePreference expresses how strongly the candidate wants remote work.
type RemotePreference string

const (
	RemoteOnly   RemotePreference = "remote_only"
	Hybrid       RemotePreference = "hybrid"
	Onsite       RemotePreference = "onsite"
	NoPreference RemotePreference = "no_preference"
)

// ParseRemotePreference maps a config string onto a known preference,
// defaulting to no_preference for unrecognized input.
func ParseRemotePreference(s string) RemotePreference {
	switch RemotePreference(strings.ToLower(strings.TrimSpace(s))) {
	case RemoteOnly:
		return RemoteOnly
	case Hybrid:
		return Hybrid
	case Onsite:
		return Onsite
	default:
		return NoPreference
	}
}

// Profile is the candidate's search profile. It is an immutable input to a
// single scoring run; the resume text is PII-scrubbed before it leaves the
// process.
type Profile struct {
	Resume           string
	Keywords         []string
	Locations        []string
	RemotePreference RemotePreference
	MinimumSalary    int
	DealBreakers     []string
}

// Query is the search tuple handed to every source adapter.
type Query struct {
	Keywords   string
	Location   string
	RemoteOnly bool
}
