package aggregate

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jobradar/jobradar/internal/jobs"
)

// keySeparator joins the normalized title and company. The unit separator
// cannot appear in normal listing text, so distinct pairs cannot collide.
const keySeparator = "\x1f"

// Deduplicate collapses listings that share a normalized title and company.
// First occurrence wins: the input order (the aggregator's registration
// order) decides which provider's copy is authoritative. Two distinct
// postings with the same title and company at different locations are merged
// on purpose; that trade-off is documented, not accidental.
func Deduplicate(list []jobs.Job) []jobs.Job {
	seen := make(map[string]struct{}, len(list))
	out := make([]jobs.Job, 0, len(list))

	for _, job := range list {
		key := dedupKey(job.Title, job.Company)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}

	return out
}

func dedupKey(title, company string) string {
	return normalizeKeyPart(title) + keySeparator + normalizeKeyPart(company)
}

// normalizeKeyPart lowercases, collapses whitespace and applies NFKC so that
// visually equivalent unicode variants produce the same dedup key.
func normalizeKeyPart(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
