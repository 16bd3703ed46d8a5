// Package pii removes personally identifying patterns from free text before
// it crosses the system boundary to the AI provider.
package pii

import "regexp"

// Placeholder tokens substituted for redacted matches.
const (
	RedactedSSN   = "[REDACTED-SSN]"
	RedactedEmail = "[REDACTED-EMAIL]"
	RedactedPhone = "[REDACTED-PHONE]"
)

// rules are applied in order. SSN-like sequences go first so the looser
// phone pattern never consumes half of one; later rules operate on
// already-partially-redacted text and must not re-expose anything.
var rules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\b\d{3}[- ]\d{2}[- ]\d{4}\b`), RedactedSSN},
	{regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`), RedactedEmail},
	{regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`), RedactedPhone},
}

// Scrub replaces emails, phone numbers and national-ID-like sequences with
// fixed placeholder tokens. It is pure and total: any string in, a string
// out, no failure mode.
func Scrub(text string) string {
	for _, rule := range rules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return text
}
