package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces provider markup to plain text. Providers disagree on
// whether descriptions are HTML or plain; goquery tolerates both.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	text := doc.Text()
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

var remoteHints = []string{
	"remote",
	"work from home",
	"work-from-home",
	"anywhere",
	"fully distributed",
	"telecommute",
}

// InferRemote guesses whether a listing is remote from free text when the
// provider has no structured flag. Best effort only.
func InferRemote(texts ...string) bool {
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, hint := range remoteHints {
			if strings.Contains(lower, hint) {
				return true
			}
		}
	}
	return false
}

// FormatSalary derives a single human-readable salary string from the
// disjoint min/max/currency/period fields providers expose. Returns nil when
// neither bound is known, so the canonical record carries a null salary
// rather than an empty one.
func FormatSalary(min, max float64, currency, period string) *string {
	if min <= 0 && max <= 0 {
		return nil
	}

	var s string
	switch {
	case min > 0 && max > 0 && min != max:
		s = fmt.Sprintf("%s–%s", formatAmount(min), formatAmount(max))
	case min > 0:
		s = "from " + formatAmount(min)
	default:
		s = "up to " + formatAmount(max)
	}

	if currency = strings.TrimSpace(strings.ToUpper(currency)); currency != "" {
		s += " " + currency
	}
	if period = strings.TrimSpace(strings.ToLower(period)); period != "" {
		s += " per " + period
	}
	return &s
}

// formatAmount renders a monetary value with thousands separators and no
// fractional part. Salaries below one are not a thing.
func formatAmount(v float64) string {
	n := int64(v + 0.5)
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	var parts []string
	for n > 0 {
		if n < 1000 {
			parts = append([]string{fmt.Sprintf("%d", n)}, parts...)
			break
		}
		parts = append([]string{fmt.Sprintf("%03d", n%1000)}, parts...)
		n /= 1000
	}
	return strings.Join(parts, ",")
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate parses the posting timestamp formats seen across providers
// and reduces them to an ISO-8601 date. Returns nil when unparsable;
// downstream treats the posting date as unknown rather than guessing.
func NormalizeDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			date := t.Format("2006-01-02")
			return &date
		}
	}
	return nil
}
