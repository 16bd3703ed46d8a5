package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrub(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		gone     []string
		expected []string
	}{
		{
			name:     "email and phone",
			input:    "Contact jane.doe@example.com or call 555-123-4567 for details.",
			gone:     []string{"jane.doe@example.com", "555-123-4567"},
			expected: []string{RedactedEmail, RedactedPhone},
		},
		{
			name:     "ssn like sequence",
			input:    "SSN on file: 123-45-6789.",
			gone:     []string{"123-45-6789"},
			expected: []string{RedactedSSN},
		},
		{
			name:     "international phone",
			input:    "Call +1 415 555 0199 today",
			gone:     []string{"415 555 0199"},
			expected: []string{RedactedPhone},
		},
		{
			name:     "parenthesized area code",
			input:    "Recruiter: (555) 123-4567",
			gone:     []string{"(555) 123-4567"},
			expected: []string{RedactedPhone},
		},
		{
			name:     "clean text untouched",
			input:    "Senior Go engineer, Kubernetes experience required.",
			expected: []string{"Senior Go engineer, Kubernetes experience required."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := Scrub(tc.input)
			for _, s := range tc.gone {
				assert.NotContains(t, out, s)
			}
			for _, s := range tc.expected {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestScrubIsIdempotent(t *testing.T) {
	t.Parallel()

	input := "mail me at jane.doe@example.com, ssn 123-45-6789, tel 555-123-4567"
	once := Scrub(input)
	twice := Scrub(once)
	assert.Equal(t, once, twice)
}

func TestScrubDoesNotReExposeAcrossRules(t *testing.T) {
	t.Parallel()

	// An SSN adjacent to an email must not survive either rule.
	out := Scrub("123-45-6789jane@example.com")
	assert.NotContains(t, out, "123-45-6789")
	assert.NotContains(t, out, "jane@example.com")
	assert.False(t, strings.Contains(out, "@"))
}
