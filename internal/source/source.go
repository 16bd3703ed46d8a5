// Package source defines the contract every job-provider adapter implements
// and the shared plumbing they build on. One adapter's failure must never
// propagate beyond its own Fetch call: the aggregator converts returned
// errors into diagnostics and moves on.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
)

// DefaultTimeout bounds every outbound provider call. A hung provider cannot
// stall the other adapters beyond this.
const DefaultTimeout = 15 * time.Second

// ErrNotConfigured signals that a provider's credentials are absent. The
// adapter skips cleanly; the aggregator records it as an unavailable source.
var ErrNotConfigured = errors.New("source credentials are not configured")

// Adapter translates one external provider's API into canonical job records.
// Fetch returns only listings that pass canonical validation; malformed
// individual entries are skipped and logged, never emitted.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, q jobs.Query) ([]jobs.Job, error)
}
