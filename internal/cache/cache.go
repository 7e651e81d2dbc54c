// Package cache provides the short-lived read-through cache in front of the
// survey list endpoint. Freshness is decided by a pure predicate over an
// explicit timestamped entry, so it is testable without any I/O.
package cache

import (
	"time"

	"github.com/dmafb/checkin/internal/api"
)

// DefaultSurveyListTTL is the freshness window for the survey list snapshot.
const DefaultSurveyListTTL = 10 * time.Second

// Entry is one cached survey-list snapshot. Only a single snapshot exists at
// a time; every successful live fetch overwrites it.
type Entry struct {
	CapturedAt time.Time             `json:"capturedAt"`
	Items      []api.SurveyListEntry `json:"items"`
}

// Fresh reports whether the entry was captured within ttl of now. A
// zero-valued entry is never fresh.
func Fresh(e Entry, now time.Time, ttl time.Duration) bool {
	if e.CapturedAt.IsZero() {
		return false
	}
	return now.Sub(e.CapturedAt) < ttl
}
