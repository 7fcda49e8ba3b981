// Package oncall defines the domain types shared across the library:
// on-call records as returned by the PagerDuty v2 REST API, query filters,
// and the caller-requested reporting range.
package oncall

import "time"

// MaxQuerySpan is the longest range the upstream accepts in a single
// /oncalls query. Longer ranges must be split into windows before querying.
const MaxQuerySpan = 90 * 24 * time.Hour

// User identifies an on-call participant.
type User struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// EscalationPolicy is a named routing configuration identifying which users
// are on call over time. The library only lists and filters by policies.
type EscalationPolicy struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// Record is one interval during which a user was on call. Start and End are
// RFC3339 timestamps as sent on the wire; either may be empty when the
// upstream has no bound for the entry, in which case the record carries no
// duration.
type Record struct {
	Start            string           `json:"start"`
	End              string           `json:"end"`
	User             User             `json:"user"`
	EscalationPolicy EscalationPolicy `json:"escalation_policy"`
}

// Filter narrows an /oncalls query. Empty ID slices mean "all". TimeZone is
// forwarded to the upstream verbatim.
type Filter struct {
	UserIDs   []string
	PolicyIDs []string
	Earliest  bool
	TimeZone  string
}

// Range is the caller-requested reporting interval (inclusive start,
// exclusive end). A zero Since or Until leaves that bound open; open bounds
// are omitted from the upstream query.
type Range struct {
	Since time.Time
	Until time.Time
}

// Bounded reports whether both ends of the range are set.
func (r Range) Bounded() bool {
	return !r.Since.IsZero() && !r.Until.IsZero()
}

// Span returns the elapsed length of a bounded range.
func (r Range) Span() time.Duration {
	return r.Until.Sub(r.Since)
}
