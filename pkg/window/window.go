// Package window splits a reporting range into consecutive sub-windows that
// each respect the upstream's maximum query span.
package window

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by Segment.
var (
	// ErrInvalidRange is returned when a range's start is not before its end.
	ErrInvalidRange = errors.New("invalid range: start must be before end")

	// ErrInvalidSpan is returned when the maximum span is not positive.
	ErrInvalidSpan = errors.New("invalid span: max span must be positive")
)

// Window is one sub-interval of a requested range (inclusive start,
// exclusive end).
type Window struct {
	Start time.Time
	End   time.Time
}

// Span returns the elapsed length of the window.
func (w Window) Span() time.Duration {
	return w.End.Sub(w.Start)
}

// Segment splits [start, end) into an ordered sequence of contiguous,
// non-overlapping windows of at most maxSpan each. The windows cover the
// range exactly: only the final window may be shorter than maxSpan, and its
// end equals end. The comparison against maxSpan uses raw elapsed time, not
// calendar arithmetic, matching the upstream limit which is defined in
// seconds.
func Segment(start, end time.Time, maxSpan time.Duration) ([]Window, error) {
	if maxSpan <= 0 {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidSpan, maxSpan)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w (start=%s end=%s)",
			ErrInvalidRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	if end.Sub(start) <= maxSpan {
		return []Window{{Start: start, End: end}}, nil
	}

	var windows []Window
	for cur := start; cur.Before(end); {
		next := cur.Add(maxSpan)
		if next.After(end) {
			next = end
		}
		windows = append(windows, Window{Start: cur, End: next})
		cur = next
	}
	return windows, nil
}
