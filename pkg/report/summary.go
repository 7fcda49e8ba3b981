// Package report reduces on-call records into ranked per-user totals.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/sre-utils/oncall-hours/pkg/oncall"
)

// TimestampParseError reports a record timestamp that could not be parsed.
// It aborts the whole summary; a malformed record is never silently counted
// as zero hours.
type TimestampParseError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("parse record %s timestamp %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TimestampParseError) Unwrap() error {
	return e.Err
}

// UserHours is one row of the ranking.
type UserHours struct {
	UserID string
	Name   string
	Hours  float64
}

// Summarize totals (end - start) in hours per user and ranks the result in
// descending order. Records missing either bound carry no duration and are
// skipped. Users are keyed strictly by ID; when the upstream returns the
// same ID under different display names, the first-seen name labels the
// row. Equal totals keep first-encounter order.
func Summarize(records []oncall.Record) ([]UserHours, error) {
	totals := make(map[string]*UserHours)
	var order []string

	for _, rec := range records {
		if rec.Start == "" || rec.End == "" {
			continue
		}

		start, err := parseTimestamp("start", rec.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseTimestamp("end", rec.End)
		if err != nil {
			return nil, err
		}

		row, ok := totals[rec.User.ID]
		if !ok {
			row = &UserHours{UserID: rec.User.ID, Name: rec.User.Summary}
			totals[rec.User.ID] = row
			order = append(order, rec.User.ID)
		}
		row.Hours += end.Sub(start).Hours()
	}

	ranked := make([]UserHours, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *totals[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Hours > ranked[j].Hours
	})
	return ranked, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &TimestampParseError{Field: field, Value: value, Err: err}
	}
	return t, nil
}
