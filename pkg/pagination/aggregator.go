package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sre-utils/oncall-hours/pkg/oncall"
	"github.com/sre-utils/oncall-hours/pkg/window"
)

var windowsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "oncall_windows_fetched_total",
	Help: "Total windows fetched, including single-window ranges",
})

// Aggregator drives segmentation and per-window fetching across a whole
// reporting range.
type Aggregator struct {
	fetcher *Fetcher
	maxSpan time.Duration
	logger  zerolog.Logger
}

// NewAggregator creates an aggregator over the given source. A non-positive
// maxSpan falls back to oncall.MaxQuerySpan; the span limit is upstream
// configuration, not ours, so callers should only override it when the
// upstream changes.
func NewAggregator(source PageSource, pageSize int, maxSpan time.Duration) *Aggregator {
	if maxSpan <= 0 {
		maxSpan = oncall.MaxQuerySpan
	}
	return &Aggregator{
		fetcher: NewFetcher(source, pageSize),
		maxSpan: maxSpan,
		logger:  log.With().Str("component", "aggregator").Logger(),
	}
}

// Collect returns every on-call record in the range, in window order then
// page order. Ranges within the span limit, and ranges with an open bound,
// are fetched with a single unsegmented query; the upstream applies its own
// default window to open bounds. Any window or page failure aborts the
// collection with no partial result.
func (a *Aggregator) Collect(ctx context.Context, r oncall.Range, filter oncall.Filter) ([]oncall.Record, error) {
	if r.Bounded() && !r.Since.Before(r.Until) {
		return nil, fmt.Errorf("%w (since=%s until=%s)",
			window.ErrInvalidRange, r.Since.Format(time.RFC3339), r.Until.Format(time.RFC3339))
	}

	if !r.Bounded() || r.Span() <= a.maxSpan {
		windowsFetchedTotal.Inc()
		return a.fetcher.FetchWindow(ctx, r, filter)
	}

	windows, err := window.Segment(r.Since, r.Until, a.maxSpan)
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Time("since", r.Since).
		Time("until", r.Until).
		Int("windows", len(windows)).
		Msg("Range exceeds max query span, fetching in windows")

	var records []oncall.Record
	for i, w := range windows {
		windowsFetchedTotal.Inc()
		part, err := a.fetcher.FetchWindow(ctx, oncall.Range{Since: w.Start, Until: w.End}, filter)
		if err != nil {
			return nil, fmt.Errorf("window %d/%d [%s, %s): %w",
				i+1, len(windows), w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), err)
		}
		records = append(records, part...)

		a.logger.Debug().
			Int("window", i+1).
			Int("windows", len(windows)).
			Int("records", len(part)).
			Msg("Window complete")
	}
	return records, nil
}
