package pagination

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sre-utils/oncall-hours/pkg/oncall"
)

// Prometheus metrics for pagination operations.
var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oncall_pages_fetched_total",
		Help: "Total pages fetched across all windows",
	})

	recordsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oncall_records_fetched_total",
		Help: "Total on-call records fetched",
	})
)

// DefaultPageSize is the upstream maximum page size.
const DefaultPageSize = 100

// PageSource is the interface the API client implements for single-page
// fetching.
type PageSource interface {
	// FetchPage fetches one page at the given offset and returns it with
	// the server-reported exact total for the range (independent of limit
	// and offset).
	FetchPage(ctx context.Context, r oncall.Range, f oncall.Filter, limit, offset int) ([]oncall.Record, int, error)
}

// Fetcher drains every page of one query range.
type Fetcher struct {
	source   PageSource
	pageSize int
	logger   zerolog.Logger
}

// NewFetcher creates a fetcher over the given source. A non-positive
// pageSize falls back to DefaultPageSize.
func NewFetcher(source PageSource, pageSize int) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{
		source:   source,
		pageSize: pageSize,
		logger:   log.With().Str("component", "pagination").Logger(),
	}
}

// FetchWindow accumulates pages at offsets 0, pageSize, 2*pageSize, ...
// until the accumulated record count reaches the server-reported total. The
// offset always advances by the page size: upstream offsets are positional,
// and a page near the end of the range may hold fewer records than the page
// size. A first response that already satisfies the total (including a zero
// total) ends the loop after a single request.
func (f *Fetcher) FetchWindow(ctx context.Context, r oncall.Range, filter oncall.Filter) ([]oncall.Record, error) {
	var records []oncall.Record
	for offset := 0; ; offset += f.pageSize {
		page, total, err := f.source.FetchPage(ctx, r, filter, f.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		pagesFetchedTotal.Inc()
		records = append(records, page...)

		f.logger.Debug().
			Int("offset", offset).
			Int("page_records", len(page)).
			Int("accumulated", len(records)).
			Int("total", total).
			Msg("Fetched page")

		if len(records) >= total {
			recordsFetchedTotal.Add(float64(len(records)))
			return records, nil
		}
		if len(page) == 0 {
			// The reported total will never be reached on empty pages.
			return nil, fmt.Errorf("empty page at offset %d with %d of %d records fetched",
				offset, len(records), total)
		}
	}
}
