// Package pagination implements exhaustive retrieval of on-call records
// across an arbitrarily large reporting range.
//
// The upstream API constrains a single /oncalls query twice over: the range
// may not exceed the maximum query span, and each response carries at most
// one page of records. The Fetcher drains one window page by page against
// the server-reported exact total; the Aggregator splits the requested
// range into span-limited windows and concatenates the per-window results
// in window order.
//
// Example usage:
//
//	agg := pagination.NewAggregator(apiClient, pagination.DefaultPageSize, oncall.MaxQuerySpan)
//	records, err := agg.Collect(ctx, oncall.Range{Since: since, Until: until}, filter)
//
// Fetching is strictly sequential: pagination for one window fully drains
// before the next window begins, and the final record order is window order
// then page order. Any failed request aborts the whole collection; partial
// results are never returned.
package pagination
