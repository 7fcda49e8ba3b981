// Command oncall-hours reports total on-call hours per user over a date
// range, querying a PagerDuty-compatible REST API. Ranges longer than the
// upstream's 90-day query span are fetched in windows and reassembled before
// summarizing.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/sre-utils/oncall-hours/pkg/client"
	"github.com/sre-utils/oncall-hours/pkg/logging"
	"github.com/sre-utils/oncall-hours/pkg/oncall"
	"github.com/sre-utils/oncall-hours/pkg/pagination"
	"github.com/sre-utils/oncall-hours/pkg/report"
)

// tokenEnv names the environment variable holding the REST API token.
const tokenEnv = "PAGERDUTY_TOKEN"

type options struct {
	since        string
	until        string
	users        string
	policies     string
	earliest     bool
	timeZone     string
	pageSize     int
	baseURL      string
	listPolicies bool
	logLevel     string
}

func parseArgs(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.since, "since", "", "range start (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&opts.until, "until", "", "range end, exclusive (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&opts.users, "users", "", "comma-separated user IDs to filter by")
	fs.StringVar(&opts.policies, "policies", "", "comma-separated escalation policy IDs to filter by")
	fs.BoolVar(&opts.earliest, "earliest", false, "only the earliest on-call per combination")
	fs.StringVar(&opts.timeZone, "timezone", "", "time zone passed to the upstream verbatim")
	fs.IntVar(&opts.pageSize, "page-size", pagination.DefaultPageSize, "records per page request")
	fs.StringVar(&opts.baseURL, "base-url", client.DefaultBaseURL, "on-call API base URL")
	fs.BoolVar(&opts.listPolicies, "list-policies", false, "list escalation policies and exit")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	fs := flag.NewFlagSet("oncall-hours", flag.ExitOnError)
	opts, err := parseArgs(fs, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "oncall-hours: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	// .env is optional; system env wins when both are present.
	_ = godotenv.Load()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(opts.logLevel),
		Output: os.Stderr,
	})
	logger := logging.NewLogger("oncall-hours")

	token := os.Getenv(tokenEnv)
	if token == "" {
		return fmt.Errorf("%s is not set", tokenEnv)
	}

	cfg := client.DefaultConfig(token)
	cfg.BaseURL = opts.baseURL
	api, err := client.New(cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx := context.Background()

	if opts.listPolicies {
		policies, err := api.ListEscalationPolicies(ctx)
		if err != nil {
			return fmt.Errorf("list escalation policies: %w", err)
		}
		renderPolicies(out, policies)
		return nil
	}

	rng, err := parseRange(opts.since, opts.until)
	if err != nil {
		return err
	}

	filter := oncall.Filter{
		UserIDs:   splitIDs(opts.users),
		PolicyIDs: splitIDs(opts.policies),
		Earliest:  opts.earliest,
		TimeZone:  opts.timeZone,
	}

	agg := pagination.NewAggregator(api, opts.pageSize, oncall.MaxQuerySpan)
	records, err := agg.Collect(ctx, rng, filter)
	if err != nil {
		return fmt.Errorf("collect on-call records: %w", err)
	}
	logger.Info().Int("records", len(records)).Msg("Collected on-call records")

	ranked, err := report.Summarize(records)
	if err != nil {
		return fmt.Errorf("summarize on-call records: %w", err)
	}

	renderSummary(out, ranked)
	return nil
}

// parseRange parses the optional since/until arguments; empty strings leave
// the corresponding bound open.
func parseRange(since, until string) (oncall.Range, error) {
	var r oncall.Range
	var err error
	if since != "" {
		if r.Since, err = parseDate(since); err != nil {
			return oncall.Range{}, fmt.Errorf("parse -since: %w", err)
		}
	}
	if until != "" {
		if r.Until, err = parseDate(until); err != nil {
			return oncall.Range{}, fmt.Errorf("parse -until: %w", err)
		}
	}
	return r, nil
}

// parseDate accepts a bare date or a full RFC3339 timestamp. Bare dates are
// taken as midnight UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

// splitIDs splits a comma-separated ID list, dropping empty entries.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func renderSummary(out io.Writer, ranked []report.UserHours) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tID\tHOURS")
	for i, row := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", i+1, row.Name, row.UserID, row.Hours)
	}
	w.Flush()
}

func renderPolicies(out io.Writer, policies []oncall.EscalationPolicy) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOLICY")
	for _, p := range policies {
		fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Summary)
	}
	w.Flush()
}
