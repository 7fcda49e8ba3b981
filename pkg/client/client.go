// Package client provides the HTTP client for a PagerDuty-compatible
// on-call API: authentication, query encoding, and error handling for the
// /oncalls and /escalation_policies endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sre-utils/oncall-hours/pkg/oncall"
)

// Prometheus metrics for on-call API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_api_requests_total",
		Help: "Total on-call API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oncall_api_request_duration_seconds",
		Help:    "On-call API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_api_errors_total",
		Help: "Total on-call API errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the public PagerDuty REST API endpoint.
const DefaultBaseURL = "https://api.pagerduty.com"

// maxErrorBody bounds how much of an error response body is captured.
const maxErrorBody = 64 << 10

// Client is the on-call API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the on-call API; DefaultBaseURL if empty.
	BaseURL string

	// Token is the REST API token sent on every request.
	Token string

	// UserAgent identifies this tool to the upstream.
	UserAgent string

	// Timeout per HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(token string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Token:     token,
		UserAgent: "oncall-hours/1.0.0",
		Timeout:   30 * time.Second,
	}
}

// New creates a new on-call API client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "oncall-hours/1.0.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "oncall-api").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// oncallsPage is the wire shape of one /oncalls response.
type oncallsPage struct {
	Oncalls []oncall.Record `json:"oncalls"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	More    bool            `json:"more"`
	Total   int             `json:"total"`
}

// policiesResponse is the wire shape of the /escalation_policies response.
type policiesResponse struct {
	EscalationPolicies []oncall.EscalationPolicy `json:"escalation_policies"`
}

// FetchPage issues a single /oncalls query at the given offset and returns
// the page together with the server-reported exact total for the range
// (total=true is always sent; the total ignores limit and offset). Open
// bounds of r are omitted from the query.
func (c *Client) FetchPage(ctx context.Context, r oncall.Range, f oncall.Filter, limit, offset int) ([]oncall.Record, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("total", "true")
	if f.Earliest {
		q.Set("earliest", "true")
	}
	if !r.Since.IsZero() {
		q.Set("since", r.Since.Format(time.RFC3339))
	}
	if !r.Until.IsZero() {
		q.Set("until", r.Until.Format(time.RFC3339))
	}
	if f.TimeZone != "" {
		q.Set("time_zone", f.TimeZone)
	}
	for _, id := range f.UserIDs {
		q.Add("user_ids[]", id)
	}
	for _, id := range f.PolicyIDs {
		q.Add("escalation_policy_ids[]", id)
	}

	var page oncallsPage
	if err := c.get(ctx, "/oncalls", q, &page); err != nil {
		return nil, 0, err
	}
	return page.Oncalls, page.Total, nil
}

// ListEscalationPolicies returns the id/label pairs of all escalation
// policies in a single unpaginated read.
func (c *Client) ListEscalationPolicies(ctx context.Context) ([]oncall.EscalationPolicy, error) {
	var resp policiesResponse
	if err := c.get(ctx, "/escalation_policies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.EscalationPolicies, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
// Any non-200 status is returned as an *APIError carrying the response body;
// there is no retry, so a failed request aborts the caller's whole run.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	startTime := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	u := c.config.BaseURL + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token token="+c.config.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", q.Encode()).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(body),
		}
		apiErrorsTotal.WithLabelValues(string(apiErr.Class())).Inc()
		apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(apiErr.Class())).
			Msg("API request error")
		return apiErr
	}

	apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
