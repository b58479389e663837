// Package completion talks to the vendor's search-suggestion endpoint.
package completion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/cloo-solutions/suggestscore/internal/telemetry"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the vendor's completion host
	DefaultBaseURL = "https://completion.amazon.com"
	// DefaultTimeout bounds a single vendor call
	DefaultTimeout = 5 * time.Second

	completePath = "/search/complete"

	// searchAlias selects the "search all departments" catalog scope.
	searchAlias = "aps"
	// clientID identifies the calling UI to the vendor.
	clientID = "amazon-search-ui"
	// marketFlag is undocumented; the endpoint degrades without it.
	marketFlag = "1"

	userAgent = "suggestscore/1.0"
)

// CallObserver is told about every finished vendor call.
type CallObserver interface {
	ObserveVendorCall(err error, elapsed time.Duration)
}

// Config holds the vendor client settings
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   CallObserver
}

// Client fetches suggestion phrases for one query at a time.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	observer   CallObserver
}

// NewClient creates a new vendor client using defaults.
func NewClient() *Client {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig creates a new vendor client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		observer:   cfg.Observer,
	}
}

// Fetch issues one suggestion query and returns the parsed phrases in vendor order.
// Transport failures, timeouts and non-2xx statuses are network errors; a body that
// is not valid UTF-8 text is a parse error. An answer without suggestions is not an error.
func (c *Client) Fetch(ctx context.Context, query string) (phrases []string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "completion.fetch", telemetry.SpanAttributes{
		Query:     query,
		Operation: "fetch",
	})
	defer span.End()

	if c.observer != nil {
		start := time.Now()
		defer func() { c.observer.ObserveVendorCall(err, time.Since(start)) }()
	}

	body, err := c.get(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if !utf8.Valid(body) {
		err = domain.NewParseError(fmt.Sprintf("vendor response for %q is not text", query), nil)
		span.SetError(err)
		return nil, err
	}

	phrases = Parse(string(body))
	zerolog.Ctx(ctx).Debug().
		Str("query", query).
		Int("phrases", len(phrases)).
		Msg("vendor suggestions fetched")

	return phrases, nil
}

// BuildURL returns the vendor request URL for query.
func (c *Client) BuildURL(query string) string {
	params := url.Values{}
	params.Set("search-alias", searchAlias)
	params.Set("client", clientID)
	params.Set("mkt", marketFlag)
	params.Set("q", query)
	return c.baseURL + completePath + "?" + params.Encode()
}

func (c *Client) get(ctx context.Context, query string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(query), nil)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to create vendor request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewNetworkError(fmt.Sprintf("vendor request for %q timed out", query), err)
		}
		return nil, domain.NewNetworkError(fmt.Sprintf("vendor request for %q failed", query), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewNetworkError(fmt.Sprintf("vendor returned %s for %q", resp.Status, query), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Sprintf("failed to read vendor response for %q", query), err)
	}
	return body, nil
}
