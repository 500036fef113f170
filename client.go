package firecrawl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// DefaultBaseURL is the versioned production endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev/v2"

const (
	// connectTimeout bounds dialing and the TLS handshake.
	connectTimeout = 90 * time.Second
	// readTimeout bounds the wait for response headers. Long, because the
	// service may process a scrape fully before responding.
	readTimeout = 300 * time.Second
)

// Client is a typed client for the Firecrawl v2 API. It owns its underlying
// connection pool: create it with NewClient, release it with Close. A Client
// is safe for concurrent use until Close is called.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
	closed  atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. for a self-hosted deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient substitutes the underlying HTTP client. The caller keeps
// responsibility for its timeout configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger enables debug logging of requests and response statuses.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				TLSHandshakeTimeout:   connectTimeout,
				ResponseHeaderTimeout: readTimeout,
			},
		}
	}
	return c
}

// Close releases the underlying connection pool. The client must not be used
// afterwards; operations on a closed client fail with the
// client-not-initialized error kind.
func (c *Client) Close() {
	if c == nil || c.hc == nil {
		return
	}
	if c.closed.CompareAndSwap(false, true) {
		c.hc.CloseIdleConnections()
	}
}

func (c *Client) ready() error {
	if c == nil || c.hc == nil || c.closed.Load() {
		return newNotInitializedError()
	}
	return nil
}

func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// do performs one HTTP round trip and returns the raw body of a 2xx
// response. Non-2xx statuses are mapped to the error taxonomy; no retries
// happen here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, newValidationError("encode request: %v", err)
		}
		rdr = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logDebug("firecrawl request", "method", method, "path", path)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	c.logDebug("firecrawl response", "method", method, "path", path, "status", resp.StatusCode)

	if err := checkStatus(resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

// checkStatus maps non-2xx statuses to the error taxonomy, in order:
// 401, 402, 429, then any other >= 400.
func checkStatus(code int, body []byte) error {
	switch {
	case code == http.StatusUnauthorized:
		return &Error{Kind: ErrorKindAuthentication, StatusCode: code, Message: "Invalid API key"}
	case code == http.StatusPaymentRequired:
		return &Error{Kind: ErrorKindPaymentRequired, StatusCode: code, Message: "Insufficient credits"}
	case code == http.StatusTooManyRequests:
		return &Error{Kind: ErrorKindRateLimit, StatusCode: code, Message: "Rate limit exceeded"}
	case code >= 400:
		msg := string(body)
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &Error{Kind: ErrorKindAPI, StatusCode: code, Message: fmt.Sprintf("HTTP %d: %s", code, msg)}
	}
	return nil
}

func decodeResponse[T any](data []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, &Error{Kind: ErrorKindValidation, Message: "decode response: " + err.Error(), Cause: err}
	}
	if v, ok := any(out).(responseValidator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// request is implemented by every request shape.
type request interface {
	Validate() error
}

func postJSON[T any](ctx context.Context, c *Client, path string, req request) (*T, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](data)
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](data)
}

func deleteJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	data, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](data)
}

func jobPath(prefix, jobID string) (string, error) {
	if jobID == "" {
		return "", newValidationError("job id is required")
	}
	return prefix + "/" + url.PathEscape(jobID), nil
}

// --- Map ---

// Map discovers the URLs of a website.
func (c *Client) Map(ctx context.Context, req *MapRequest) (*MapResponse, error) {
	return postJSON[MapResponse](ctx, c, "/map", req)
}

// --- Scrape ---

// Scrape fetches a single URL and returns its content in the requested
// formats.
func (c *Client) Scrape(ctx context.Context, req *ScrapeRequest) (*ScrapeResponse, error) {
	return postJSON[ScrapeResponse](ctx, c, "/scrape", req)
}

// --- Search ---

// Search queries the web, news or images.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	return postJSON[SearchResponse](ctx, c, "/search", req)
}

// --- Crawl ---

// Crawl starts a crawl job and returns its handle.
func (c *Client) Crawl(ctx context.Context, req *CrawlRequest) (*CrawlJobResponse, error) {
	return postJSON[CrawlJobResponse](ctx, c, "/crawl", req)
}

// CrawlStatus fetches the current status of a crawl job.
func (c *Client) CrawlStatus(ctx context.Context, jobID string) (*CrawlStatusResponse, error) {
	path, err := jobPath("/crawl", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[CrawlStatusResponse](ctx, c, path, nil)
}

// CrawlErrors fetches the per-URL errors of a crawl job.
func (c *Client) CrawlErrors(ctx context.Context, jobID string) (*JobErrorsResponse, error) {
	path, err := jobPath("/crawl", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[JobErrorsResponse](ctx, c, path+"/errors", nil)
}

// ActiveCrawls lists the team's in-flight crawl jobs.
func (c *Client) ActiveCrawls(ctx context.Context) (*ActiveCrawlsResponse, error) {
	return getJSON[ActiveCrawlsResponse](ctx, c, "/crawl/active", nil)
}

// CrawlParamsPreview generates crawl parameters from a natural language
// prompt without starting a job.
func (c *Client) CrawlParamsPreview(ctx context.Context, req *CrawlParamsPreviewRequest) (*CrawlParamsPreviewResponse, error) {
	return postJSON[CrawlParamsPreviewResponse](ctx, c, "/crawl/params-preview", req)
}

// CancelCrawl requests cancellation of a crawl job. Cancellation is
// asynchronous: keep polling until a terminal status is observed.
func (c *Client) CancelCrawl(ctx context.Context, jobID string) (*CancelResponse, error) {
	path, err := jobPath("/crawl", jobID)
	if err != nil {
		return nil, err
	}
	return deleteJSON[CancelResponse](ctx, c, path)
}

// --- Batch scrape ---

// BatchScrape starts a batch scrape job over multiple URLs.
func (c *Client) BatchScrape(ctx context.Context, req *BatchScrapeRequest) (*BatchScrapeJobResponse, error) {
	return postJSON[BatchScrapeJobResponse](ctx, c, "/batch/scrape", req)
}

// BatchScrapeStatus fetches the current status of a batch scrape job.
func (c *Client) BatchScrapeStatus(ctx context.Context, jobID string) (*BatchScrapeStatusResponse, error) {
	path, err := jobPath("/batch/scrape", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[BatchScrapeStatusResponse](ctx, c, path, nil)
}

// BatchScrapeErrors fetches the per-URL errors of a batch scrape job.
func (c *Client) BatchScrapeErrors(ctx context.Context, jobID string) (*JobErrorsResponse, error) {
	path, err := jobPath("/batch/scrape", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[JobErrorsResponse](ctx, c, path+"/errors", nil)
}

// CancelBatchScrape requests cancellation of a batch scrape job.
func (c *Client) CancelBatchScrape(ctx context.Context, jobID string) (*CancelResponse, error) {
	path, err := jobPath("/batch/scrape", jobID)
	if err != nil {
		return nil, err
	}
	return deleteJSON[CancelResponse](ctx, c, path)
}

// --- Extract ---

// Extract starts a structured-extraction job.
func (c *Client) Extract(ctx context.Context, req *ExtractRequest) (*ExtractJobResponse, error) {
	return postJSON[ExtractJobResponse](ctx, c, "/extract", req)
}

// ExtractStatus fetches the current status of an extraction job.
func (c *Client) ExtractStatus(ctx context.Context, jobID string) (*ExtractStatusResponse, error) {
	path, err := jobPath("/extract", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[ExtractStatusResponse](ctx, c, path, nil)
}

// --- Agent ---

// Agent starts an agent task for agentic data gathering.
func (c *Client) Agent(ctx context.Context, req *AgentRequest) (*AgentJobResponse, error) {
	return postJSON[AgentJobResponse](ctx, c, "/agent", req)
}

// AgentStatus fetches the current status of an agent job.
func (c *Client) AgentStatus(ctx context.Context, jobID string) (*AgentStatusResponse, error) {
	path, err := jobPath("/agent", jobID)
	if err != nil {
		return nil, err
	}
	return getJSON[AgentStatusResponse](ctx, c, path, nil)
}

// CancelAgent requests cancellation of an agent job.
func (c *Client) CancelAgent(ctx context.Context, jobID string) (*CancelResponse, error) {
	path, err := jobPath("/agent", jobID)
	if err != nil {
		return nil, err
	}
	return deleteJSON[CancelResponse](ctx, c, path)
}

// --- Account ---

func byAPIKeyQuery(byAPIKey bool) url.Values {
	if !byAPIKey {
		return nil
	}
	return url.Values{"byApiKey": {"true"}}
}

// CreditUsage reports remaining credits for the team.
func (c *Client) CreditUsage(ctx context.Context) (*CreditUsageResponse, error) {
	return getJSON[CreditUsageResponse](ctx, c, "/team/credit-usage", nil)
}

// CreditUsageHistorical reports credit usage per billing period, optionally
// broken down by API key.
func (c *Client) CreditUsageHistorical(ctx context.Context, byAPIKey bool) (*CreditUsageHistoricalResponse, error) {
	return getJSON[CreditUsageHistoricalResponse](ctx, c, "/team/credit-usage/historical", byAPIKeyQuery(byAPIKey))
}

// TokenUsage reports remaining tokens for the team.
func (c *Client) TokenUsage(ctx context.Context) (*TokenUsageResponse, error) {
	return getJSON[TokenUsageResponse](ctx, c, "/team/token-usage", nil)
}

// TokenUsageHistorical reports token usage per billing period, optionally
// broken down by API key.
func (c *Client) TokenUsageHistorical(ctx context.Context, byAPIKey bool) (*TokenUsageHistoricalResponse, error) {
	return getJSON[TokenUsageHistoricalResponse](ctx, c, "/team/token-usage/historical", byAPIKeyQuery(byAPIKey))
}

// QueueStatus reports metrics about the team's scrape queue.
func (c *Client) QueueStatus(ctx context.Context) (*QueueStatusResponse, error) {
	return getJSON[QueueStatusResponse](ctx, c, "/team/queue-status", nil)
}
