package firecrawl

import (
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"
)

// Firecrawl v2 wire types. Field names and defaults follow the v2 API;
// requests marshal in the exact camelCase casing the service expects.
//
// Optional fields default to "unset" and are omitted from the wire form.
// Fields with documented non-zero defaults are plain values populated by the
// New*Request constructors and always serialized.

// responseValidator is implemented by response types that need strict
// post-decode checks (required identifiers, closed status sets). A failure
// indicates a protocol mismatch and surfaces as a validation error.
type responseValidator interface {
	validate() error
}

const maxPromptLength = 10000

// Sitemap handling modes for map and crawl requests.
const (
	SitemapSkip    = "skip"
	SitemapInclude = "include"
	SitemapOnly    = "only"
)

// Proxy tiers for scrape requests.
const (
	ProxyBasic   = "basic"
	ProxyStealth = "stealth"
	ProxyAuto    = "auto"
)

// validateRequestURL checks that raw parses as an absolute http(s) URL.
func validateRequestURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return newValidationError("%s: invalid URL %q: %v", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return newValidationError("%s: URL %q must use http or https", field, raw)
	}
	if u.Host == "" {
		return newValidationError("%s: URL %q has no host", field, raw)
	}
	return nil
}

// LocationSettings selects the geography pages are fetched from.
// The service defaults country to "US" and languages to ["en-US"].
type LocationSettings struct {
	Country   string   `json:"country,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// CancelResponse is the envelope for cancel/delete operations.
type CancelResponse struct {
	Success *bool  `json:"success,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var cancelResponseKnown = []string{"success", "status", "message"}

func (r *CancelResponse) UnmarshalJSON(data []byte) error {
	type plain CancelResponse
	extra, err := decodeWithExtra(data, (*plain)(r), cancelResponseKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// --- Map ---

// MapRequest is the payload for POST /map.
type MapRequest struct {
	URL                   string            `json:"url"`
	Search                string            `json:"search,omitempty"`
	Sitemap               string            `json:"sitemap"`
	IncludeSubdomains     bool              `json:"includeSubdomains"`
	IgnoreQueryParameters bool              `json:"ignoreQueryParameters"`
	Limit                 int               `json:"limit"`
	Location              *LocationSettings `json:"location,omitempty"`
	Timeout               *int              `json:"timeout,omitempty"`
}

// NewMapRequest returns a map request for url with service defaults applied.
func NewMapRequest(url string) *MapRequest {
	return &MapRequest{
		URL:                   url,
		Sitemap:               SitemapInclude,
		IncludeSubdomains:     true,
		IgnoreQueryParameters: true,
		Limit:                 5000,
	}
}

func (r *MapRequest) Validate() error {
	if r == nil {
		return newValidationError("nil map request")
	}
	if err := validateRequestURL("url", r.URL); err != nil {
		return err
	}
	switch r.Sitemap {
	case SitemapSkip, SitemapInclude, SitemapOnly:
	default:
		return newValidationError("sitemap: %q is not one of skip, include, only", r.Sitemap)
	}
	if r.Limit > 100000 {
		return newValidationError("limit: %d exceeds maximum 100000", r.Limit)
	}
	return nil
}

// Link is a single discovered URL in a map response.
type Link struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// MapResponse is the envelope for POST /map.
type MapResponse struct {
	Success bool   `json:"success"`
	Links   []Link `json:"links"`
}

func (r *MapResponse) validate() error {
	if r.Links == nil {
		return newValidationError("map response missing links")
	}
	return nil
}

// --- Scrape ---

// ScrapeRequest is the payload for POST /scrape.
type ScrapeRequest struct {
	URL                 string            `json:"url"`
	Formats             []any             `json:"formats"`
	OnlyMainContent     bool              `json:"onlyMainContent"`
	IncludeTags         []string          `json:"includeTags,omitempty"`
	ExcludeTags         []string          `json:"excludeTags,omitempty"`
	MaxAge              int64             `json:"maxAge"`
	Headers             map[string]string `json:"headers,omitempty"`
	WaitFor             int               `json:"waitFor"`
	Mobile              bool              `json:"mobile"`
	SkipTLSVerification bool              `json:"skipTlsVerification"`
	Timeout             *int              `json:"timeout,omitempty"`
	Parsers             []string          `json:"parsers,omitempty"`
	Actions             []map[string]any  `json:"actions,omitempty"`
	Location            *LocationSettings `json:"location,omitempty"`
	RemoveBase64Images  bool              `json:"removeBase64Images"`
	BlockAds            bool              `json:"blockAds"`
	Proxy               string            `json:"proxy"`
	StoreInCache        bool              `json:"storeInCache"`
	ZeroDataRetention   bool              `json:"zeroDataRetention"`
}

// NewScrapeRequest returns a scrape request for url with service defaults:
// markdown output, main content only, a two-day cache window and the auto
// proxy tier.
func NewScrapeRequest(url string) *ScrapeRequest {
	return &ScrapeRequest{
		URL:                 url,
		Formats:             []any{"markdown"},
		OnlyMainContent:     true,
		MaxAge:              172800000,
		SkipTLSVerification: true,
		RemoveBase64Images:  true,
		BlockAds:            true,
		Proxy:               ProxyAuto,
		StoreInCache:        true,
	}
}

func (r *ScrapeRequest) Validate() error {
	if r == nil {
		return newValidationError("nil scrape request")
	}
	if err := validateRequestURL("url", r.URL); err != nil {
		return err
	}
	switch r.Proxy {
	case ProxyBasic, ProxyStealth, ProxyAuto:
	default:
		return newValidationError("proxy: %q is not one of basic, stealth, auto", r.Proxy)
	}
	return nil
}

// ScrapeResponse is the envelope for POST /scrape.
type ScrapeResponse struct {
	Success bool      `json:"success"`
	Data    *Document `json:"data"`
}

func (r *ScrapeResponse) validate() error {
	if r.Data == nil {
		return newValidationError("scrape response missing data")
	}
	return nil
}

// --- Search ---

// SearchRequest is the payload for POST /search.
type SearchRequest struct {
	Query             string         `json:"query"`
	Limit             int            `json:"limit"`
	Sources           []any          `json:"sources"`
	Categories        []any          `json:"categories,omitempty"`
	TBS               string         `json:"tbs,omitempty"`
	Location          string         `json:"location,omitempty"`
	Country           string         `json:"country"`
	Timeout           int            `json:"timeout"`
	IgnoreInvalidURLs bool           `json:"ignoreInvalidURLs"`
	ScrapeOptions     map[string]any `json:"scrapeOptions,omitempty"`
}

// NewSearchRequest returns a search request for query with service defaults.
func NewSearchRequest(query string) *SearchRequest {
	return &SearchRequest{
		Query:   query,
		Limit:   5,
		Sources: []any{"web"},
		Country: "US",
		Timeout: 60000,
	}
}

func (r *SearchRequest) Validate() error {
	if r == nil {
		return newValidationError("nil search request")
	}
	if r.Query == "" {
		return newValidationError("query is required")
	}
	if r.Limit < 1 || r.Limit > 100 {
		return newValidationError("limit: %d is outside 1..100", r.Limit)
	}
	return nil
}

// SearchWebResult is a single web hit, optionally with scraped content when
// scrapeOptions were supplied.
type SearchWebResult struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	URL         string            `json:"url"`
	Position    *int              `json:"position,omitempty"`
	Markdown    string            `json:"markdown,omitempty"`
	HTML        string            `json:"html,omitempty"`
	RawHTML     string            `json:"rawHtml,omitempty"`
	Links       []string          `json:"links,omitempty"`
	Screenshot  string            `json:"screenshot,omitempty"`
	Metadata    *DocumentMetadata `json:"metadata,omitempty"`
	Category    string            `json:"category,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var searchWebResultKnown = []string{
	"title", "description", "url", "position", "markdown", "html", "rawHtml",
	"links", "screenshot", "metadata", "category",
}

func (r *SearchWebResult) UnmarshalJSON(data []byte) error {
	type plain SearchWebResult
	extra, err := decodeWithExtra(data, (*plain)(r), searchWebResultKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// SearchImageResult is a single image hit.
type SearchImageResult struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	ImageWidth  *int   `json:"imageWidth,omitempty"`
	ImageHeight *int   `json:"imageHeight,omitempty"`
	URL         string `json:"url"`
	Position    int    `json:"position"`

	Extra map[string]json.RawMessage `json:"-"`
}

var searchImageResultKnown = []string{
	"title", "imageUrl", "imageWidth", "imageHeight", "url", "position",
}

func (r *SearchImageResult) UnmarshalJSON(data []byte) error {
	type plain SearchImageResult
	extra, err := decodeWithExtra(data, (*plain)(r), searchImageResultKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// SearchNewsResult is a single news hit.
type SearchNewsResult struct {
	Title      string            `json:"title"`
	Snippet    string            `json:"snippet,omitempty"`
	URL        string            `json:"url"`
	Date       string            `json:"date,omitempty"`
	ImageURL   string            `json:"imageUrl,omitempty"`
	Position   int               `json:"position"`
	Markdown   string            `json:"markdown,omitempty"`
	HTML       string            `json:"html,omitempty"`
	RawHTML    string            `json:"rawHtml,omitempty"`
	Links      []string          `json:"links,omitempty"`
	Screenshot string            `json:"screenshot,omitempty"`
	Metadata   *DocumentMetadata `json:"metadata,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var searchNewsResultKnown = []string{
	"title", "snippet", "url", "date", "imageUrl", "position", "markdown",
	"html", "rawHtml", "links", "screenshot", "metadata",
}

func (r *SearchNewsResult) UnmarshalJSON(data []byte) error {
	type plain SearchNewsResult
	extra, err := decodeWithExtra(data, (*plain)(r), searchNewsResultKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// SearchData groups search results per source type.
type SearchData struct {
	Web    []SearchWebResult   `json:"web,omitempty"`
	Images []SearchImageResult `json:"images,omitempty"`
	News   []SearchNewsResult  `json:"news,omitempty"`
}

// SearchResponse is the envelope for POST /search.
type SearchResponse struct {
	Success     bool        `json:"success"`
	Data        *SearchData `json:"data"`
	Warning     string      `json:"warning,omitempty"`
	ID          string      `json:"id,omitempty"`
	CreditsUsed *int        `json:"creditsUsed,omitempty"`
}

func (r *SearchResponse) validate() error {
	if r.Data == nil {
		return newValidationError("search response missing data")
	}
	return nil
}

// --- Crawl ---

// CrawlStatus is the lifecycle state reported for crawl and batch scrape
// jobs. Terminal detection depends on exact matching, so unknown values are
// rejected at decode time.
type CrawlStatus string

const (
	CrawlStatusScraping  CrawlStatus = "scraping"
	CrawlStatusCompleted CrawlStatus = "completed"
	CrawlStatusFailed    CrawlStatus = "failed"
	CrawlStatusCancelled CrawlStatus = "cancelled"
)

func (s CrawlStatus) known() bool {
	switch s {
	case CrawlStatusScraping, CrawlStatusCompleted, CrawlStatusFailed, CrawlStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further state transition can occur.
func (s CrawlStatus) Terminal() bool {
	switch s {
	case CrawlStatusCompleted, CrawlStatusFailed, CrawlStatusCancelled:
		return true
	}
	return false
}

// CrawlRequest is the payload for POST /crawl.
type CrawlRequest struct {
	URL                    string         `json:"url"`
	Prompt                 string         `json:"prompt,omitempty"`
	ExcludePaths           []string       `json:"excludePaths,omitempty"`
	IncludePaths           []string       `json:"includePaths,omitempty"`
	MaxDepth               *int           `json:"maxDepth,omitempty"`
	MaxDiscoveryDepth      *int           `json:"maxDiscoveryDepth,omitempty"`
	Sitemap                string         `json:"sitemap"`
	IgnoreQueryParameters  bool           `json:"ignoreQueryParameters"`
	DeduplicateSimilarURLs *bool          `json:"deduplicateSimilarURLs,omitempty"`
	Limit                  int            `json:"limit"`
	CrawlEntireDomain      bool           `json:"crawlEntireDomain"`
	AllowExternalLinks     bool           `json:"allowExternalLinks"`
	AllowSubdomains        bool           `json:"allowSubdomains"`
	Delay                  *float64       `json:"delay,omitempty"`
	MaxConcurrency         *int           `json:"maxConcurrency,omitempty"`
	Webhook                map[string]any `json:"webhook,omitempty"`
	ScrapeOptions          map[string]any `json:"scrapeOptions,omitempty"`
	ZeroDataRetention      bool           `json:"zeroDataRetention"`
}

// NewCrawlRequest returns a crawl request for url with service defaults.
func NewCrawlRequest(url string) *CrawlRequest {
	return &CrawlRequest{
		URL:     url,
		Sitemap: SitemapInclude,
		Limit:   10000,
	}
}

func (r *CrawlRequest) Validate() error {
	if r == nil {
		return newValidationError("nil crawl request")
	}
	if err := validateRequestURL("url", r.URL); err != nil {
		return err
	}
	switch r.Sitemap {
	case SitemapSkip, SitemapInclude:
	default:
		return newValidationError("sitemap: %q is not one of skip, include", r.Sitemap)
	}
	if r.Limit > 100000 {
		return newValidationError("limit: %d exceeds maximum 100000", r.Limit)
	}
	if len(r.Prompt) > maxPromptLength {
		return newValidationError("prompt: length %d exceeds maximum %d", len(r.Prompt), maxPromptLength)
	}
	return nil
}

// CrawlJobResponse is the envelope for POST /crawl: the job handle plus the
// status URL for it.
type CrawlJobResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	URL     string `json:"url"`
}

func (r *CrawlJobResponse) validate() error {
	if r.ID == "" {
		return newValidationError("crawl job response missing id")
	}
	return nil
}

// CrawlStatusResponse is the envelope for GET /crawl/{id}.
type CrawlStatusResponse struct {
	Status      CrawlStatus `json:"status"`
	Total       *int        `json:"total,omitempty"`
	Completed   *int        `json:"completed,omitempty"`
	CreditsUsed *int        `json:"creditsUsed,omitempty"`
	ExpiresAt   string      `json:"expiresAt,omitempty"`
	Next        string      `json:"next,omitempty"`
	Data        []Document  `json:"data,omitempty"`
}

func (r *CrawlStatusResponse) validate() error {
	if !r.Status.known() {
		return newValidationError("crawl status: unknown value %q", r.Status)
	}
	return nil
}

// CrawlParamsPreviewRequest is the payload for POST /crawl/params-preview.
type CrawlParamsPreviewRequest struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// NewCrawlParamsPreviewRequest returns a params-preview request for url
// driven by a natural language prompt.
func NewCrawlParamsPreviewRequest(url, prompt string) *CrawlParamsPreviewRequest {
	return &CrawlParamsPreviewRequest{URL: url, Prompt: prompt}
}

func (r *CrawlParamsPreviewRequest) Validate() error {
	if r == nil {
		return newValidationError("nil params-preview request")
	}
	if err := validateRequestURL("url", r.URL); err != nil {
		return err
	}
	if r.Prompt == "" {
		return newValidationError("prompt is required")
	}
	if len(r.Prompt) > maxPromptLength {
		return newValidationError("prompt: length %d exceeds maximum %d", len(r.Prompt), maxPromptLength)
	}
	return nil
}

// CrawlParamsPreviewData holds the crawl parameters generated from a prompt.
type CrawlParamsPreviewData struct {
	URL                    string   `json:"url"`
	IncludePaths           []string `json:"includePaths,omitempty"`
	ExcludePaths           []string `json:"excludePaths,omitempty"`
	MaxDepth               *int     `json:"maxDepth,omitempty"`
	MaxDiscoveryDepth      *int     `json:"maxDiscoveryDepth,omitempty"`
	CrawlEntireDomain      *bool    `json:"crawlEntireDomain,omitempty"`
	AllowExternalLinks     *bool    `json:"allowExternalLinks,omitempty"`
	AllowSubdomains        *bool    `json:"allowSubdomains,omitempty"`
	Sitemap                string   `json:"sitemap,omitempty"`
	IgnoreQueryParameters  *bool    `json:"ignoreQueryParameters,omitempty"`
	DeduplicateSimilarURLs *bool    `json:"deduplicateSimilarURLs,omitempty"`
	Delay                  *float64 `json:"delay,omitempty"`
	Limit                  *int     `json:"limit,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var crawlParamsPreviewDataKnown = []string{
	"url", "includePaths", "excludePaths", "maxDepth", "maxDiscoveryDepth",
	"crawlEntireDomain", "allowExternalLinks", "allowSubdomains", "sitemap",
	"ignoreQueryParameters", "deduplicateSimilarURLs", "delay", "limit",
}

func (d *CrawlParamsPreviewData) UnmarshalJSON(data []byte) error {
	type plain CrawlParamsPreviewData
	extra, err := decodeWithExtra(data, (*plain)(d), crawlParamsPreviewDataKnown)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// CrawlParamsPreviewResponse is the envelope for POST /crawl/params-preview.
type CrawlParamsPreviewResponse struct {
	Success bool                    `json:"success"`
	Data    *CrawlParamsPreviewData `json:"data"`
}

func (r *CrawlParamsPreviewResponse) validate() error {
	if r.Data == nil {
		return newValidationError("params-preview response missing data")
	}
	return nil
}

// JobError is one failed URL in a crawl or batch scrape job.
type JobError struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Error     string `json:"error"`
}

// JobErrorsResponse is the envelope for GET /crawl/{id}/errors and
// GET /batch/scrape/{id}/errors.
type JobErrorsResponse struct {
	Errors        []JobError `json:"errors"`
	RobotsBlocked []string   `json:"robotsBlocked,omitempty"`
}

func (r *JobErrorsResponse) validate() error {
	if r.Errors == nil {
		return newValidationError("job errors response missing errors")
	}
	return nil
}

// ActiveCrawl describes one in-flight crawl for the authenticated team.
type ActiveCrawl struct {
	ID      string         `json:"id"`
	TeamID  string         `json:"teamId,omitempty"`
	URL     string         `json:"url"`
	Options map[string]any `json:"options,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var activeCrawlKnown = []string{"id", "teamId", "url", "options"}

func (c *ActiveCrawl) UnmarshalJSON(data []byte) error {
	type plain ActiveCrawl
	extra, err := decodeWithExtra(data, (*plain)(c), activeCrawlKnown)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// ActiveCrawlsResponse is the envelope for GET /crawl/active.
type ActiveCrawlsResponse struct {
	Success bool          `json:"success"`
	Crawls  []ActiveCrawl `json:"crawls"`
}

func (r *ActiveCrawlsResponse) validate() error {
	if r.Crawls == nil {
		return newValidationError("active crawls response missing crawls")
	}
	return nil
}

// --- Batch scrape ---

// BatchScrapeRequest is the payload for POST /batch/scrape. It carries the
// scrape option set applied to every URL in the batch.
type BatchScrapeRequest struct {
	URLs                []string          `json:"urls"`
	Formats             []any             `json:"formats"`
	OnlyMainContent     bool              `json:"onlyMainContent"`
	IncludeTags         []string          `json:"includeTags,omitempty"`
	ExcludeTags         []string          `json:"excludeTags,omitempty"`
	MaxAge              int64             `json:"maxAge"`
	Headers             map[string]string `json:"headers,omitempty"`
	Webhook             map[string]any    `json:"webhook,omitempty"`
	MaxConcurrency      *int              `json:"maxConcurrency,omitempty"`
	IgnoreInvalidURLs   bool              `json:"ignoreInvalidURLs"`
	WaitFor             int               `json:"waitFor"`
	Mobile              bool              `json:"mobile"`
	SkipTLSVerification bool              `json:"skipTlsVerification"`
	Timeout             *int              `json:"timeout,omitempty"`
	Parsers             []string          `json:"parsers,omitempty"`
	Actions             []map[string]any  `json:"actions,omitempty"`
	Location            *LocationSettings `json:"location,omitempty"`
	RemoveBase64Images  bool              `json:"removeBase64Images"`
	BlockAds            bool              `json:"blockAds"`
	Proxy               string            `json:"proxy"`
	StoreInCache        bool              `json:"storeInCache"`
	ZeroDataRetention   bool              `json:"zeroDataRetention"`
}

// NewBatchScrapeRequest returns a batch scrape request for urls with the
// same defaults as NewScrapeRequest plus invalid-URL tolerance.
func NewBatchScrapeRequest(urls []string) *BatchScrapeRequest {
	return &BatchScrapeRequest{
		URLs:                urls,
		Formats:             []any{"markdown"},
		OnlyMainContent:     true,
		MaxAge:              172800000,
		IgnoreInvalidURLs:   true,
		SkipTLSVerification: true,
		RemoveBase64Images:  true,
		BlockAds:            true,
		Proxy:               ProxyAuto,
		StoreInCache:        true,
	}
}

func (r *BatchScrapeRequest) Validate() error {
	if r == nil {
		return newValidationError("nil batch scrape request")
	}
	if len(r.URLs) == 0 {
		return newValidationError("urls: at least one URL is required")
	}
	for i, u := range r.URLs {
		if err := validateRequestURL(fmt.Sprintf("urls[%d]", i), u); err != nil {
			return err
		}
	}
	switch r.Proxy {
	case ProxyBasic, ProxyStealth, ProxyAuto:
	default:
		return newValidationError("proxy: %q is not one of basic, stealth, auto", r.Proxy)
	}
	return nil
}

// BatchScrapeJobResponse is the envelope for POST /batch/scrape.
type BatchScrapeJobResponse struct {
	Success     bool     `json:"success"`
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	InvalidURLs []string `json:"invalidURLs,omitempty"`
}

func (r *BatchScrapeJobResponse) validate() error {
	if r.ID == "" {
		return newValidationError("batch scrape job response missing id")
	}
	return nil
}

// BatchScrapeStatusResponse is the envelope for GET /batch/scrape/{id}.
type BatchScrapeStatusResponse struct {
	Status      CrawlStatus `json:"status"`
	Total       *int        `json:"total,omitempty"`
	Completed   *int        `json:"completed,omitempty"`
	CreditsUsed *int        `json:"creditsUsed,omitempty"`
	ExpiresAt   string      `json:"expiresAt,omitempty"`
	Next        string      `json:"next,omitempty"`
	Data        []Document  `json:"data,omitempty"`
}

func (r *BatchScrapeStatusResponse) validate() error {
	if !r.Status.known() {
		return newValidationError("batch scrape status: unknown value %q", r.Status)
	}
	return nil
}

// --- Extract ---

// ExtractStatus is the lifecycle state reported for extract jobs.
type ExtractStatus string

const (
	ExtractStatusProcessing ExtractStatus = "processing"
	ExtractStatusCompleted  ExtractStatus = "completed"
	ExtractStatusFailed     ExtractStatus = "failed"
	ExtractStatusCancelled  ExtractStatus = "cancelled"
)

func (s ExtractStatus) known() bool {
	switch s {
	case ExtractStatusProcessing, ExtractStatusCompleted, ExtractStatusFailed, ExtractStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further state transition can occur.
func (s ExtractStatus) Terminal() bool {
	switch s {
	case ExtractStatusCompleted, ExtractStatusFailed, ExtractStatusCancelled:
		return true
	}
	return false
}

// ExtractRequest is the payload for POST /extract.
type ExtractRequest struct {
	URLs              []string       `json:"urls"`
	Prompt            string         `json:"prompt,omitempty"`
	Schema            map[string]any `json:"schema,omitempty"`
	EnableWebSearch   bool           `json:"enableWebSearch"`
	IgnoreSitemap     bool           `json:"ignoreSitemap"`
	IncludeSubdomains bool           `json:"includeSubdomains"`
	ShowSources       bool           `json:"showSources"`
	ScrapeOptions     map[string]any `json:"scrapeOptions,omitempty"`
	IgnoreInvalidURLs bool           `json:"ignoreInvalidURLs"`
}

// NewExtractRequest returns an extract request for urls with service
// defaults applied.
func NewExtractRequest(urls []string) *ExtractRequest {
	return &ExtractRequest{
		URLs:              urls,
		IncludeSubdomains: true,
		IgnoreInvalidURLs: true,
	}
}

func (r *ExtractRequest) Validate() error {
	if r == nil {
		return newValidationError("nil extract request")
	}
	if len(r.URLs) == 0 {
		return newValidationError("urls: at least one URL is required")
	}
	return nil
}

// ExtractJobResponse is the envelope for POST /extract.
type ExtractJobResponse struct {
	Success     bool     `json:"success"`
	ID          string   `json:"id"`
	InvalidURLs []string `json:"invalidURLs,omitempty"`
}

func (r *ExtractJobResponse) validate() error {
	if r.ID == "" {
		return newValidationError("extract job response missing id")
	}
	return nil
}

// ExtractStatusResponse is the envelope for GET /extract/{id}.
type ExtractStatusResponse struct {
	Success     bool             `json:"success"`
	Data        map[string]any   `json:"data,omitempty"`
	Status      ExtractStatus    `json:"status"`
	ExpiresAt   string           `json:"expiresAt,omitempty"`
	TokensUsed  *int             `json:"tokensUsed,omitempty"`
	CreditsUsed *int             `json:"creditsUsed,omitempty"`
	Sources     []map[string]any `json:"sources,omitempty"`
	Error       string           `json:"error,omitempty"`
	Warning     string           `json:"warning,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var extractStatusResponseKnown = []string{
	"success", "data", "status", "expiresAt", "tokensUsed", "creditsUsed",
	"sources", "error", "warning",
}

func (r *ExtractStatusResponse) UnmarshalJSON(data []byte) error {
	type plain ExtractStatusResponse
	extra, err := decodeWithExtra(data, (*plain)(r), extractStatusResponseKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r *ExtractStatusResponse) validate() error {
	if !r.Status.known() {
		return newValidationError("extract status: unknown value %q", r.Status)
	}
	return nil
}

// --- Agent ---

// AgentStatus is the lifecycle state reported for agent jobs. Unlike other
// job types, agents have no cancelled status; a cancelled agent reports
// failed.
type AgentStatus string

const (
	AgentStatusProcessing AgentStatus = "processing"
	AgentStatusCompleted  AgentStatus = "completed"
	AgentStatusFailed     AgentStatus = "failed"
)

func (s AgentStatus) known() bool {
	switch s {
	case AgentStatusProcessing, AgentStatusCompleted, AgentStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further state transition can occur.
func (s AgentStatus) Terminal() bool {
	switch s {
	case AgentStatusCompleted, AgentStatusFailed:
		return true
	}
	return false
}

// AgentRequest is the payload for POST /agent.
type AgentRequest struct {
	Prompt                string         `json:"prompt"`
	URLs                  []string       `json:"urls,omitempty"`
	Schema                map[string]any `json:"schema,omitempty"`
	MaxCredits            *int           `json:"maxCredits,omitempty"`
	StrictConstrainToURLs bool           `json:"strictConstrainToURLs"`
}

// NewAgentRequest returns an agent request driven by prompt.
func NewAgentRequest(prompt string) *AgentRequest {
	return &AgentRequest{Prompt: prompt}
}

func (r *AgentRequest) Validate() error {
	if r == nil {
		return newValidationError("nil agent request")
	}
	if r.Prompt == "" {
		return newValidationError("prompt is required")
	}
	if len(r.Prompt) > maxPromptLength {
		return newValidationError("prompt: length %d exceeds maximum %d", len(r.Prompt), maxPromptLength)
	}
	return nil
}

// AgentJobResponse is the envelope for POST /agent.
type AgentJobResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func (r *AgentJobResponse) validate() error {
	if r.ID == "" {
		return newValidationError("agent job response missing id")
	}
	return nil
}

// AgentStatusResponse is the envelope for GET /agent/{id}.
type AgentStatusResponse struct {
	Success     bool           `json:"success"`
	Status      AgentStatus    `json:"status"`
	Data        map[string]any `json:"data,omitempty"`
	Error       string         `json:"error,omitempty"`
	ExpiresAt   string         `json:"expiresAt,omitempty"`
	CreditsUsed *int           `json:"creditsUsed,omitempty"`
}

func (r *AgentStatusResponse) validate() error {
	if !r.Status.known() {
		return newValidationError("agent status: unknown value %q", r.Status)
	}
	return nil
}

// --- Account ---

// CreditUsageData reports remaining credits for the current billing period.
type CreditUsageData struct {
	RemainingCredits   int    `json:"remainingCredits"`
	PlanCredits        int    `json:"planCredits"`
	BillingPeriodStart string `json:"billingPeriodStart"`
	BillingPeriodEnd   string `json:"billingPeriodEnd"`

	Extra map[string]json.RawMessage `json:"-"`
}

var creditUsageDataKnown = []string{
	"remainingCredits", "planCredits", "billingPeriodStart", "billingPeriodEnd",
}

func (d *CreditUsageData) UnmarshalJSON(data []byte) error {
	type plain CreditUsageData
	extra, err := decodeWithExtra(data, (*plain)(d), creditUsageDataKnown)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// CreditUsageResponse is the envelope for GET /team/credit-usage.
type CreditUsageResponse struct {
	Success bool             `json:"success"`
	Data    *CreditUsageData `json:"data"`
}

func (r *CreditUsageResponse) validate() error {
	if r.Data == nil {
		return newValidationError("credit usage response missing data")
	}
	return nil
}

// CreditUsagePeriod is one historical billing period.
type CreditUsagePeriod struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	APIKey       string `json:"apiKey,omitempty"`
	TotalCredits int    `json:"totalCredits"`

	Extra map[string]json.RawMessage `json:"-"`
}

var creditUsagePeriodKnown = []string{"startDate", "endDate", "apiKey", "totalCredits"}

func (p *CreditUsagePeriod) UnmarshalJSON(data []byte) error {
	type plain CreditUsagePeriod
	extra, err := decodeWithExtra(data, (*plain)(p), creditUsagePeriodKnown)
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// CreditUsageHistoricalResponse is the envelope for
// GET /team/credit-usage/historical.
type CreditUsageHistoricalResponse struct {
	Success bool                `json:"success"`
	Periods []CreditUsagePeriod `json:"periods"`
}

func (r *CreditUsageHistoricalResponse) validate() error {
	if r.Periods == nil {
		return newValidationError("credit usage historical response missing periods")
	}
	return nil
}

// TokenUsageData reports remaining tokens for the current billing period.
type TokenUsageData struct {
	RemainingTokens    int    `json:"remainingTokens"`
	PlanTokens         int    `json:"planTokens"`
	BillingPeriodStart string `json:"billingPeriodStart"`
	BillingPeriodEnd   string `json:"billingPeriodEnd"`

	Extra map[string]json.RawMessage `json:"-"`
}

var tokenUsageDataKnown = []string{
	"remainingTokens", "planTokens", "billingPeriodStart", "billingPeriodEnd",
}

func (d *TokenUsageData) UnmarshalJSON(data []byte) error {
	type plain TokenUsageData
	extra, err := decodeWithExtra(data, (*plain)(d), tokenUsageDataKnown)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// TokenUsageResponse is the envelope for GET /team/token-usage.
type TokenUsageResponse struct {
	Success bool            `json:"success"`
	Data    *TokenUsageData `json:"data"`
}

func (r *TokenUsageResponse) validate() error {
	if r.Data == nil {
		return newValidationError("token usage response missing data")
	}
	return nil
}

// TokenUsagePeriod is one historical billing period.
type TokenUsagePeriod struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	APIKey      string `json:"apiKey,omitempty"`
	TotalTokens int    `json:"totalTokens"`

	Extra map[string]json.RawMessage `json:"-"`
}

var tokenUsagePeriodKnown = []string{"startDate", "endDate", "apiKey", "totalTokens"}

func (p *TokenUsagePeriod) UnmarshalJSON(data []byte) error {
	type plain TokenUsagePeriod
	extra, err := decodeWithExtra(data, (*plain)(p), tokenUsagePeriodKnown)
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// TokenUsageHistoricalResponse is the envelope for
// GET /team/token-usage/historical.
type TokenUsageHistoricalResponse struct {
	Success bool               `json:"success"`
	Periods []TokenUsagePeriod `json:"periods"`
}

func (r *TokenUsageHistoricalResponse) validate() error {
	if r.Periods == nil {
		return newValidationError("token usage historical response missing periods")
	}
	return nil
}

// QueueStatusResponse is the envelope for GET /team/queue-status.
type QueueStatusResponse struct {
	Success            bool   `json:"success"`
	JobsInQueue        int    `json:"jobsInQueue"`
	ActiveJobsInQueue  int    `json:"activeJobsInQueue"`
	WaitingJobsInQueue int    `json:"waitingJobsInQueue"`
	MaxConcurrency     int    `json:"maxConcurrency"`
	MostRecentSuccess  string `json:"mostRecentSuccess,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var queueStatusResponseKnown = []string{
	"success", "jobsInQueue", "activeJobsInQueue", "waitingJobsInQueue",
	"maxConcurrency", "mostRecentSuccess",
}

func (r *QueueStatusResponse) UnmarshalJSON(data []byte) error {
	type plain QueueStatusResponse
	extra, err := decodeWithExtra(data, (*plain)(r), queueStatusResponseKnown)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}
