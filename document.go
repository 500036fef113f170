package firecrawl

import (
	json "github.com/goccy/go-json"
)

// DocumentMetadata describes the page a document came from. The service adds
// metadata fields over time; anything we do not model lands in Extra.
type DocumentMetadata struct {
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	Language          string   `json:"language,omitempty"`
	Keywords          string   `json:"keywords,omitempty"`
	SourceURL         string   `json:"sourceURL,omitempty"`
	OgLocaleAlternate []string `json:"ogLocaleAlternate,omitempty"`
	StatusCode        *int     `json:"statusCode,omitempty"`
	Error             string   `json:"error,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var documentMetadataKnown = []string{
	"title", "description", "language", "keywords", "sourceURL",
	"ogLocaleAlternate", "statusCode", "error",
}

func (m *DocumentMetadata) UnmarshalJSON(data []byte) error {
	type plain DocumentMetadata
	extra, err := decodeWithExtra(data, (*plain)(m), documentMetadataKnown)
	if err != nil {
		return err
	}
	m.Extra = extra
	return nil
}

// ChangeTracking reports how a page changed since the previous scrape.
type ChangeTracking struct {
	PreviousScrapeAt string         `json:"previousScrapeAt,omitempty"`
	ChangeStatus     string         `json:"changeStatus,omitempty"`
	Visibility       string         `json:"visibility,omitempty"`
	Diff             string         `json:"diff,omitempty"`
	JSON             map[string]any `json:"json,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var changeTrackingKnown = []string{
	"previousScrapeAt", "changeStatus", "visibility", "diff", "json",
}

func (c *ChangeTracking) UnmarshalJSON(data []byte) error {
	type plain ChangeTracking
	extra, err := decodeWithExtra(data, (*plain)(c), changeTrackingKnown)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// Document is the scraped-content payload returned by scrape, batch scrape
// and crawl operations. Which fields are populated depends on the requested
// formats.
type Document struct {
	Markdown       string            `json:"markdown,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	HTML           string            `json:"html,omitempty"`
	RawHTML        string            `json:"rawHtml,omitempty"`
	Links          []string          `json:"links,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Screenshot     string            `json:"screenshot,omitempty"`
	JSON           map[string]any    `json:"json,omitempty"`
	Branding       map[string]any    `json:"branding,omitempty"`
	Actions        map[string]any    `json:"actions,omitempty"`
	Metadata       *DocumentMetadata `json:"metadata,omitempty"`
	Warning        string            `json:"warning,omitempty"`
	ChangeTracking *ChangeTracking   `json:"changeTracking,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var documentKnown = []string{
	"markdown", "summary", "html", "rawHtml", "links", "images", "screenshot",
	"json", "branding", "actions", "metadata", "warning", "changeTracking",
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	extra, err := decodeWithExtra(data, (*plain)(d), documentKnown)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}
