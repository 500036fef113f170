package firecrawl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("fc-test", WithBaseURL(srv.URL))
	t.Cleanup(client.Close)
	return client
}

func TestMapSendsAuthHeadersAndBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/map" {
			t.Errorf("expected path /map, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer fc-test" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["url"] != "https://example.com" {
			t.Errorf("expected url in body, got %v", body["url"])
		}
		if body["limit"].(float64) != 5000 {
			t.Errorf("expected default limit 5000 in body, got %v", body["limit"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"links":[{"url":"https://example.com"},{"url":"https://example.com/about","title":"About"}]}`))
	}))

	res, err := client.Map(context.Background(), NewMapRequest("https://example.com"))
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success=true")
	}
	if len(res.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(res.Links))
	}
	if res.Links[1].Title != "About" {
		t.Fatalf("expected link title About, got %q", res.Links[1].Title)
	}
}

func TestStatusCodeErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{"unauthorized", 401, `{}`, ErrorKindAuthentication, "Invalid API key"},
		{"payment required", 402, `{}`, ErrorKindPaymentRequired, "Insufficient credits"},
		{"rate limited", 429, `{}`, ErrorKindRateLimit, "Rate limit exceeded"},
		{"json error field", 500, `{"error":"boom"}`, ErrorKindAPI, "boom"},
		{"plain body", 404, `not here`, ErrorKindAPI, "not here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := client.Map(context.Background(), NewMapRequest("https://example.com"))
			if !IsKind(err, tc.kind) {
				t.Fatalf("expected kind %q, got %v", tc.kind, err)
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, apiErr.StatusCode)
			}
			if !strings.Contains(apiErr.Message, tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, apiErr.Message)
			}
		})
	}
}

func TestOperationsOnUninitializedClient(t *testing.T) {
	var zero Client
	_, err := zero.CreditUsage(context.Background())
	if !IsKind(err, ErrorKindNotInitialized) {
		t.Fatalf("zero-value client: expected not-initialized error, got %v", err)
	}

	client := NewClient("fc-test")
	client.Close()
	_, err = client.QueueStatus(context.Background())
	if !IsKind(err, ErrorKindNotInitialized) {
		t.Fatalf("closed client: expected not-initialized error, got %v", err)
	}
}

func TestValidationErrorSkipsTransport(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Map(context.Background(), NewMapRequest("not a url"))
	if !IsKind(err, ErrorKindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatalf("invalid request must not reach the server")
	}
}

func TestQueueStatusPreservesUnknownFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"jobsInQueue":3,"activeJobsInQueue":1,"waitingJobsInQueue":2,"maxConcurrency":10,"futureMetric":42}`))
	}))

	res, err := client.QueueStatus(context.Background())
	if err != nil {
		t.Fatalf("QueueStatus returned error: %v", err)
	}
	if res.JobsInQueue != 3 || res.MaxConcurrency != 10 {
		t.Fatalf("known fields not populated: %+v", res)
	}
	raw, ok := res.Extra["futureMetric"]
	if !ok {
		t.Fatalf("expected unknown field retained, got %v", res.Extra)
	}
	if string(raw) != "42" {
		t.Fatalf("expected raw value 42, got %s", raw)
	}
}

func TestHistoricalUsageQueryFlag(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("byApiKey")
		w.Write([]byte(`{"success":true,"periods":[]}`))
	}))

	if _, err := client.CreditUsageHistorical(context.Background(), true); err != nil {
		t.Fatalf("CreditUsageHistorical returned error: %v", err)
	}
	if gotQuery != "true" {
		t.Fatalf("expected byApiKey=true query parameter, got %q", gotQuery)
	}

	if _, err := client.TokenUsageHistorical(context.Background(), false); err != nil {
		t.Fatalf("TokenUsageHistorical returned error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no byApiKey query parameter, got %q", gotQuery)
	}
}

func TestUnknownJobStatusRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"warming-up","total":1}`))
	}))

	_, err := client.CrawlStatus(context.Background(), "job-1")
	if !IsKind(err, ErrorKindValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestJobStartResponseRequiresID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"url":"https://api.firecrawl.dev/v2/crawl/x"}`))
	}))

	_, err := client.Crawl(context.Background(), NewCrawlRequest("https://example.com"))
	if !IsKind(err, ErrorKindValidation) {
		t.Fatalf("expected validation error for missing job id, got %v", err)
	}
}

func TestScrapeResponseRequiresData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))

	_, err := client.Scrape(context.Background(), NewScrapeRequest("https://example.com"))
	if !IsKind(err, ErrorKindValidation) {
		t.Fatalf("expected validation error for missing data, got %v", err)
	}
}

func TestCancelCrawlUsesDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/crawl/job-9" {
			t.Errorf("expected path /crawl/job-9, got %s", r.URL.Path)
		}
		if r.ContentLength > 0 {
			t.Errorf("DELETE must carry no body, got length %d", r.ContentLength)
		}
		w.Write([]byte(`{"success":true,"status":"cancelled"}`))
	}))

	res, err := client.CancelCrawl(context.Background(), "job-9")
	if err != nil {
		t.Fatalf("CancelCrawl returned error: %v", err)
	}
	if res.Status != "cancelled" {
		t.Fatalf("expected status cancelled, got %q", res.Status)
	}
}

func TestCrawlErrorsEndpoint(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crawl/job-2/errors" {
			t.Errorf("expected path /crawl/job-2/errors, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"errors":[{"id":"e1","timestamp":"2026-08-30T00:00:00Z","url":"https://example.com/x","error":"timeout"}],"robotsBlocked":["https://example.com/private"]}`))
	}))

	res, err := client.CrawlErrors(context.Background(), "job-2")
	if err != nil {
		t.Fatalf("CrawlErrors returned error: %v", err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Error != "timeout" {
		t.Fatalf("unexpected errors payload: %+v", res.Errors)
	}
	if len(res.RobotsBlocked) != 1 {
		t.Fatalf("expected one robots-blocked URL, got %v", res.RobotsBlocked)
	}
}

func TestSearchDecodesGroupedResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"success": true,
			"data": {
				"web": [{"title": "Go", "url": "https://go.dev", "position": 1, "relevance": 0.97}],
				"news": [{"title": "Release", "url": "https://go.dev/blog", "position": 1, "date": "2026-08-12"}]
			},
			"creditsUsed": 2
		}`))
	}))

	res, err := client.Search(context.Background(), NewSearchRequest("golang"))
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(res.Data.Web) != 1 || res.Data.Web[0].URL != "https://go.dev" {
		t.Fatalf("unexpected web results: %+v", res.Data.Web)
	}
	if _, ok := res.Data.Web[0].Extra["relevance"]; !ok {
		t.Fatalf("expected unknown result field retained, got %v", res.Data.Web[0].Extra)
	}
	if len(res.Data.News) != 1 || res.Data.News[0].Date != "2026-08-12" {
		t.Fatalf("unexpected news results: %+v", res.Data.News)
	}
	if res.CreditsUsed == nil || *res.CreditsUsed != 2 {
		t.Fatalf("expected creditsUsed 2, got %v", res.CreditsUsed)
	}
}

func TestActiveCrawlsAndParamsPreview(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crawl/active":
			w.Write([]byte(`{"success":true,"crawls":[{"id":"c1","url":"https://example.com","priority":5}]}`))
		case "/crawl/params-preview":
			w.Write([]byte(`{"success":true,"data":{"url":"https://example.com","includePaths":["/docs/*"],"limit":250,"reasoning":"docs subtree only"}}`))
		default:
			http.NotFound(w, r)
		}
	}))

	active, err := client.ActiveCrawls(context.Background())
	if err != nil {
		t.Fatalf("ActiveCrawls returned error: %v", err)
	}
	if len(active.Crawls) != 1 || active.Crawls[0].ID != "c1" {
		t.Fatalf("unexpected active crawls: %+v", active.Crawls)
	}
	if _, ok := active.Crawls[0].Extra["priority"]; !ok {
		t.Fatalf("expected unknown crawl field retained, got %v", active.Crawls[0].Extra)
	}

	preview, err := client.CrawlParamsPreview(context.Background(), NewCrawlParamsPreviewRequest("https://example.com", "only the docs"))
	if err != nil {
		t.Fatalf("CrawlParamsPreview returned error: %v", err)
	}
	if preview.Data.Limit == nil || *preview.Data.Limit != 250 {
		t.Fatalf("expected generated limit 250, got %v", preview.Data.Limit)
	}
	if _, ok := preview.Data.Extra["reasoning"]; !ok {
		t.Fatalf("expected unknown preview field retained, got %v", preview.Data.Extra)
	}
}

func TestEmptyJobIDRejectedLocally(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the server")
	}))

	_, err := client.CrawlStatus(context.Background(), "")
	if !IsKind(err, ErrorKindValidation) {
		t.Fatalf("expected validation error for empty job id, got %v", err)
	}
}
