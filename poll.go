package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Poll defaults: the service recommends a ~3 second cadence, and 60 attempts
// gives a ~3 minute budget.
const (
	DefaultPollInterval    = 3 * time.Second
	DefaultPollMaxAttempts = 60
)

// PollOptions controls the wait loop of the WaitFor helpers.
//
// Passing nil selects the defaults. In a non-nil value, a zero or negative
// Interval polls without delay and a non-positive MaxAttempts falls back to
// the default attempt budget.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

func (o *PollOptions) interval() time.Duration {
	if o == nil {
		return DefaultPollInterval
	}
	if o.Interval <= 0 {
		// go-retry rejects non-positive backoff values.
		return time.Nanosecond
	}
	return o.Interval
}

func (o *PollOptions) maxAttempts() int {
	if o == nil || o.MaxAttempts <= 0 {
		return DefaultPollMaxAttempts
	}
	return o.MaxAttempts
}

var errJobRunning = errors.New("job has not reached a terminal status")

// awaitJob drives a job to a terminal status using only the status fetch
// primitive. The fetch runs at most maxAttempts times at a fixed interval;
// any fetch error aborts immediately. Exhausting the budget, or the context
// deadline, yields the poll-timeout error kind. A terminal status is
// returned as-is, including failed and cancelled.
func awaitJob[T any](ctx context.Context, opts *PollOptions, fetch func(context.Context) (*T, error), terminal func(*T) bool) (*T, error) {
	attempts := opts.maxAttempts()
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(opts.interval()))

	var last *T
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, err := fetch(ctx)
		if err != nil {
			return err
		}
		last = status
		if terminal(status) {
			return nil
		}
		return retry.RetryableError(errJobRunning)
	})
	if err != nil {
		if errors.Is(err, errJobRunning) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{
				Kind:    ErrorKindPollTimeout,
				Message: fmt.Sprintf("no terminal status after %d attempts", attempts),
				Cause:   err,
			}
		}
		return nil, err
	}
	return last, nil
}

// WaitForCrawl polls a crawl job until it reports completed, failed or
// cancelled.
func (c *Client) WaitForCrawl(ctx context.Context, jobID string, opts *PollOptions) (*CrawlStatusResponse, error) {
	return awaitJob(ctx, opts,
		func(ctx context.Context) (*CrawlStatusResponse, error) { return c.CrawlStatus(ctx, jobID) },
		func(st *CrawlStatusResponse) bool { return st.Status.Terminal() })
}

// WaitForBatchScrape polls a batch scrape job until it reports completed,
// failed or cancelled.
func (c *Client) WaitForBatchScrape(ctx context.Context, jobID string, opts *PollOptions) (*BatchScrapeStatusResponse, error) {
	return awaitJob(ctx, opts,
		func(ctx context.Context) (*BatchScrapeStatusResponse, error) { return c.BatchScrapeStatus(ctx, jobID) },
		func(st *BatchScrapeStatusResponse) bool { return st.Status.Terminal() })
}

// WaitForExtract polls an extraction job until it reports completed, failed
// or cancelled.
func (c *Client) WaitForExtract(ctx context.Context, jobID string, opts *PollOptions) (*ExtractStatusResponse, error) {
	return awaitJob(ctx, opts,
		func(ctx context.Context) (*ExtractStatusResponse, error) { return c.ExtractStatus(ctx, jobID) },
		func(st *ExtractStatusResponse) bool { return st.Status.Terminal() })
}

// WaitForAgent polls an agent job until it reports completed or failed.
func (c *Client) WaitForAgent(ctx context.Context, jobID string, opts *PollOptions) (*AgentStatusResponse, error) {
	return awaitJob(ctx, opts,
		func(ctx context.Context) (*AgentStatusResponse, error) { return c.AgentStatus(ctx, jobID) },
		func(st *AgentStatusResponse) bool { return st.Status.Terminal() })
}
