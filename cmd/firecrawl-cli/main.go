package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"firecrawl"
	"firecrawl/internal/config"
)

const usage = `usage: firecrawl-cli [flags] <command> [args]

commands:
  map <url>               discover the URLs of a website
  scrape <url>            scrape a single URL
  search <query>          search the web
  crawl <url>             start a crawl and wait for it to finish
  crawl-status <id>       fetch crawl job status
  crawl-cancel <id>       request crawl cancellation
  batch <url> [url...]    batch scrape URLs and wait
  extract <url> [url...]  extract structured data (use -prompt) and wait
  agent <prompt>          run an agent task and wait
  credit-usage            remaining team credits
  token-usage             remaining team tokens
  queue-status            team scrape queue metrics
`

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	baseURL := flag.String("base-url", "", "override the API base URL")
	keyFile := flag.String("api-key-file", "", "path to the API key file")
	limit := flag.Int("limit", 0, "override the request limit")
	prompt := flag.String("prompt", "", "prompt for extract")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config failed: %v", err)
		}
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if *keyFile != "" {
		cfg.Client.APIKeyFile = *keyFile
	}

	level := slog.LevelInfo
	if *verbose || cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	apiKey, err := firecrawl.LoadAPIKey(cfg.Client.APIKeyFile)
	if err != nil {
		log.Fatalf("resolve API key failed: %v", err)
	}

	opts := []firecrawl.Option{firecrawl.WithLogger(logger)}
	if cfg.Client.BaseURL != "" {
		opts = append(opts, firecrawl.WithBaseURL(cfg.Client.BaseURL))
	}
	client := firecrawl.NewClient(apiKey, opts...)
	defer client.Close()

	poll := &firecrawl.PollOptions{
		Interval:    time.Duration(cfg.Poll.IntervalMs) * time.Millisecond,
		MaxAttempts: cfg.Poll.MaxAttempts,
	}

	ctx := context.Background()

	switch cmd, operands := args[0], args[1:]; cmd {
	case "map":
		req := firecrawl.NewMapRequest(operand(operands, "url"))
		if *limit > 0 {
			req.Limit = *limit
		}
		printJSON(run(client.Map(ctx, req)))
	case "scrape":
		printJSON(run(client.Scrape(ctx, firecrawl.NewScrapeRequest(operand(operands, "url")))))
	case "search":
		req := firecrawl.NewSearchRequest(operand(operands, "query"))
		if *limit > 0 {
			req.Limit = *limit
		}
		printJSON(run(client.Search(ctx, req)))
	case "crawl":
		req := firecrawl.NewCrawlRequest(operand(operands, "url"))
		if *limit > 0 {
			req.Limit = *limit
		}
		job := run(client.Crawl(ctx, req))
		logger.Info("crawl started", "id", job.ID)
		printJSON(run(client.WaitForCrawl(ctx, job.ID, poll)))
	case "crawl-status":
		printJSON(run(client.CrawlStatus(ctx, operand(operands, "id"))))
	case "crawl-cancel":
		printJSON(run(client.CancelCrawl(ctx, operand(operands, "id"))))
	case "batch":
		if len(operands) == 0 {
			log.Fatalf("batch: at least one url is required")
		}
		job := run(client.BatchScrape(ctx, firecrawl.NewBatchScrapeRequest(operands)))
		logger.Info("batch scrape started", "id", job.ID)
		printJSON(run(client.WaitForBatchScrape(ctx, job.ID, poll)))
	case "extract":
		if len(operands) == 0 {
			log.Fatalf("extract: at least one url is required")
		}
		req := firecrawl.NewExtractRequest(operands)
		req.Prompt = *prompt
		job := run(client.Extract(ctx, req))
		logger.Info("extract started", "id", job.ID)
		printJSON(run(client.WaitForExtract(ctx, job.ID, poll)))
	case "agent":
		job := run(client.Agent(ctx, firecrawl.NewAgentRequest(operand(operands, "prompt"))))
		logger.Info("agent started", "id", job.ID)
		printJSON(run(client.WaitForAgent(ctx, job.ID, poll)))
	case "credit-usage":
		printJSON(run(client.CreditUsage(ctx)))
	case "token-usage":
		printJSON(run(client.TokenUsage(ctx)))
	case "queue-status":
		printJSON(run(client.QueueStatus(ctx)))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func operand(operands []string, name string) string {
	if len(operands) != 1 {
		log.Fatalf("expected exactly one %s argument", name)
	}
	return operands[0]
}

func run[T any](result *T, err error) *T {
	if err != nil {
		log.Fatalf("%v", err)
	}
	return result
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(data))
}
