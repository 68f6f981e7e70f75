package pipeline

import (
	"context"
	"time"

	"pagebrief/internal/config"
	"pagebrief/internal/core"
	"pagebrief/internal/fetch"
	"pagebrief/internal/llm"
	"pagebrief/internal/logger"
	"pagebrief/internal/summarize"

	"github.com/google/uuid"
)

// Result is the output of one pipeline run.
type Result struct {
	RequestID string
	Article   *core.Article
	Summary   *core.Summary
	Duration  time.Duration
}

// Pipeline runs fetch then summarize for a single URL.
type Pipeline struct {
	fetcher    ContentFetcher
	summarizer ArticleSummarizer
	closer     func()
}

// New creates a pipeline from its two stages.
func New(fetcher ContentFetcher, summarizer ArticleSummarizer) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
	}
}

// NewFromConfig wires the fetcher, the configured generation provider and the
// summarizer. A missing API key fails here, before any network call.
func NewFromConfig(cfg *config.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewFetcher(fetch.Options{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       cfg.FetchTimeout(),
		MinTextLength: cfg.Fetch.MinTextLength,
		MaxBodyBytes:  cfg.Fetch.MaxBodyBytes,
	})

	opts := summarize.DefaultSummarizerOptions()
	opts.MaxInputChars = cfg.Summarize.MaxInputChars
	opts.Timeout = cfg.GenerationTimeout()

	summarizer := summarize.NewTracedSummarizer(summarize.NewSummarizer(provider, opts), logger.Get())
	p := New(fetcher, summarizer)
	p.closer = provider.Close
	return p, nil
}

// Run fetches rawURL and summarizes it in style. The summarizer is never
// invoked when the fetch fails.
func (p *Pipeline) Run(ctx context.Context, rawURL string, style summarize.Style) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := logger.Get().With().Str("request_id", requestID).Logger()

	log.Info().Str("url", rawURL).Str("style", style.String()).Msg("Getting website content")
	article, err := p.fetcher.FetchArticle(ctx, rawURL)
	if err != nil {
		log.Warn().Err(err).Msg("Fetch failed")
		return nil, err
	}
	log.Debug().Str("url", article.URL).Int("chars", len(article.CleanedText)).Msg("Content extracted")

	log.Info().Msg("Creating summary")
	summary, err := p.summarizer.SummarizeArticle(ctx, article, style)
	if err != nil {
		log.Warn().Err(err).Msg("Summary failed")
		return nil, err
	}

	result := &Result{
		RequestID: requestID,
		Article:   article,
		Summary:   summary,
		Duration:  time.Since(start),
	}
	log.Info().Dur("duration", result.Duration).Bool("truncated", summary.Truncated).Msg("Summary created")

	return result, nil
}

// Close releases the generation provider when the pipeline owns it.
func (p *Pipeline) Close() {
	if p.closer != nil {
		p.closer()
	}
}
