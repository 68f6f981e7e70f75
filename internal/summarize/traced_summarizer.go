package summarize

import (
	"context"
	"time"

	"pagebrief/internal/core"

	"github.com/rs/zerolog"
)

// TracedSummarizer wraps a Summarizer and records one log event per generation
type TracedSummarizer struct {
	summarizer *Summarizer
	log        *zerolog.Logger
}

// NewTracedSummarizer creates a summarizer that traces to log
func NewTracedSummarizer(summarizer *Summarizer, log *zerolog.Logger) *TracedSummarizer {
	return &TracedSummarizer{
		summarizer: summarizer,
		log:        log,
	}
}

// SummarizeArticle wraps the standard summarizer with tracking
func (t *TracedSummarizer) SummarizeArticle(ctx context.Context, article *core.Article, style Style) (*core.Summary, error) {
	startTime := time.Now()
	summary, err := t.summarizer.SummarizeArticle(ctx, article, style)
	latency := time.Since(startTime)

	inputChars := 0
	if article != nil {
		inputChars = len([]rune(article.CleanedText))
	}

	if err != nil {
		t.log.Debug().
			Err(err).
			Str("style", style.String()).
			Int("input_chars", inputChars).
			Dur("latency", latency).
			Msg("Generation failed")
		return nil, err
	}

	t.log.Debug().
		Str("model", summary.ModelUsed).
		Str("style", summary.Style).
		Int("input_chars", inputChars).
		Bool("truncated", summary.Truncated).
		Int("completion_chars", len([]rune(summary.SummaryText))).
		Dur("latency", latency).
		Msg("Generation completed")

	return summary, nil
}
