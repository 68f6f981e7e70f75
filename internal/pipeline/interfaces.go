package pipeline

import (
	"context"

	"pagebrief/internal/core"
	"pagebrief/internal/summarize"
)

// ContentFetcher retrieves a page and extracts its text
type ContentFetcher interface {
	// FetchArticle fetches and extracts content from a URL
	FetchArticle(ctx context.Context, url string) (*core.Article, error)
}

// ArticleSummarizer generates a styled summary from an article
type ArticleSummarizer interface {
	SummarizeArticle(ctx context.Context, article *core.Article, style summarize.Style) (*core.Summary, error)
}

// Runner is the single-URL operation shared by the CLI, TUI and web form
type Runner interface {
	Run(ctx context.Context, rawURL string, style summarize.Style) (*Result, error)
}
