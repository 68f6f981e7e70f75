package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pagebrief/internal/core"
	"pagebrief/internal/llm"

	"github.com/google/uuid"
)

// LLMClient defines the interface for LLM operations
type LLMClient interface {
	// GenerateText generates text from a prompt
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
	// GetModelName returns the model identifier
	GetModelName() string
}

// Summarizer turns extracted article text into a styled summary.
type Summarizer struct {
	llmClient LLMClient
	options   SummarizerOptions
}

// SummarizerOptions configures the summarizer behavior
type SummarizerOptions struct {
	// MaxInputChars is the hard cap on characters sent to the model
	MaxInputChars int
	// Timeout bounds the generation call; zero disables it
	Timeout time.Duration
	// Generation settings passed through to the client
	MaxTokens   int32
	Temperature *float32
}

// DefaultSummarizerOptions returns sensible defaults
func DefaultSummarizerOptions() SummarizerOptions {
	return SummarizerOptions{
		MaxInputChars: 10000,
		Timeout:       60 * time.Second,
	}
}

// NewSummarizer creates a new summarizer with the given LLM client
func NewSummarizer(llmClient LLMClient, options SummarizerOptions) *Summarizer {
	if options.MaxInputChars <= 0 {
		options.MaxInputChars = DefaultSummarizerOptions().MaxInputChars
	}
	return &Summarizer{
		llmClient: llmClient,
		options:   options,
	}
}

// NewSummarizerWithDefaults creates a summarizer with default options
func NewSummarizerWithDefaults(llmClient LLMClient) *Summarizer {
	return NewSummarizer(llmClient, DefaultSummarizerOptions())
}

// SummarizeArticle summarizes article.CleanedText in the requested style.
func (s *Summarizer) SummarizeArticle(ctx context.Context, article *core.Article, style Style) (*core.Summary, error) {
	if article == nil {
		return nil, fmt.Errorf("article is nil")
	}

	text, truncated, err := s.SummarizeText(ctx, article.CleanedText, style)
	if err != nil {
		return nil, err
	}

	return &core.Summary{
		ID:            uuid.NewString(),
		URL:           article.URL,
		Title:         article.Title,
		Style:         style.String(),
		SummaryText:   text,
		ModelUsed:     s.llmClient.GetModelName(),
		Truncated:     truncated,
		DateGenerated: time.Now().UTC(),
	}, nil
}

// SummarizeText truncates text, builds the prompt for style and returns the
// model response verbatim. Generation failures are returned as
// *GenerationError, deadline expiry as *TimeoutError. Nothing is retried.
func (s *Summarizer) SummarizeText(ctx context.Context, text string, style Style) (string, bool, error) {
	if text == "" {
		return "", false, &GenerationError{Err: fmt.Errorf("no content to summarize")}
	}

	input, truncated := Truncate(text, s.options.MaxInputChars)
	prompt := BuildPrompt(style, input)

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	response, err := s.llmClient.GenerateText(ctx, prompt, llm.TextGenerationOptions{
		MaxTokens:   s.options.MaxTokens,
		Temperature: s.options.Temperature,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", truncated, &TimeoutError{Timeout: s.options.Timeout, Err: err}
		}
		return "", truncated, &GenerationError{Err: err}
	}
	if response == "" {
		return "", truncated, &GenerationError{Err: llm.ErrEmptyResponse}
	}

	return response, truncated, nil
}
