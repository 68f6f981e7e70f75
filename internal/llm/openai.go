package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"pagebrief/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no OpenAI model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient is a Provider for OpenAI-compatible chat completion endpoints.
type OpenAIClient struct {
	modelName string
	client    *openai.Client
}

// OpenAIOptions configures an OpenAIClient.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewOpenAIClient creates an OpenAI-compatible client without contacting the endpoint.
func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai client: %w", config.ErrMissingAPIKey)
	}
	if opts.Model == "" {
		opts.Model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	return &OpenAIClient{
		modelName: opts.Model,
		client:    openai.NewClientWithConfig(cfg),
	}, nil
}

// GenerateText sends the prompt as a single user message.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string, options TextGenerationOptions) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	model := c.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if options.Temperature != nil {
		// The request omits a zero temperature, so send the smallest positive value instead
		req.Temperature = max(*options.Temperature, math.SmallestNonzeroFloat32)
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = int(options.MaxTokens)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// GetModelName returns the configured model.
func (c *OpenAIClient) GetModelName() string {
	return c.modelName
}

// Close is a no-op; the underlying HTTP client is shared.
func (c *OpenAIClient) Close() {}
