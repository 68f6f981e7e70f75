package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pagebrief/internal/config"

	"google.golang.org/genai"
)

// DefaultModel is the default Gemini model used for summaries.
const DefaultModel = "gemini-2.0-flash"

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Provider is a text-generation backend.
type Provider interface {
	// GenerateText sends a single prompt and returns the completion text verbatim.
	GenerateText(ctx context.Context, prompt string, options TextGenerationOptions) (string, error)
	// GetModelName returns the model identifier used for generation.
	GetModelName() string
	// Close releases provider resources.
	Close()
}

// TextGenerationOptions contains options for text generation
type TextGenerationOptions struct {
	MaxTokens   int32   // Maximum number of tokens to generate
	Temperature *float32 // Temperature for randomness (0.0 to 1.0); nil uses the client default
	Model       string  // Model to use (optional, defaults to client's model)
}

// Client is a Gemini-backed Provider.
type Client struct {
	modelName string
	defaults  TextGenerationOptions
	gClient   *genai.Client
}

// ClientOptions configures a Gemini client.
type ClientOptions struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature *float32
	BaseURL     string       // overrides the API endpoint (tests, proxies)
	HTTPClient  *http.Client // optional
}

// NewClient creates a Gemini client. The API key must already be resolved;
// no network call is made here.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini client: %w", config.ErrMissingAPIKey)
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	gClient, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: opts.Model,
		defaults: TextGenerationOptions{
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		},
		gClient: gClient,
	}, nil
}

// GenerateText generates text using the LLM with specified options
func (c *Client) GenerateText(ctx context.Context, prompt string, options TextGenerationOptions) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	options = mergeOptions(options, c.defaults)
	modelName := c.modelName
	if options.Model != "" {
		modelName = options.Model
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var cfg *genai.GenerateContentConfig
	if options.MaxTokens > 0 || options.Temperature != nil {
		cfg = &genai.GenerateContentConfig{}
		if options.MaxTokens > 0 {
			cfg.MaxOutputTokens = options.MaxTokens
		}
		if options.Temperature != nil {
			temp := *options.Temperature
			cfg.Temperature = &temp
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// GetModelName returns the model name used by this client
func (c *Client) GetModelName() string {
	return c.modelName
}

// Close cleans up resources used by the client
func (c *Client) Close() {
	// genai client doesn't require explicit close
}

// NewProvider builds the provider selected in configuration. Missing
// credentials are reported before any client is constructed.
func NewProvider(cfg *config.Config) (Provider, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	switch cfg.AI.Provider {
	case "openai":
		return NewOpenAIClient(OpenAIOptions{
			APIKey:  cfg.AI.OpenAI.APIKey,
			Model:   cfg.AI.OpenAI.Model,
			BaseURL: cfg.AI.OpenAI.BaseURL,
		})
	case "gemini", "":
		return NewClient(ClientOptions{
			APIKey:      cfg.AI.Gemini.APIKey,
			Model:       cfg.AI.Gemini.Model,
			MaxTokens:   cfg.AI.Gemini.MaxTokens,
			Temperature: cfg.AI.Gemini.Temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}
}

func mergeOptions(options, defaults TextGenerationOptions) TextGenerationOptions {
	if options.MaxTokens == 0 {
		options.MaxTokens = defaults.MaxTokens
	}
	if options.Temperature == nil {
		options.Temperature = defaults.Temperature
	}
	if options.Model == "" {
		options.Model = defaults.Model
	}
	return options
}
