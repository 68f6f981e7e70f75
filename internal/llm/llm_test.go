package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagebrief/internal/config"
)

func TestNewClient_NoAPIKey(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}
}

func TestNewOpenAIClient_NoAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIOptions{})
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}
}

func TestNewProvider_MissingCredentials(t *testing.T) {
	testCases := []struct {
		name     string
		provider string
	}{
		{name: "gemini", provider: "gemini"},
		{name: "openai", provider: "openai"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{AI: config.AI{Provider: tc.provider}}
			provider, err := NewProvider(cfg)
			if provider != nil {
				t.Error("Expected no provider when credentials are missing")
			}
			if !errors.Is(err, config.ErrMissingAPIKey) {
				t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
			}
		})
	}
}

func TestNewProvider_SelectsBackend(t *testing.T) {
	gemini, err := NewProvider(&config.Config{AI: config.AI{
		Provider: "gemini",
		Gemini:   config.GeminiConfig{APIKey: "test-key", Model: "gemini-test"},
	}})
	if err != nil {
		t.Fatalf("NewProvider(gemini) failed: %v", err)
	}
	defer gemini.Close()
	if _, ok := gemini.(*Client); !ok {
		t.Errorf("Expected *Client, got %T", gemini)
	}
	if gemini.GetModelName() != "gemini-test" {
		t.Errorf("Expected model gemini-test, got %s", gemini.GetModelName())
	}

	oa, err := NewProvider(&config.Config{AI: config.AI{
		Provider: "openai",
		OpenAI:   config.OpenAIConfig{APIKey: "test-key"},
	}})
	if err != nil {
		t.Fatalf("NewProvider(openai) failed: %v", err)
	}
	if _, ok := oa.(*OpenAIClient); !ok {
		t.Errorf("Expected *OpenAIClient, got %T", oa)
	}
	if oa.GetModelName() != DefaultOpenAIModel {
		t.Errorf("Expected default model %s, got %s", DefaultOpenAIModel, oa.GetModelName())
	}
}

func TestGenerateText_EmptyPrompt(t *testing.T) {
	client, err := NewClient(ClientOptions{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.GenerateText(context.Background(), "", TextGenerationOptions{}); err == nil {
		t.Error("Expected error for empty prompt")
	}
}

func TestClient_GenerateText(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			gotPrompt = body.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"A concise overview."}]},"finishReason":"STOP"}]}`)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: server.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	text, err := client.GenerateText(context.Background(), "Summarize this", TextGenerationOptions{})
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "A concise overview." {
		t.Errorf("Expected model text verbatim, got %q", text)
	}
	if gotPrompt != "Summarize this" {
		t.Errorf("Expected prompt to be sent, got %q", gotPrompt)
	}
}

func TestClient_GenerateText_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{APIKey: "bad-key", BaseURL: server.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.GenerateText(context.Background(), "Summarize this", TextGenerationOptions{})
	if err == nil {
		t.Fatal("Expected error for unauthorized response")
	}
	if !strings.Contains(err.Error(), "failed to generate text") {
		t.Errorf("Expected wrapped generation error, got %v", err)
	}
}

func TestClient_GenerateText_ZeroTemperatureIsSent(t *testing.T) {
	testCases := []struct {
		name     string
		defaults *float32
		options  *float32
		expected *float64
	}{
		{name: "unset", expected: nil},
		{name: "client default zero", defaults: ptr(float32(0)), expected: ptr(0.0)},
		{name: "call overrides default", defaults: ptr(float32(0.7)), options: ptr(float32(0)), expected: ptr(0.0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got *float64
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					GenerationConfig *struct {
						Temperature *float64 `json:"temperature"`
					} `json:"generationConfig"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.GenerationConfig != nil {
					got = body.GenerationConfig.Temperature
				}
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]},"finishReason":"STOP"}]}`)
			}))
			defer server.Close()

			client, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: server.URL + "/", Temperature: tc.defaults})
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if _, err := client.GenerateText(context.Background(), "Summarize this", TextGenerationOptions{Temperature: tc.options}); err != nil {
				t.Fatalf("GenerateText failed: %v", err)
			}

			switch {
			case tc.expected == nil && got != nil:
				t.Errorf("Expected no temperature, got %v", *got)
			case tc.expected != nil && (got == nil || *got != *tc.expected):
				t.Errorf("Expected temperature %v, got %v", *tc.expected, got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func newOpenAIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIClient_GenerateText(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"1. First point"},"finish_reason":"stop"}]}`)

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}

	text, err := client.GenerateText(context.Background(), "List key points", TextGenerationOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "1. First point" {
		t.Errorf("Expected response verbatim, got %q", text)
	}
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[]}`)

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}

	_, err = client.GenerateText(context.Background(), "List key points", TextGenerationOptions{})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIClient_AuthFailure(t *testing.T) {
	server := newOpenAIServer(t, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}

	_, err = client.GenerateText(context.Background(), "List key points", TextGenerationOptions{})
	if err == nil {
		t.Fatal("Expected error for unauthorized response")
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Errorf("Expected provider message in error, got %v", err)
	}
}
