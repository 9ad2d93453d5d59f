// Package gemini implements the market data gateway on top of Google Gemini
// with Google Search grounding. Every call is a single attempt; callers decide
// how to degrade when it fails.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"google.golang.org/genai"
)

// SourceName tags quotes obtained from Gemini.
const SourceName = "gemini"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// requestTimeout bounds a single grounded generation.
const requestTimeout = 90 * time.Second

// Generator produces the text answer to a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Client is a market.Gateway backed by Gemini.
type Client struct {
	gen Generator
}

// NewClient creates a Gemini client for the given API key and model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewClientWithGenerator(&modelGenerator{client: client, model: model}), nil
}

// NewClientWithGenerator creates a client over an arbitrary Generator.
func NewClientWithGenerator(gen Generator) *Client {
	return &Client{gen: gen}
}

type modelGenerator struct {
	client *genai.Client
	model  string
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		[]*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
		config,
	)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	text := resp.Text()
	log.Debug().
		Str("model", g.model).
		Dur("duration", time.Since(start)).
		Int("response_length", len(text)).
		Msg("Gemini generation completed")

	return text, nil
}

// groundedJSON is the config for a Google Search grounded call constrained to schema.
func groundedJSON(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// decodeArray parses a JSON array answer. An empty answer decodes to an empty slice.
func decodeArray[T any](text string) ([]T, error) {
	text = stripMarkdownFences(text)
	if text == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// stripMarkdownFences removes a ```json ... ``` wrapper some answers still carry.
func stripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
