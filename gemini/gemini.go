// Package gemini adapts the Gemini API to the embedding and generation
// contracts: one embedding call per query and one generation call per answer,
// no retries or streaming.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lexgrove/faqrag"
)

const (
	DefaultEmbeddingModel  = "text-embedding-004"
	DefaultGenerativeModel = "gemini-1.5-flash-001"
)

var (
	ErrEmptyEmbedding  = errors.New("provider returned an empty embedding")
	ErrEmptyCandidates = errors.New("provider returned no candidates")
)

type Client struct {
	client *genai.Client

	embeddingModel  string
	generativeModel string
}

func NewClient(ctx context.Context, cfg faqrag.GeminiConfig) (*Client, error) {
	var opts []option.ClientOption

	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}

	if cfg.GenerativeModel == "" {
		cfg.GenerativeModel = DefaultGenerativeModel
	}

	return &Client{
		client:          client,
		embeddingModel:  cfg.EmbeddingModel,
		generativeModel: cfg.GenerativeModel,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	model := c.client.EmbeddingModel(c.embeddingModel)

	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, ErrEmptyEmbedding
	}

	return resp.Embedding.Values, nil
}

func (c *Client) Generate(ctx context.Context, prompt, systemPolicy string, opts faqrag.GenerationOptions) (string, error) {
	model := c.client.GenerativeModel(c.generativeModel)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPolicy)},
	}

	settings, err := safetySettings(opts.SafetySettings)
	if err != nil {
		return "", err
	}

	model.SafetySettings = settings
	applyGenerationConfig(model, opts.Generation)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp)
}

var harmCategories = map[string]genai.HarmCategory{
	"harassment":        genai.HarmCategoryHarassment,
	"hate_speech":       genai.HarmCategoryHateSpeech,
	"sexually_explicit": genai.HarmCategorySexuallyExplicit,
	"dangerous_content": genai.HarmCategoryDangerousContent,
}

var harmThresholds = map[string]genai.HarmBlockThreshold{
	"none":             genai.HarmBlockNone,
	"only_high":        genai.HarmBlockOnlyHigh,
	"medium_and_above": genai.HarmBlockMediumAndAbove,
	"low_and_above":    genai.HarmBlockLowAndAbove,
}

func safetySettings(settings map[string]string) ([]*genai.SafetySetting, error) {
	if len(settings) == 0 {
		return nil, nil
	}

	out := make([]*genai.SafetySetting, 0, len(settings))
	for category, threshold := range settings {
		c, ok := harmCategories[category]
		if !ok {
			return nil, fmt.Errorf("unknown safety category %q", category)
		}

		t, ok := harmThresholds[threshold]
		if !ok {
			return nil, fmt.Errorf("unknown safety threshold %q", threshold)
		}

		out = append(out, &genai.SafetySetting{
			Category:  c,
			Threshold: t,
		})
	}

	return out, nil
}

func applyGenerationConfig(model *genai.GenerativeModel, cfg faqrag.GenerationConfig) {
	if cfg.Temperature != nil {
		model.SetTemperature(*cfg.Temperature)
	}

	if cfg.TopP != nil {
		model.SetTopP(*cfg.TopP)
	}

	if cfg.TopK != nil {
		model.SetTopK(*cfg.TopK)
	}

	if cfg.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*cfg.MaxOutputTokens)
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCandidates
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}
