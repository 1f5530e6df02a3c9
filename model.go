package faqrag

import (
	"errors"
	"time"

	"github.com/lexgrove/faqrag/retrieval"
)

var (
	ErrGeneration = errors.New("generation failed")
	ErrFlush      = errors.New("history flush failed")
)

type Config struct {
	Corpus     CorpusConfig          `yaml:"corpus"`
	Index      retrieval.IndexConfig `yaml:"index"`
	Gemini     GeminiConfig          `yaml:"gemini"`
	Citation   CitationConfig        `yaml:"citation"`
	History    HistoryConfig         `yaml:"history"`
	Generation GenerationOptions     `yaml:"generation"`
}

type CorpusConfig struct {
	DocumentsPath  string `yaml:"documents"`
	EmbeddingsPath string `yaml:"embeddings"`
}

type GeminiConfig struct {
	APIKey          string `yaml:"apiKey"`
	CredentialsFile string `yaml:"credentialsFile"`
	EmbeddingModel  string `yaml:"embeddingModel"`
	GenerativeModel string `yaml:"generativeModel"`
}

type CitationConfig struct {
	Bucket string `yaml:"bucket"`
}

type HistoryConfig struct {
	Bucket string `yaml:"bucket"`
}

// GenerationOptions carries the provider-specific knobs forwarded to the
// generative model. Both sections may be empty, in which case the provider
// defaults apply.
type GenerationOptions struct {
	// SafetySettings maps a harm category to a blocking threshold,
	// e.g. "harassment: medium_and_above".
	SafetySettings map[string]string `json:"safety_settings,omitempty" yaml:"safetySettings"`

	Generation GenerationConfig `json:"generation_config,omitempty" yaml:"generationConfig"`
}

type GenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty" yaml:"temperature"`
	TopP            *float32 `json:"top_p,omitempty" yaml:"topP"`
	TopK            *int32   `json:"top_k,omitempty" yaml:"topK"`
	MaxOutputTokens *int32   `json:"max_output_tokens,omitempty" yaml:"maxOutputTokens"`
}

// Interaction is a single query/response pair recorded against a session.
type Interaction struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Answer is the result of a grounded query.
type Answer struct {
	Response  string `json:"response"`
	Reference string `json:"reference"`
	GCSURI    string `json:"gcs_uri"`
}
