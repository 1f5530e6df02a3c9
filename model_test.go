package faqrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfigYAMLUnmarshal(t *testing.T) {
	assert := assert.New(t)

	input := `corpus:
  documents: ./all_documents.json
  embeddings: ./embeddings.json
index:
  backend: chromem
  collection: faqs
gemini:
  embeddingModel: text-embedding-004
  generativeModel: gemini-1.5-flash-001
citation:
  bucket: rag-test2
history:
  bucket: rag-test2
generation:
  safetySettings:
    harassment: medium_and_above
  generationConfig:
    temperature: 0.2
    maxOutputTokens: 1024`

	var config Config
	if err := yaml.Unmarshal([]byte(input), &config); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("./all_documents.json", config.Corpus.DocumentsPath)
	assert.Equal("chromem", config.Index.Backend)
	assert.Equal("faqs", config.Index.Collection)
	assert.Equal("gemini-1.5-flash-001", config.Gemini.GenerativeModel)
	assert.Equal("rag-test2", config.Citation.Bucket)
	assert.Equal("medium_and_above", config.Generation.SafetySettings["harassment"])

	if assert.NotNil(config.Generation.Generation.Temperature) {
		assert.InDelta(0.2, *config.Generation.Generation.Temperature, 1e-6)
	}

	if assert.NotNil(config.Generation.Generation.MaxOutputTokens) {
		assert.Equal(int32(1024), *config.Generation.Generation.MaxOutputTokens)
	}
}
