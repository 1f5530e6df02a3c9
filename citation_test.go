package faqrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCitation(t *testing.T) {
	assert := assert.New(t)

	uri := NormalizeCitation(DefaultCanonicalBucket, "gs://asd-in/faqs-categories/the-basics-of-making-a-will")
	assert.Equal("gs://rag-test2/the-basics-of-making-a-will", uri)
}

func TestNormalizeCitationBareFilename(t *testing.T) {
	assert := assert.New(t)

	uri := NormalizeCitation(DefaultCanonicalBucket, "the-basics-of-making-a-will")
	assert.Equal("gs://rag-test2/the-basics-of-making-a-will", uri)
}

func TestNormalizeCitationNoEncoding(t *testing.T) {
	assert := assert.New(t)

	// Filenames with spaces stay as-is; no URL encoding is applied.
	uri := NormalizeCitation(DefaultCanonicalBucket, "gs://asd-in/Will FAQs")
	assert.Equal("gs://rag-test2/Will FAQs", uri)
}

func TestNormalizeCitationIdempotent(t *testing.T) {
	assert := assert.New(t)

	uris := []string{
		"gs://asd-in/faqs-categories/the-basics-of-making-a-will",
		"gs://rag-test2/the-basics-of-making-a-will",
		"no-separator-at-all",
		"gs://bucket/Will FAQs",
	}

	for _, raw := range uris {
		once := NormalizeCitation(DefaultCanonicalBucket, raw)
		twice := NormalizeCitation(DefaultCanonicalBucket, once)
		assert.Equal(once, twice, "normalize should be idempotent for %q", raw)
	}
}
