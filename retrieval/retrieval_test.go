package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vector, e.err
}

type stubIndex struct {
	matches []Match
	err     error

	lastK int
}

func (i *stubIndex) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	i.lastK = k
	return i.matches, i.err
}

func testDocuments() []Document {
	return []Document{
		{
			Text:     "Wills require two witnesses.",
			Metadata: map[string]string{SourceURIKey: "gs://asd-in/faqs-categories/witness-requirements"},
		},
		{
			Text:     "No source URI on this one.",
			Metadata: map[string]string{"category": "faq"},
		},
	}
}

func TestRetrieverResolve(t *testing.T) {
	assert := assert.New(t)

	index := &stubIndex{matches: []Match{{Position: 0, Distance: 0.2}}}
	retriever := NewRetriever(&stubEmbedder{vector: []float32{1, 0}}, index, testDocuments())

	result, err := retriever.Resolve(context.Background(), "who needs to witness a will?")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("Wills require two witnesses.", result.Context)
	assert.Equal("gs://asd-in/faqs-categories/witness-requirements", result.CitationURI)

	// Only the single nearest neighbor is ever requested.
	assert.Equal(1, index.lastK)
}

func TestRetrieverResolveEmbeddingError(t *testing.T) {
	assert := assert.New(t)

	embedErr := errors.New("provider unreachable")
	index := &stubIndex{matches: []Match{{Position: 0}}}
	retriever := NewRetriever(&stubEmbedder{err: embedErr}, index, testDocuments())

	_, err := retriever.Resolve(context.Background(), "anything")
	assert.ErrorIs(err, embedErr)
}

func TestRetrieverResolveNoMatch(t *testing.T) {
	assert := assert.New(t)

	retriever := NewRetriever(&stubEmbedder{vector: []float32{1}}, &stubIndex{}, testDocuments())

	_, err := retriever.Resolve(context.Background(), "anything")
	assert.ErrorIs(err, ErrNoMatch)
}

func TestRetrieverResolveMissingSourceURI(t *testing.T) {
	assert := assert.New(t)

	index := &stubIndex{matches: []Match{{Position: 1, Distance: 0.9}}}
	retriever := NewRetriever(&stubEmbedder{vector: []float32{1}}, index, testDocuments())

	// The nearest neighbor is accepted regardless of distance; only the
	// missing metadata makes this a miss.
	_, err := retriever.Resolve(context.Background(), "anything")
	assert.ErrorIs(err, ErrMissingSourceURI)
}

func TestRetrieverResolvePositionOutOfRange(t *testing.T) {
	assert := assert.New(t)

	for _, position := range []int{-1, 2, 99} {
		index := &stubIndex{matches: []Match{{Position: position}}}
		retriever := NewRetriever(&stubEmbedder{vector: []float32{1}}, index, testDocuments())

		_, err := retriever.Resolve(context.Background(), "anything")
		assert.ErrorIs(err, ErrPositionOutOfRange, "position %d", position)
	}
}
