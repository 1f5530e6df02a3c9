package retrieval

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrNoMatch            = errors.New("index returned no match")
	ErrMissingSourceURI   = errors.New("document has no source URI")
	ErrPositionOutOfRange = errors.New("index position out of range")
)

// SourceURIKey is the metadata field holding a document's object-storage URI.
const SourceURIKey = "gcs_uri"

type IndexConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is a read-only nearest-neighbor structure over the corpus embeddings.
// Search returns up to k matches ordered by increasing distance. The returned
// positions address the document store the index was built against.
type Index interface {
	Search(ctx context.Context, vector []float32, k int) ([]Match, error)
}

type Match struct {
	Position int     `json:"position"`
	Distance float32 `json:"distance"`
}

// Result is a successfully resolved query: the grounding context and the raw
// (pre-normalization) citation URI of the nearest document.
type Result struct {
	Context     string `json:"context"`
	CitationURI string `json:"citation_uri"`
}

// Retriever resolves a query to its single nearest corpus document. The
// document slice must be position-aligned with the index: index position i
// refers to documents[i].
type Retriever struct {
	embedder  Embedder
	index     Index
	documents []Document

	log *zap.Logger
}

func NewRetriever(embedder Embedder, index Index, documents []Document) *Retriever {
	log := zap.L().With(
		zap.String("component", "retriever"),
	)

	return &Retriever{
		embedder:  embedder,
		index:     index,
		documents: documents,
		log:       log,
	}
}

// Resolve embeds the query and returns the nearest document's text and
// citation URI. The nearest neighbor is always accepted; there is no distance
// threshold. ErrMissingSourceURI is the only expected failure mode; an
// out-of-range position means the index and the corpus disagree and is
// reported as ErrPositionOutOfRange.
func (r *Retriever) Resolve(ctx context.Context, query string) (Result, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.index.Search(ctx, vector, 1)
	if err != nil {
		return Result{}, fmt.Errorf("search index: %w", err)
	}

	if len(matches) == 0 {
		return Result{}, ErrNoMatch
	}

	position := matches[0].Position
	if position < 0 || position >= len(r.documents) {
		err := fmt.Errorf("%w: position %d, corpus size %d",
			ErrPositionOutOfRange, position, len(r.documents))

		r.log.Error("index and corpus are misaligned",
			zap.Int("position", position),
			zap.Int("corpus_size", len(r.documents)),
		)

		return Result{}, err
	}

	document := r.documents[position]

	uri, ok := document.Metadata[SourceURIKey]
	if !ok || uri == "" {
		return Result{}, ErrMissingSourceURI
	}

	return Result{
		Context:     document.Text,
		CitationURI: uri,
	}, nil
}
