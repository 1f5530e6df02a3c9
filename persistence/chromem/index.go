package chromem

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/lexgrove/faqrag/retrieval"
)

// positionKey is the collection metadata field aligning each stored document
// with its row in the corpus document store.
const positionKey = "position"

// NewIndex opens a pre-built persistent chromem collection as a read-only
// nearest-neighbor index. Every document in the collection must carry a
// position metadata field written by the offline corpus build.
func NewIndex(cfg retrieval.IndexConfig) (retrieval.Index, error) {
	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, err
	}

	c, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, err
	}

	return &index{c}, nil
}

type index struct {
	collection *chromem.Collection
}

func (idx *index) Search(ctx context.Context, vector []float32, k int) ([]retrieval.Match, error) {
	if count := idx.collection.Count(); k > count {
		k = count
	}

	results, err := idx.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, err
	}

	matches := make([]retrieval.Match, len(results))
	for i, result := range results {
		raw, ok := result.Metadata[positionKey]
		if !ok {
			return nil, fmt.Errorf("document %s has no position metadata", result.ID)
		}

		position, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("document %s has invalid position %q", result.ID, raw)
		}

		matches[i] = retrieval.Match{
			Position: position,
			Distance: 1 - result.Similarity,
		}
	}

	return matches, nil
}
