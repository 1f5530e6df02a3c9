// Package flat implements a brute-force in-memory nearest-neighbor index
// over position-aligned corpus embeddings, loaded once at process start.
package flat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lexgrove/faqrag/retrieval"
)

var (
	ErrEmptyIndex        = errors.New("index has no vectors")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

type Index struct {
	dimension int
	vectors   [][]float32
}

// Load reads an embeddings file produced by the offline corpus build: a JSON
// array of equal-length float vectors, row i corresponding to document i.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embeddings: %w", err)
	}
	defer f.Close()

	var vectors [][]float32
	if err := json.NewDecoder(f).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("decode embeddings: %w", err)
	}

	return New(vectors)
}

func New(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyIndex
	}

	dimension := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dimension {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				ErrDimensionMismatch, i, len(v), dimension)
		}
	}

	return &Index{
		dimension: dimension,
		vectors:   vectors,
	}, nil
}

func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Search returns the k nearest rows by squared L2 distance, nearest first.
// The index is read-only, so concurrent searches need no synchronization.
func (idx *Index) Search(ctx context.Context, vector []float32, k int) ([]retrieval.Match, error) {
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d values, want %d",
			ErrDimensionMismatch, len(vector), idx.dimension)
	}

	if k <= 0 {
		k = 1
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	matches := make([]retrieval.Match, 0, k)
	for i, row := range idx.vectors {
		match := retrieval.Match{
			Position: i,
			Distance: squaredL2(row, vector),
		}

		matches = insert(matches, match, k)
	}

	return matches, nil
}

// insert keeps matches ordered by distance, capped at k entries.
func insert(matches []retrieval.Match, match retrieval.Match, k int) []retrieval.Match {
	pos := len(matches)
	for pos > 0 && matches[pos-1].Distance > match.Distance {
		pos--
	}

	if pos >= k {
		return matches
	}

	if len(matches) < k {
		matches = append(matches, retrieval.Match{})
	}

	copy(matches[pos+1:], matches[pos:])
	matches[pos] = match

	return matches
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}
