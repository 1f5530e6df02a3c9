package retrieval

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is one corpus record. Documents are immutable once loaded; a
// document's identity is its position in the loaded slice, which must match
// the row order the index was built with.
type Document struct {
	Text     string            `json:"page_content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LoadDocuments reads the corpus document file produced by the offline build.
func LoadDocuments(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open documents: %w", err)
	}
	defer f.Close()

	var documents []Document
	if err := json.NewDecoder(f).Decode(&documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	return documents, nil
}
