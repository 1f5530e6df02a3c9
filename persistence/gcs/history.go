// Package gcs persists finished session histories as per-session JSON blobs
// in a Cloud Storage bucket, appending to any existing record at the key.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/lexgrove/faqrag"
)

type PersistedHistory struct {
	Interactions []faqrag.Interaction `json:"interactions"`
}

type HistoryStore struct {
	client *storage.Client
	bucket string
}

func NewHistoryStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*HistoryStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &HistoryStore{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *HistoryStore) Close() error {
	return s.client.Close()
}

// AppendInteraction reads the session's history blob, appends the interaction,
// and writes the blob back. The record is never overwritten wholesale; an
// absent blob starts a new history.
func (s *HistoryStore) AppendInteraction(ctx context.Context, userID, sessionID string, interaction faqrag.Interaction) error {
	object := s.client.Bucket(s.bucket).Object(historyObjectName(userID, sessionID))

	var history PersistedHistory

	r, err := object.NewReader(ctx)
	switch {
	case err == nil:
		err = json.NewDecoder(r).Decode(&history)
		r.Close()

		if err != nil {
			return fmt.Errorf("decode history: %w", err)
		}

	case errors.Is(err, storage.ErrObjectNotExist):
		// First interaction for this session key.

	default:
		return fmt.Errorf("read history: %w", err)
	}

	history.Interactions = append(history.Interactions, interaction)

	w := object.NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(&history); err != nil {
		w.Close()
		return fmt.Errorf("encode history: %w", err)
	}

	return w.Close()
}

// History returns the persisted record for a session key, or nil when none
// exists.
func (s *HistoryStore) History(ctx context.Context, userID, sessionID string) (*PersistedHistory, error) {
	object := s.client.Bucket(s.bucket).Object(historyObjectName(userID, sessionID))

	r, err := object.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read history: %w", err)
	}
	defer r.Close()

	var history PersistedHistory
	if err := json.NewDecoder(r).Decode(&history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	return &history, nil
}

func historyObjectName(userID, sessionID string) string {
	return "user_history/" + userID + "/" + sessionID + ".json"
}
